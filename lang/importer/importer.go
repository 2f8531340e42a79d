// Package importer resolves the source text named by an Include
// statement (spec.md §4.4: "a resolver interface: (path) -> source_text").
package importer

import (
	"fmt"
	"os"
	"path/filepath"
)

// Resolver maps an include path to the source text it names and the
// origin string diagnostics should attribute it to.
type Resolver interface {
	Resolve(path string) (src, origin string, err error)
}

// FileResolver resolves include paths against a base directory on disk,
// the default Resolver used by cmd/helium.
type FileResolver struct {
	// Root is the directory include paths are resolved relative to. The
	// zero value resolves relative to the process's working directory.
	Root string
}

var _ Resolver = FileResolver{}

// Resolve reads path (joined to Root if set) from disk.
func (r FileResolver) Resolve(path string) (string, string, error) {
	full := path
	if r.Root != "" {
		full = filepath.Join(r.Root, path)
	}
	b, err := os.ReadFile(full)
	if err != nil {
		return "", "", fmt.Errorf("importer: resolve %q: %w", path, err)
	}
	return string(b), full, nil
}
