// Package compiler lowers a parsed AST (lang/ast) into a Program of fixed
// 32-bit bytecode instructions (spec.md §4.3).
package compiler

import (
	"github.com/mna/helium/lang/ast"
	"github.com/mna/helium/lang/importer"
	"github.com/mna/helium/lang/parser"
)

// compiler carries the state that is shared across an entire compilation
// but does not belong on any single Program: the import resolver and a
// recursion guard against cyclic includes. It mirrors the original
// compiler.c's reliance on a single `program*` threaded through every
// compile_* call, with the resolver added as the one piece of state Go's
// explicit-argument style needs that the C original got from a global.
type compiler struct {
	resolver importer.Resolver
	active   map[string]bool  // origins currently being spliced, cycle guard
	natives  map[string]int   // native name -> argc, for compile-time CallError
}

// Compile lowers tree (as produced by parser.Parse for origin) into a
// top-level Program. resolver may be nil if tree contains no Include
// statements; attempting to compile one without a resolver is an
// ImportError. Each Native is installed as a top-level local bound to a
// thin dispatcher Program, exactly as create_native describes (spec.md
// §4.3), so calls to it compile identically to user-defined functions.
func Compile(tree *ast.Node, origin string, resolver importer.Resolver, natives ...Native) (*Program, error) {
	c := &compiler{
		resolver: resolver,
		active:   map[string]bool{origin: true},
		natives:  make(map[string]int, len(natives)),
	}
	prog := newProgram(nil, 0)

	for _, nat := range natives {
		if err := installNative(prog, nat, tree.Position); err != nil {
			return nil, err
		}
		c.natives[nat.Name] = nat.Argc
	}

	if err := c.compileBlock(prog, tree); err != nil {
		return nil, err
	}
	return prog, nil
}

func (c *compiler) compileBlock(p *Program, block *ast.Node) error {
	for _, st := range block.Children {
		if err := c.compileStatement(p, st); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) compileStatement(p *Program, n *ast.Node) error {
	switch n.Kind {
	case ast.Assign:
		return c.compileAssign(p, n)
	case ast.Put:
		return c.compileTablePut(p, n)
	case ast.Call:
		if err := c.compileCall(p, n); err != nil {
			return err
		}
		p.emit(n.Position, MakeOp(POP))
		return nil
	case ast.Loop:
		return c.compileLoop(p, n)
	case ast.Branches:
		return c.compileBranches(p, n)
	case ast.Include:
		return c.runImport(p, n)
	case ast.Return:
		return c.compileReturn(p, n)
	default:
		return &ResolveError{Position: n.Position, Message: "not a statement: " + n.Kind.String()}
	}
}

func (c *compiler) compileAssign(p *Program, n *ast.Node) error {
	rhs := n.Children[0]
	if err := c.compileExpression(p, rhs); err != nil {
		return err
	}
	slot, scope := registerVariable(p, n.Value)
	p.emit(n.Position, MakeUx(storeOp(scope), slot))
	return nil
}

func (c *compiler) compileReturn(p *Program, n *ast.Node) error {
	if err := c.compileExpression(p, n.Children[0]); err != nil {
		return err
	}
	p.emit(n.Position, MakeOp(RET))
	return nil
}

func storeOp(scope Scope) Opcode {
	switch scope {
	case Local:
		return STORL
	case Closed:
		return STORC
	default:
		return STORG
	}
}

func loadOp(scope Scope) Opcode {
	switch scope {
	case Local:
		return LOADL
	case Closed:
		return LOADC
	default:
		return LOADG
	}
}

func (c *compiler) compileLoop(p *Program, n *ast.Node) error {
	cond, body := n.Children[0], n.Children[1]

	top := len(p.Code)
	if err := c.compileExpression(p, cond); err != nil {
		return err
	}
	exit := emitJump(p, n.Position, JIF)

	if err := c.compileBlock(p, body); err != nil {
		return err
	}

	back := emitJump(p, n.Position, JMP)
	// back jump targets top, i.e. offset = top - back - 1 (may be negative).
	if err := patchJumpTo(p, n.Position, back, top); err != nil {
		return err
	}

	return patchJump(p, n.Position, exit)
}

// compileBranches walks the Branches chain emitted by the parser:
// children = [cond, thenBlock, elseBranch?] where elseBranch is either
// another "conditional" Branches (else-if) or a terminal "alt" Branches
// with children = [block].
func (c *compiler) compileBranches(p *Program, n *ast.Node) error {
	if n.Value == "alt" {
		return c.compileBlock(p, n.Children[0])
	}

	cond, thenBlock := n.Children[0], n.Children[1]
	if err := c.compileExpression(p, cond); err != nil {
		return err
	}
	toElse := emitJump(p, n.Position, JIF)

	if err := c.compileBlock(p, thenBlock); err != nil {
		return err
	}

	if len(n.Children) < 3 {
		return patchJump(p, n.Position, toElse)
	}

	skipElse := emitJump(p, n.Position, JMP)
	if err := patchJump(p, n.Position, toElse); err != nil {
		return err
	}

	if err := c.compileBranches(p, n.Children[2]); err != nil {
		return err
	}
	return patchJump(p, n.Position, skipElse)
}

func (c *compiler) runImport(p *Program, n *ast.Node) error {
	pathNode := n.Children[0]
	path := pathNode.Value

	if c.resolver == nil {
		return &ImportError{Position: n.Position, Path: path, Err: errNoResolver}
	}
	src, origin, err := c.resolver.Resolve(path)
	if err != nil {
		return &ImportError{Position: n.Position, Path: path, Err: err}
	}
	if c.active[origin] {
		return &ImportError{Position: n.Position, Path: path, Err: errImportCycle}
	}

	tree, err := parser.Parse(src, origin)
	if err != nil {
		return &ImportError{Position: n.Position, Path: path, Err: err}
	}

	c.active[origin] = true
	err = c.compileBlock(p, tree)
	delete(c.active, origin)
	return err
}

// compileFunction compiles a Function node into a new child Program whose
// prev points at p, registers its parameters as locals in declaration
// order, and returns the constant index at which the nested Program was
// interned into p's constant pool, plus its capture count (for the
// caller's CLOSE u).
func (c *compiler) compileFunction(p *Program, n *ast.Node) (uint16, int, error) {
	params, body := n.Children[0], n.Children[1]

	child := newProgram(p, len(params.Children))
	for _, param := range params.Children {
		if _, err := registerUniqueVariableLocal(child, param.Value, param.Position); err != nil {
			return 0, 0, err
		}
	}
	if err := c.compileBlock(child, body); err != nil {
		return 0, 0, err
	}

	idx, err := registerConstant(p, child, n.Position)
	if err != nil {
		return 0, 0, err
	}
	return idx, len(child.closures), nil
}

func (c *compiler) compileTablePut(p *Program, n *ast.Node) error {
	slot, scope, err := dereferenceVariable(p, n.Value, n.Position)
	if err != nil {
		return err
	}
	p.emit(n.Position, MakeUx(loadOp(scope), slot))

	key, rhs := n.Children[0], n.Children[1]
	if err := c.compileExpression(p, key); err != nil {
		return err
	}
	if err := c.compileExpression(p, rhs); err != nil {
		return err
	}
	p.emit(n.Position, MakeOp(TPUT))
	return nil
}

func (c *compiler) compileTableGet(p *Program, n *ast.Node) error {
	slot, scope, err := dereferenceVariable(p, n.Value, n.Position)
	if err != nil {
		return err
	}
	p.emit(n.Position, MakeUx(loadOp(scope), slot))

	if err := c.compileExpression(p, n.Children[0]); err != nil {
		return err
	}
	p.emit(n.Position, MakeOp(TGET))
	return nil
}

// compileTableLiteral emits TNEW followed by the compiled key, the compiled
// value and a TPUT per KVPair. TPUT mutates the table in place without popping it,
// so the same table reference threads through every pair and remains as
// the literal's resulting value (spec.md §8 S5).
func (c *compiler) compileTableLiteral(p *Program, n *ast.Node) error {
	p.emit(n.Position, MakeOp(TNEW))
	for _, kv := range n.Children {
		key, val := kv.Children[0], kv.Children[1]
		if err := c.compileExpression(p, key); err != nil {
			return err
		}
		if err := c.compileExpression(p, val); err != nil {
			return err
		}
		p.emit(kv.Position, MakeOp(TPUT))
	}
	return nil
}

func (c *compiler) compileCall(p *Program, n *ast.Node) error {
	callee := n.Children[0]
	args := n.Children[1:]

	if callee.Kind == ast.Reference {
		slot, scope, err := dereferenceVariable(p, callee.Value, callee.Position)
		if err != nil {
			return err
		}
		if argc, ok := c.natives[callee.Value]; ok && argc != len(args) {
			// the name only denotes the native if no enclosing function
			// declares a local (e.g. a parameter) that shadows it.
			owner := p
			for owner.prev != nil {
				if _, local := owner.symbols.Get(callee.Value); local {
					break
				}
				owner = owner.prev
			}
			if owner.prev == nil {
				return &CallError{Position: n.Position, Name: callee.Value, Want: argc, Got: len(args)}
			}
		}
		p.emit(callee.Position, MakeUx(loadOp(scope), slot))
	} else if err := c.compileExpression(p, callee); err != nil {
		return err
	}

	for _, arg := range args {
		if err := c.compileExpression(p, arg); err != nil {
			return err
		}
	}
	p.emit(n.Position, MakeUx(CALL, uint16(len(args))))
	return nil
}
