// Package ast defines the abstract syntax tree produced by the parser.
//
// Unlike a typed-per-production tree, every node in this AST is the same
// uniform record (spec.md §3): a Kind tag, a Value lexeme, a frozen source
// Pos and an ordered list of Children. This keeps the compiler's recursive
// walk (lang/compiler) a single generic dispatch on Kind instead of a Go
// type switch over dozens of node structs, and makes the tree trivially
// comparable for the "AST determinism" testable property (spec.md §8).
package ast

import "github.com/mna/helium/lang/token"

// Kind identifies the syntactic category of a Node. See spec.md §3 for the
// invariants each kind's Children/Value must satisfy.
type Kind int8

const ( //nolint:revive
	Integer Kind = iota
	Float
	Bool
	String
	Null
	Reference
	UnaryExpr
	BinaryExpr
	Call
	Function
	Params
	Param
	Block
	Assign
	Loop
	Branches
	Include
	Return
	Table
	KVPair
	Put
	Get
)

var kindNames = [...]string{
	Integer:     "Integer",
	Float:       "Float",
	Bool:        "Bool",
	String:      "String",
	Null:        "Null",
	Reference:   "Reference",
	UnaryExpr:   "UnaryExpr",
	BinaryExpr:  "BinaryExpr",
	Call:        "Call",
	Function:    "Function",
	Params:      "Params",
	Param:       "Param",
	Block:       "Block",
	Assign:      "Assign",
	Loop:        "Loop",
	Branches:    "Branches",
	Include:     "Include",
	Return:      "Return",
	Table:       "Table",
	KVPair:      "KVPair",
	Put:         "Put",
	Get:         "Get",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Node is a single AST node. Value holds an operator symbol, identifier,
// literal text, or a fixed tag ("block", "alt", "conditional") depending on
// Kind; see the per-kind invariants in spec.md §3.
type Node struct {
	Kind     Kind
	Value    string
	Position token.Pos
	Children []*Node
}

// New returns a Node of the given kind, value and position with the
// provided children (possibly none).
func New(kind Kind, value string, pos token.Pos, children ...*Node) *Node {
	return &Node{Kind: kind, Value: value, Position: pos, Children: children}
}
