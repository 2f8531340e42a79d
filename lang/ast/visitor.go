package ast

// Visitor is invoked by Walk for every node of a tree, in pre-order. If
// Visit returns a non-nil Visitor, Walk uses it to visit n's children, then
// calls Visit(nil) to indicate the children have all been visited.
//
// This mirrors the teacher's Visitor/Walk double-dispatch shape
// (lang/ast/visitor.go), adapted to operate over the uniform Node.Children
// slice instead of per-kind typed fields.
type Visitor interface {
	Visit(n *Node) (w Visitor)
}

// Walk traverses the AST in depth-first order, calling v.Visit for each
// node. It does nothing if n is nil.
func Walk(v Visitor, n *Node) {
	if n == nil {
		return
	}
	w := v.Visit(n)
	if w == nil {
		return
	}
	for _, c := range n.Children {
		Walk(w, c)
	}
	w.Visit(nil)
}

// inspector adapts a plain func(*Node) bool into a Visitor, following the
// standard go/ast.Inspect idiom.
type inspector func(*Node) bool

func (f inspector) Visit(n *Node) Visitor {
	if f(n) {
		return f
	}
	return nil
}

// Inspect traverses the AST in depth-first order, calling f for each node
// (including nil, once per subtree, to signal children are done) until f
// returns false for some node's children.
func Inspect(n *Node, f func(*Node) bool) {
	Walk(inspector(f), n)
}
