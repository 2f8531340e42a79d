package compiler

import (
	"strconv"

	"github.com/mna/helium/lang/ast"
	"github.com/mna/helium/lang/value"
)

// binaryOps maps non-short-circuit binary lexemes to their opcode.
// && and || are handled separately by compileShortCircuit since they
// never evaluate their right operand unconditionally. The opcode set is
// closed at the 33 names in spec.md §3, which has no dedicated XOR: `^`
// is compiled to NE, the one existing opcode whose truth table coincides
// with exclusive-or on Bool operands (see DESIGN.md). NE only matches `^`
// on booleans, not a multi-bit integer xor; the compiler has no static
// type information to diagnose a non-bool `^` operand at compile time
// (values are only known dynamically, at runtime), so this is a known,
// documented reuse rather than a verified-correct general xor.
var binaryOps = map[string]Opcode{
	"+": ADD, "-": SUB, "*": MUL, "/": DIV, "%": MOD,
	"&": AND, "|": OR, "^": NE,
	"==": EQ, "!=": NE,
	"<": LT, "<=": LE, ">": GT, ">=": GE,
}

// compileExpression compiles n so that exactly one value is left on the
// stack, dispatching on Kind per spec.md §4.3's expression codegen table.
func (c *compiler) compileExpression(p *Program, n *ast.Node) error {
	switch n.Kind {
	case ast.Integer:
		v, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			return &ResolveError{Position: n.Position, Message: "invalid integer literal: " + err.Error()}
		}
		return c.pushConstant(p, n, value.Integer(v))

	case ast.Float:
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return &ResolveError{Position: n.Position, Message: "invalid float literal: " + err.Error()}
		}
		return c.pushConstant(p, n, value.Float(v))

	case ast.Bool:
		return c.pushConstant(p, n, value.Bool(n.Value == "true"))

	case ast.String:
		return c.pushConstant(p, n, value.Str(n.Value))

	case ast.Null:
		return c.pushConstant(p, n, value.NullValue)

	case ast.Reference:
		slot, scope, err := dereferenceVariable(p, n.Value, n.Position)
		if err != nil {
			return err
		}
		p.emit(n.Position, MakeUx(loadOp(scope), slot))
		return nil

	case ast.UnaryExpr:
		return c.compileUnary(p, n)

	case ast.BinaryExpr:
		return c.compileBinary(p, n)

	case ast.Call:
		return c.compileCall(p, n)

	case ast.Function:
		idx, captures, err := c.compileFunction(p, n)
		if err != nil {
			return err
		}
		p.emit(n.Position, MakeUx(PUSHK, idx))
		p.emit(n.Position, MakeUx(CLOSE, uint16(captures)))
		return nil

	case ast.Table:
		return c.compileTableLiteral(p, n)

	case ast.Get:
		return c.compileTableGet(p, n)

	default:
		return &ResolveError{Position: n.Position, Message: "not an expression: " + n.Kind.String()}
	}
}

func (c *compiler) pushConstant(p *Program, n *ast.Node, v value.Value) error {
	idx, err := registerConstant(p, v, n.Position)
	if err != nil {
		return err
	}
	p.emit(n.Position, MakeUx(PUSHK, idx))
	return nil
}

func (c *compiler) compileUnary(p *Program, n *ast.Node) error {
	if err := c.compileExpression(p, n.Children[0]); err != nil {
		return err
	}
	switch n.Value {
	case "-":
		p.emit(n.Position, MakeOp(NEG))
	case "!", "~":
		p.emit(n.Position, MakeOp(NOT))
	case "+":
		// unary plus is a no-op at the value level
	default:
		return &ResolveError{Position: n.Position, Message: "invalid unary operator " + n.Value}
	}
	return nil
}

func (c *compiler) compileBinary(p *Program, n *ast.Node) error {
	if n.Value == "&&" || n.Value == "||" {
		return c.compileShortCircuit(p, n)
	}

	if err := c.compileExpression(p, n.Children[0]); err != nil {
		return err
	}
	if err := c.compileExpression(p, n.Children[1]); err != nil {
		return err
	}
	op, ok := binaryOps[n.Value]
	if !ok {
		return &ResolveError{Position: n.Position, Message: "invalid binary operator " + n.Value}
	}
	p.emit(n.Position, MakeOp(op))
	return nil
}

// compileShortCircuit lowers && and || without evaluating the right
// operand unless needed. The instruction set has no non-destructive
// stack peek, so the short-circuited result collapses to the boolean
// literal rather than preserving operand a's original value verbatim
// (see DESIGN.md).
func (c *compiler) compileShortCircuit(p *Program, n *ast.Node) error {
	left, right := n.Children[0], n.Children[1]
	if err := c.compileExpression(p, left); err != nil {
		return err
	}

	if n.Value == "&&" {
		toFalse := emitJump(p, n.Position, JIF)
		if err := c.compileExpression(p, right); err != nil {
			return err
		}
		toEnd := emitJump(p, n.Position, JMP)
		if err := patchJump(p, n.Position, toFalse); err != nil {
			return err
		}
		if err := c.pushConstant(p, n, value.Bool(false)); err != nil {
			return err
		}
		return patchJump(p, n.Position, toEnd)
	}

	toRight := emitJump(p, n.Position, JIF)
	if err := c.pushConstant(p, n, value.Bool(true)); err != nil {
		return err
	}
	toEnd := emitJump(p, n.Position, JMP)
	if err := patchJump(p, n.Position, toRight); err != nil {
		return err
	}
	if err := c.compileExpression(p, right); err != nil {
		return err
	}
	return patchJump(p, n.Position, toEnd)
}
