package parser

import (
	"github.com/mna/helium/lang/ast"
	"github.com/mna/helium/lang/token"
)

// precedence returns the binding power of a binary operator lexeme per the
// table in spec.md §4.2 (low to high): || (2), && (3), | (4), ^ (5), & (6),
// == != (7), < <= > >= (8), + - (9), * / % (10). All operators are
// left-associative. Grounded directly on the original parser.c's
// `precedence` routine.
func precedence(op string) int {
	switch op {
	case "||":
		return 2
	case "&&":
		return 3
	case "|":
		return 4
	case "^":
		return 5
	case "&":
		return 6
	case "==", "!=":
		return 7
	case "<", "<=", ">", ">=":
		return 8
	case "+", "-":
		return 9
	case "*", "/", "%":
		return 10
	}
	return 0
}

// parseExpression implements the shunting-yard expression lowering of
// spec.md §4.2: two stacks (operands, operators); on each incoming operator,
// pop and apply while the stack top has precedence >= the incoming operator
// (left-associative), then push the incoming operator.
func (p *Parser) parseExpression() (*ast.Node, error) {
	var operands []*ast.Node
	var operators []token.Token

	first, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	operands = append(operands, first)

	for !p.isEmpty() && p.peek().Kind == token.Operator {
		op := p.eat()

		for len(operators) > 0 && precedence(operators[len(operators)-1].Lexeme) >= precedence(op.Lexeme) {
			operands, operators = applyTopOperator(operands, operators)
		}
		operators = append(operators, op)

		next, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}

	for len(operators) > 0 {
		operands, operators = applyTopOperator(operands, operators)
	}

	return operands[len(operands)-1], nil
}

// applyTopOperator pops the top operator and its two operands, replacing
// them with the resulting BinaryExpr node.
func applyTopOperator(operands []*ast.Node, operators []token.Token) ([]*ast.Node, []token.Token) {
	op := operators[len(operators)-1]
	operators = operators[:len(operators)-1]

	n := len(operands)
	right, left := operands[n-1], operands[n-2]
	operands = operands[:n-2]

	node := ast.New(ast.BinaryExpr, op.Lexeme, op.Position, left, right)
	operands = append(operands, node)
	return operands, operators
}

// validUnaryOps are the operators allowed as a unary prefix (spec.md §4.2,
// grounded on parse_primary's LX_OPERATOR case in the original parser.c).
var validUnaryOps = map[string]bool{"-": true, "+": true, "!": true, "~": true}

// parsePrimary parses a single operand of an expression:
//
//	primary := literal | reference | get | table | function | call
//	         | '(' expression ')' | unop primary
func (p *Parser) parsePrimary() (*ast.Node, error) {
	if p.isEmpty() {
		return nil, p.errorf(p.peek().Position, "program ended prematurely, expected an expression")
	}

	tok := p.peek()
	switch tok.Kind {
	case token.Integer:
		p.eat()
		return ast.New(ast.Integer, tok.Lexeme, tok.Position), nil

	case token.Float:
		p.eat()
		return ast.New(ast.Float, tok.Lexeme, tok.Position), nil

	case token.Bool:
		p.eat()
		return ast.New(ast.Bool, tok.Lexeme, tok.Position), nil

	case token.String:
		p.eat()
		return ast.New(ast.String, tok.Lexeme, tok.Position), nil

	case token.Null:
		p.eat()
		return ast.New(ast.Null, tok.Lexeme, tok.Position), nil

	case token.LeftBrace:
		return p.parseTableInstance()

	case token.Symbol:
		if la := p.lookahead().Kind; la == token.LeftSquare || la == token.Dot {
			return p.parseTableGet()
		}
		p.eat()
		return ast.New(ast.Reference, tok.Lexeme, tok.Position), nil

	case token.Function:
		return p.parseFunctionDefinition()

	case token.Call:
		return p.parseFunctionCall()

	case token.LeftParen:
		p.eat()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightParen); err != nil {
			return nil, err
		}
		return expr, nil

	case token.Operator:
		if !validUnaryOps[tok.Lexeme] {
			return nil, p.errorf(tok.Position, "invalid unary operator %q", tok.Lexeme)
		}
		p.eat()
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.UnaryExpr, tok.Lexeme, tok.Position, operand), nil

	default:
		return nil, p.errorf(tok.Position, "unexpected token %s", tok.Kind)
	}
}

// parseFunctionCall parses `call := '@' expression '(' (expression (',' expression)*)? ')'`.
// It is used both in statement position and in expression (primary)
// position, as in the original grammar.
func (p *Parser) parseFunctionCall() (*ast.Node, error) {
	at, err := p.consume(token.Call)
	if err != nil {
		return nil, err
	}

	callee, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	call := ast.New(ast.Call, "call", at.Position, callee)

	if _, err := p.consume(token.LeftParen); err != nil {
		return nil, err
	}
	if p.peek().Kind != token.RightParen {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			call.Children = append(call.Children, arg)
			if !p.consumeOptional(token.Separator) {
				break
			}
		}
	}
	if _, err := p.consume(token.RightParen); err != nil {
		return nil, err
	}

	return call, nil
}

// parseFunctionDefinition parses `function := '$' '(' params? ')' '{' block('}') '}'`.
func (p *Parser) parseFunctionDefinition() (*ast.Node, error) {
	dollar, err := p.consume(token.Function)
	if err != nil {
		return nil, err
	}

	lparen, err := p.consume(token.LeftParen)
	if err != nil {
		return nil, err
	}
	params := ast.New(ast.Params, "args", lparen.Position)

	if p.peek().Kind != token.RightParen {
		for {
			param, err := p.consume(token.Symbol)
			if err != nil {
				return nil, err
			}
			params.Children = append(params.Children, ast.New(ast.Param, param.Lexeme, param.Position))
			if !p.consumeOptional(token.Separator) {
				break
			}
		}
	}
	if _, err := p.consume(token.RightParen); err != nil {
		return nil, err
	}

	p.stripNewlines()
	if _, err := p.consume(token.LeftBrace); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(token.RightBrace)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightBrace); err != nil {
		return nil, err
	}

	return ast.New(ast.Function, "code", dollar.Position, params, body), nil
}

// parseTableInstance parses `table := '{' (kvpair (',' kvpair)*)? '}'`.
func (p *Parser) parseTableInstance() (*ast.Node, error) {
	lbrace, err := p.consume(token.LeftBrace)
	if err != nil {
		return nil, err
	}
	table := ast.New(ast.Table, "table", lbrace.Position)
	p.stripNewlines()

	if p.peek().Kind != token.RightBrace {
		for {
			p.stripNewlines()
			pos := p.peek().Position

			key, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(token.Colon); err != nil {
				return nil, err
			}
			val, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			p.stripNewlines()

			table.Children = append(table.Children, ast.New(ast.KVPair, "pair", pos, key, val))

			if !p.consumeOptional(token.Separator) {
				break
			}
		}
	}

	if _, err := p.consume(token.RightBrace); err != nil {
		return nil, err
	}
	return table, nil
}

// parseTableGet parses a table/field read in primary position:
// `Symbol ('[' expression ']' | '.' Symbol)`.
func (p *Parser) parseTableGet() (*ast.Node, error) {
	name, err := p.consume(token.Symbol)
	if err != nil {
		return nil, err
	}
	get := ast.New(ast.Get, name.Lexeme, name.Position)

	switch {
	case p.consumeOptional(token.LeftSquare):
		key, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightSquare); err != nil {
			return nil, err
		}
		get.Children = append(get.Children, key)

	case p.consumeOptional(token.Dot):
		field, err := p.consume(token.Symbol)
		if err != nil {
			return nil, err
		}
		get.Children = append(get.Children, ast.New(ast.String, field.Lexeme, field.Position))

	default:
		tok := p.peek()
		return nil, p.errorf(tok.Position, "expected '[' or '.' after table reference")
	}

	return get, nil
}
