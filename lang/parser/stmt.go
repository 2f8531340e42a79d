package parser

import (
	"github.com/mna/helium/lang/ast"
	"github.com/mna/helium/lang/token"
)

// parseBlock parses a newline-separated sequence of statements up to (but
// not consuming) a token of kind terminal:
//
//	block(T) := newline* (statement newline*)* until T
func (p *Parser) parseBlock(terminal token.Kind) (*ast.Node, error) {
	block := ast.New(ast.Block, "block", p.peek().Position)

	p.stripNewlines()
	for !p.isEmpty() && p.peek().Kind != terminal {
		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Children = append(block.Children, st)
		p.stripNewlines()
	}
	return block, nil
}

// parseStatement dispatches on the current token to one of the statement
// productions in spec.md §4.2:
//
//	statement := assign | put | call | loop | if | include | return
func (p *Parser) parseStatement() (*ast.Node, error) {
	switch p.peek().Kind {
	case token.Symbol:
		if la := p.lookahead().Kind; la == token.LeftSquare || la == token.Dot {
			return p.parseTablePut()
		}
		return p.parseAssign()

	case token.Call:
		return p.parseFunctionCall()

	case token.Loop:
		return p.parseLoop()

	case token.If:
		return p.parseBranching()

	case token.Include:
		return p.parseInclude()

	case token.Return:
		return p.parseReturn()

	default:
		tok := p.peek()
		return nil, p.errorf(tok.Position, "invalid statement, unexpected %s", tok.Kind)
	}
}

// parseAssign parses `assign := Symbol '<-' expression`.
func (p *Parser) parseAssign() (*ast.Node, error) {
	name := p.eat()
	if _, err := p.consume(token.Assign); err != nil {
		return nil, err
	}
	rhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.Assign, name.Lexeme, name.Position, rhs), nil
}

// parseLoop parses `loop := 'loop' expression '{' block('}') '}'`.
func (p *Parser) parseLoop() (*ast.Node, error) {
	kw := p.eat()

	cond, err := p.parseExpression()
	if err != nil {
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

	return ast.New(ast.Loop, "loop", kw.Position, cond, body), nil
}

// parseBranching parses the if/else-if/else chain:
//
//	if       := 'if' expression '{' block '}' (elsepart)?
//	elsepart := 'else' ('if' expression '{' block '}' elsepart? | '{' block '}')
//
// Branches.children = [cond, thenBlock, elseBranchOrNull], where the else
// branch is another Branches node tagged "conditional" (else-if) or a
// terminal one tagged "alt" with children [Block].
func (p *Parser) parseBranching() (*ast.Node, error) {
	ifTok, err := p.consume(token.If)
	if err != nil {
		return nil, err
	}
	root := ast.New(ast.Branches, "conditional", ifTok.Position)

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	root.Children = append(root.Children, cond)

	p.stripNewlines()
	if _, err := p.consume(token.LeftBrace); err != nil {
		return nil, err
	}
	thenBlock, err := p.parseBlock(token.RightBrace)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightBrace); err != nil {
		return nil, err
	}
	root.Children = append(root.Children, thenBlock)
	p.stripNewlines()

	chain := root
	for p.peek().Kind == token.Else {
		elseTok := p.eat()

		var branch *ast.Node
		if p.consumeOptional(token.If) {
			branch = ast.New(ast.Branches, "conditional", elseTok.Position)
			cond, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			branch.Children = append(branch.Children, cond)
		} else {
			branch = ast.New(ast.Branches, "alt", elseTok.Position)
		}

		p.stripNewlines()
		if _, err := p.consume(token.LeftBrace); err != nil {
			return nil, err
		}
		block, err := p.parseBlock(token.RightBrace)
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightBrace); err != nil {
			return nil, err
		}
		branch.Children = append(branch.Children, block)
		p.stripNewlines()

		chain.Children = append(chain.Children, branch)
		chain = branch

		if branch.Value == "alt" {
			break
		}
	}

	return root, nil
}

// parseInclude parses `include := 'include' stringLiteral`.
func (p *Parser) parseInclude() (*ast.Node, error) {
	kw := p.eat()

	path, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if path.Kind != ast.String {
		return nil, p.errorf(path.Position, "expected string literal in include statement")
	}

	return ast.New(ast.Include, "include", kw.Position, path), nil
}

// parseReturn parses `return := 'return' expression`.
func (p *Parser) parseReturn() (*ast.Node, error) {
	kw := p.eat()
	val, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.Return, "ret", kw.Position, val), nil
}

// parseTablePut parses `put := Symbol ('[' expression ']' | '.' Symbol) '<-' expression`.
func (p *Parser) parseTablePut() (*ast.Node, error) {
	name := p.eat()
	put := ast.New(ast.Put, name.Lexeme, name.Position)

	switch {
	case p.consumeOptional(token.LeftSquare):
		key, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightSquare); err != nil {
			return nil, err
		}
		put.Children = append(put.Children, key)

	case p.consumeOptional(token.Dot):
		field, err := p.consume(token.Symbol)
		if err != nil {
			return nil, err
		}
		put.Children = append(put.Children, ast.New(ast.String, field.Lexeme, field.Position))

	default:
		tok := p.peek()
		return nil, p.errorf(tok.Position, "expected '[' or '.' in table assignment")
	}

	if _, err := p.consume(token.Assign); err != nil {
		return nil, err
	}
	rhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	put.Children = append(put.Children, rhs)

	return put, nil
}
