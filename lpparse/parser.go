package lpparse

import (
	"fmt"
	"strconv"
)

// Parser is a recursive descent parser over a token slice ending in
// TokenEOF:
//
//	program    = { decl } objective "s.t." { constraint }
//	decl       = "let" ID [ ( ">=" | "<=" ) [ "+" | "-" ] NUMBER ] ";"
//	objective  = ( "max" | "min" ) expr ";"
//	constraint = expr ( "<=" | ">=" | "=" ) expr ";"
//	expr       = term { ( "+" | "-" ) term }
//	term       = factor { ( "*" | "/" ) factor }
//	factor     = ( "+" | "-" ) factor | NUMBER | ID | "(" expr ")"
type Parser struct {
	tokens []Token
	pos    int
}

func NewParser(tokens []Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != TokenEOF {
		tokens = append(tokens, Token{Type: TokenEOF})
	}
	return &Parser{tokens: tokens}
}

func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	t := p.tokens[p.pos]
	if t.Type != TokenEOF {
		p.pos++
	}
	return t
}

func (p *Parser) expect(tt TokenType) (Token, error) {
	t := p.advance()
	if t.Type != tt {
		return t, fmt.Errorf("%w: line %d: expected %q but got %s", ErrSyntax, t.Line, string(tt), t)
	}
	return t, nil
}

// ParseProgram parses a whole program. Programs without constraints are
// accepted.
func (p *Parser) ParseProgram() (*Program, error) {
	prog := &Program{}
	for p.peek().Type == TokenLet {
		d, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		prog.Decls = append(prog.Decls, d)
	}

	obj, err := p.parseObjective()
	if err != nil {
		return nil, err
	}
	prog.Objective = obj

	if _, err := p.expect(TokenSubjectTo); err != nil {
		return nil, err
	}

	for p.peek().Type != TokenEOF {
		c, err := p.parseConstraint()
		if err != nil {
			return nil, err
		}
		prog.Constraints = append(prog.Constraints, c)
	}
	return prog, nil
}

func (p *Parser) parseDecl() (*Decl, error) {
	let, err := p.expect(TokenLet)
	if err != nil {
		return nil, err
	}
	id, err := p.expect(TokenID)
	if err != nil {
		return nil, err
	}
	d := &Decl{Name: id.Value, Line: let.Line}

	if t := p.peek(); t.Type == TokenGreaterEqual || t.Type == TokenLessEqual {
		p.advance()
		sign := 1.0
		switch p.peek().Type {
		case TokenMinus:
			sign = -1
			p.advance()
		case TokenPlus:
			p.advance()
		}
		num, err := p.expect(TokenNumber)
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(num.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad number %q", ErrSyntax, num.Line, num.Value)
		}
		d.Bound = t.Type
		d.Value = sign * v
	}

	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return d, nil
}

func (p *Parser) parseObjective() (*Objective, error) {
	t := p.advance()
	if t.Type != TokenMax && t.Type != TokenMin {
		return nil, fmt.Errorf("%w: line %d: expected \"max\" or \"min\" but got %s", ErrSyntax, t.Line, t)
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &Objective{Maximize: t.Type == TokenMax, Expr: expr, Line: t.Line}, nil
}

func (p *Parser) parseConstraint() (*Constraint, error) {
	line := p.peek().Line
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	op := p.advance()
	if op.Type != TokenLessEqual && op.Type != TokenGreaterEqual && op.Type != TokenEqual {
		return nil, fmt.Errorf("%w: line %d: expected a comparison but got %s", ErrSyntax, op.Line, op)
	}

	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &Constraint{Left: left, Op: op.Type, Right: right, Line: line}, nil
}

func (p *Parser) parseExpr() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		t := p.peek()
		if t.Type != TokenPlus && t.Type != TokenMinus {
			return left, nil
		}
		p.advance()

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: t.Type, Left: left, Right: right, Line: t.Line}
	}
}

func (p *Parser) parseTerm() (Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for {
		t := p.peek()
		if t.Type != TokenAsterisk && t.Type != TokenSlash {
			return left, nil
		}
		p.advance()

		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: t.Type, Left: left, Right: right, Line: t.Line}
	}
}

func (p *Parser) parseFactor() (Expr, error) {
	t := p.advance()
	switch t.Type {
	case TokenPlus, TokenMinus:
		x, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: t.Type, X: x, Line: t.Line}, nil

	case TokenNumber:
		v, err := strconv.ParseFloat(t.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad number %q", ErrSyntax, t.Line, t.Value)
		}
		return &Number{Value: v, Line: t.Line}, nil

	case TokenID:
		return &Ident{Name: t.Value, Line: t.Line}, nil

	case TokenLParen:
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		return nil, fmt.Errorf("%w: line %d: unexpected %s", ErrSyntax, t.Line, t)
	}
}
