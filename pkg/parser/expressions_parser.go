package parser

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

// Precedence, lowest first: assignment, conditional, or, and, equality,
// comparison, term, factor, unary, call, primary.

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.conditional()
	if err != nil {
		return nil, err
	}
	if !p.match(token.Equal) {
		return expr, nil
	}
	equals := p.previous()
	value, err := p.assignment()
	if err != nil {
		return nil, err
	}
	switch target := expr.(type) {
	case *ast.VariableExpression:
		return ast.NewAssignmentExpression(target.Name, value), nil
	case *ast.GetExpression:
		return ast.NewSetExpression(target.Object, target.Name, value), nil
	default:
		p.report(p.errorAt(equals, "Invalid assignment target."))
		return expr, nil
	}
}

// conditional parses `cond ? then : else`; the else branch nests to the right.
func (p *Parser) conditional() (ast.Expression, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}
	if !p.match(token.Question) {
		return expr, nil
	}
	thenBranch, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Colon, "Expect ':' after then branch of conditional expression."); err != nil {
		return nil, err
	}
	elseBranch, err := p.conditional()
	if err != nil {
		return nil, err
	}
	return ast.NewConditionalExpression(expr, thenBranch, elseBranch), nil
}

func (p *Parser) or() (ast.Expression, error) {
	return p.logical(p.and, token.Or)
}

func (p *Parser) and() (ast.Expression, error) {
	return p.logical(p.equality, token.And)
}

func (p *Parser) equality() (ast.Expression, error) {
	return p.binary(p.comparison, token.BangEqual, token.EqualEqual)
}

func (p *Parser) comparison() (ast.Expression, error) {
	return p.binary(p.term, token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

func (p *Parser) term() (ast.Expression, error) {
	return p.binary(p.factor, token.Minus, token.Plus)
}

func (p *Parser) factor() (ast.Expression, error) {
	return p.binary(p.unary, token.Slash, token.Star)
}

// binary parses a left-associative chain of operand separated by operators.
func (p *Parser) binary(operand func() (ast.Expression, error), operators ...token.Kind) (ast.Expression, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(operators...) {
		operator := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpression(expr, operator, right)
	}
	return expr, nil
}

func (p *Parser) logical(operand func() (ast.Expression, error), operator token.Kind) (ast.Expression, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(operator) {
		op := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = ast.NewLogicalExpression(expr, op, right)
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.match(token.Bang, token.Minus) {
		operator := p.previous()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpression(operator, operand), nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(token.LeftParen):
			if expr, err = p.finishCall(expr); err != nil {
				return nil, err
			}
		case p.match(token.Dot):
			name, err := p.consume(token.Identifier, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = ast.NewGetExpression(expr, name)
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	var args []ast.Expression
	if !p.check(token.RightParen) {
		for {
			if len(args) == maxArity {
				p.report(p.errorAt(p.peek(), "Can't have more than 255 arguments."))
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren, err := p.consume(token.RightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return ast.NewCallExpression(callee, paren, args), nil
}
