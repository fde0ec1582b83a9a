package parser

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.match(token.False):
		return ast.NewBooleanLiteral(false), nil
	case p.match(token.True):
		return ast.NewBooleanLiteral(true), nil
	case p.match(token.Nil):
		return ast.NewNilLiteral(), nil
	case p.match(token.Number):
		value, _ := p.previous().Literal.(float64)
		return ast.NewNumberLiteral(value), nil
	case p.match(token.String):
		value, _ := p.previous().Literal.(string)
		return ast.NewStringLiteral(value), nil
	case p.match(token.This):
		return ast.NewThisExpression(p.previous()), nil
	case p.match(token.Identifier):
		return ast.NewVariableExpression(p.previous()), nil
	case p.match(token.LeftParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return ast.NewGroupingExpression(expr), nil
	default:
		return nil, p.errorAt(p.peek(), "Expect expression.")
	}
}
