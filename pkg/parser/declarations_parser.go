package parser

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

// declaration parses one declaration or statement. A failure is recorded and
// the parser resynchronizes, so callers only ever see a nil statement.
func (p *Parser) declaration() ast.Statement {
	stmt, err := p.declarationOrStatement()
	if err != nil {
		p.report(err)
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *Parser) declarationOrStatement() (ast.Statement, error) {
	switch {
	case p.match(token.Class):
		return p.classDeclaration()
	case p.match(token.Fun):
		return p.function("function")
	case p.match(token.Var):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() (ast.Statement, error) {
	name, err := p.consume(token.Identifier, "Expect class name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LeftBrace, "Expect '{' before class body."); err != nil {
		return nil, err
	}
	var methods []*ast.FunctionDefinition
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		method, err := p.function("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	if _, err := p.consume(token.RightBrace, "Expect '}' after class body."); err != nil {
		return nil, err
	}
	return ast.NewClassDefinition(name, methods), nil
}

// function parses the part of a function or method after `fun`. kind names
// the construct in diagnostics.
func (p *Parser) function(kind string) (*ast.FunctionDefinition, error) {
	name, err := p.consume(token.Identifier, "Expect "+kind+" name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LeftParen, "Expect '(' after "+kind+" name."); err != nil {
		return nil, err
	}
	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) == maxArity {
				p.report(p.errorAt(p.peek(), "Can't have more than 255 parameters."))
			}
			param, err := p.consume(token.Identifier, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LeftBrace, "Expect '{' before "+kind+" body."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionDefinition(name, params, body), nil
}

func (p *Parser) varDeclaration() (ast.Statement, error) {
	name, err := p.consume(token.Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var initializer ast.Expression
	if p.match(token.Equal) {
		if initializer, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return ast.NewVarDeclaration(name, initializer), nil
}
