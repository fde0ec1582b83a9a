package parser

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(token.For):
		return p.forStatement()
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.Return):
		return p.returnStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.LeftBrace):
		statements, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.NewBlock(statements), nil
	default:
		return p.expressionStatement()
	}
}

// forStatement desugars `for (init; cond; incr) body` into
// `{ init; while (cond) { body; incr; } }`. A missing condition is `true`.
func (p *Parser) forStatement() (ast.Statement, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var (
		initializer ast.Statement
		err         error
	)
	switch {
	case p.match(token.Semicolon):
	case p.match(token.Var):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition ast.Expression
	if !p.check(token.Semicolon) {
		if condition, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment ast.Expression
	if !p.check(token.RightParen) {
		if increment, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	if increment != nil {
		body = ast.NewBlock([]ast.Statement{body, ast.NewExpressionStatement(increment)})
	}
	if condition == nil {
		condition = ast.NewBooleanLiteral(true)
	}
	body = ast.NewWhileLoop(condition, body)
	if initializer != nil {
		body = ast.NewBlock([]ast.Statement{initializer, body})
	}
	return body, nil
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}
	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Statement
	if p.match(token.Else) {
		if elseBranch, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return ast.NewIfStatement(condition, thenBranch, elseBranch), nil
}

func (p *Parser) printStatement() (ast.Statement, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return ast.NewPrintStatement(value), nil
}

func (p *Parser) returnStatement() (ast.Statement, error) {
	keyword := p.previous()
	var (
		value ast.Expression
		err   error
	)
	if !p.check(token.Semicolon) {
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return ast.NewReturnStatement(keyword, value), nil
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileLoop(condition, body), nil
}

// block parses declarations up to the closing brace; the opening brace has
// already been consumed. Errors inside the block are recovered per statement.
func (p *Parser) block() ([]ast.Statement, error) {
	var statements []ast.Statement
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	if _, err := p.consume(token.RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(expr), nil
}
