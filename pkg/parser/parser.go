// Package parser builds the Lox AST from a token stream by recursive descent.
package parser

import (
	"errors"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/scanner"
	"lox/interpreter-go/pkg/token"
)

// maxArity caps both parameter lists and argument lists.
const maxArity = 255

// Program is the parse result of one execution unit.
type Program struct {
	Statements []ast.Statement
	// Expression is set only in REPL mode, when the unit ends with a bare
	// expression and no terminating ';'.
	Expression ast.Expression
}

type Option func(*Parser)

// WithREPL lets the last item of the unit be a bare expression.
func WithREPL() Option {
	return func(p *Parser) { p.repl = true }
}

// Parser is single use: construct it over one token slice and call Parse once.
type Parser struct {
	tokens  []token.Token
	current int
	repl    bool
	errs    diag.List
}

// New constructs a parser over tokens, which must end with an EOF token.
func New(tokens []token.Token, opts ...Option) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens, token.New(token.EOF, "", line))
	}
	p := &Parser{tokens: tokens}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse is shorthand for New(tokens, opts...).Parse().
func Parse(tokens []token.Token, opts ...Option) (*Program, diag.List) {
	return New(tokens, opts...).Parse()
}

// ParseSource scans and parses source. The returned list holds the lexical
// errors followed by the syntax errors.
func ParseSource(source string, opts ...Option) (*Program, diag.List) {
	tokens, lexErrs := scanner.Scan(source)
	program, parseErrs := Parse(tokens, opts...)
	var errs diag.List
	errs.Append(lexErrs)
	errs.Append(parseErrs)
	return program, errs
}

// Parse consumes every token. Statements that parsed cleanly are kept even
// when others failed; each failed statement contributes one diagnostic.
func (p *Parser) Parse() (*Program, diag.List) {
	program := &Program{}
	for !p.isAtEnd() {
		if p.repl {
			if expr, ok := p.trailingExpression(); ok {
				program.Expression = expr
				break
			}
		}
		if stmt := p.declaration(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}
	return program, p.errs
}

// trailingExpression speculatively parses an expression that runs to EOF.
// On any other outcome the cursor and the error list are restored.
func (p *Parser) trailingExpression() (ast.Expression, bool) {
	if startsStatement(p.peek().Kind) || p.check(token.LeftBrace) {
		return nil, false
	}
	start, errCount := p.current, len(p.errs)
	expr, err := p.expression()
	if err == nil && p.isAtEnd() && len(p.errs) == errCount {
		return expr, true
	}
	p.current = start
	p.errs = p.errs[:errCount]
	return nil, false
}

// report records a diagnostic without unwinding the current statement.
func (p *Parser) report(err error) {
	var d *diag.Error
	if errors.As(err, &d) {
		p.errs.Add(d)
	}
}

// synchronize discards tokens until just past a ';' or up to a keyword that
// starts a statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}
		if startsStatement(p.peek().Kind) {
			return
		}
		p.advance()
	}
}

func startsStatement(kind token.Kind) bool {
	switch kind {
	case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
		return true
	default:
		return false
	}
}
