package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/scanner"
	"lox/interpreter-go/pkg/token"
)

func (l *lox) readScript(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", errUsage
	}
	path := c.Args().First()
	source, err := os.ReadFile(path)
	if err != nil {
		l.code = driver.ExitIOErr
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(source), nil
}

// tokensCommand prints one table row per token, lexical errors after it.
func (l *lox) tokensCommand(c *cli.Context) error {
	source, err := l.readScript(c)
	if err != nil {
		return err
	}
	tokens, errs := scanner.Scan(source)

	table := tablewriter.NewWriter(l.stdout)
	table.SetHeader([]string{"Line", "Kind", "Lexeme", "Literal"})
	table.SetAutoFormatHeaders(false)
	for _, tok := range tokens {
		table.Append([]string{strconv.Itoa(tok.Line), tok.Kind.String(), tok.Lexeme, literalText(tok)})
	}
	table.Render()

	l.reportDiagnostics(errs)
	return nil
}

func literalText(tok token.Token) string {
	switch v := tok.Literal.(type) {
	case string:
		return strconv.Quote(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// astCommand prints every statement in parenthesized prefix form, or in
// reverse Polish notation with --rpn.
func (l *lox) astCommand(c *cli.Context) error {
	source, err := l.readScript(c)
	if err != nil {
		return err
	}
	program, errs := parser.ParseSource(source)
	if len(errs) > 0 {
		l.reportDiagnostics(errs)
		return nil
	}
	if c.Bool("rpn") {
		for _, stmt := range program.Statements {
			fmt.Fprintln(l.stdout, rpnLine(stmt))
		}
	} else if out := ast.PrintProgram(program.Statements); out != "" {
		fmt.Fprintln(l.stdout, out)
	}
	l.code = driver.ExitOK
	return nil
}

// rpnLine prints the expression of an expression or print statement in
// postfix form. Other statements fall back to the prefix form.
func rpnLine(stmt ast.Statement) string {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		return ast.PrintRPN(s.Expression)
	case *ast.PrintStatement:
		return ast.PrintRPN(s.Expression) + " print"
	default:
		return ast.Print(stmt)
	}
}

func (l *lox) reportDiagnostics(errs diag.List) {
	for _, d := range errs {
		fmt.Fprintln(l.stderr, l.paint(d.Error()))
	}
	if len(errs) > 0 {
		l.code = driver.ExitDataErr
	}
}
