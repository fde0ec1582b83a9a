package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/token"
)

func mustParse(t *testing.T, source string, opts ...Option) *Program {
	t.Helper()
	program, errs := ParseSource(source, opts...)
	require.Empty(t, errs, "unexpected diagnostics: %v", errs)
	return program
}

func printed(program *Program) string {
	return ast.PrintProgram(program.Statements)
}

func TestParseExpressionPrecedence(t *testing.T) {
	cases := map[string]string{
		"1 + 2 * 3;":          "(; (+ 1 (* 2 3)))",
		"(1 + 2) * 3;":        "(; (* (Group (+ 1 2)) 3))",
		"1 - 2 - 3;":          "(; (- (- 1 2) 3))",
		"-a * !b;":            "(; (* (- a) (! b)))",
		"1 < 2 == 3 >= 4;":    "(; (== (< 1 2) (>= 3 4)))",
		"a or b and c;":       "(; (or a (and b c)))",
		"a ? b : c ? d : e;":  "(; (Cond a b (Cond c d e)))",
		"a = b = 1;":          "(; (= a (= b 1)))",
		"a = x ? 1 : 2;":      "(; (= a (Cond x 1 2)))",
		"obj.field.x = 1;":    "(; (set (. obj field) x 1))",
		"f(1)(2, \"s\").g();": "(; (call (. (call (call f 1) 2 s) g)))",
	}
	for source, want := range cases {
		t.Run(source, func(t *testing.T) {
			require.Equal(t, want, printed(mustParse(t, source)))
		})
	}
}

func TestParseStatements(t *testing.T) {
	program := mustParse(t, `
var a;
var b = "x";
if (a) print a; else { print b; }
while (false) a = 1;
fun add(x, y) { return x + y; }
fun nothing() { return; }
class Point { init(x) { this.x = x; } get() { return this.x; } }
`)
	want := strings.Join([]string{
		"(var a)",
		"(var b x)",
		"(if a (print a) (block (print b)))",
		"(while false (; (= a 1)))",
		"(fun add (x y) (return (+ x y)))",
		"(fun nothing () (return nil))",
		"(class Point (method init (x) (; (set this x x))) (method get () (return (. this x))))",
	}, "\n")
	require.Equal(t, want, printed(program))
}

func TestParseForDesugarsToWhile(t *testing.T) {
	program := mustParse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.Equal(t, "(block (var i 0) (while (< i 3) (block (print i) (; (= i (+ i 1))))))", printed(program))

	program = mustParse(t, "for (;;) print 1;")
	require.Equal(t, "(while true (print 1))", printed(program))

	program = mustParse(t, "for (i = 0; i < 1;) print i;")
	require.Equal(t, "(block (; (= i 0)) (while (< i 1) (print i)))", printed(program))
}

func TestParseReturnWithoutValueUsesNil(t *testing.T) {
	program := mustParse(t, "fun f() { return; }")
	fn := program.Statements[0].(*ast.FunctionDefinition)
	ret := fn.Body[0].(*ast.ReturnStatement)
	require.IsType(t, &ast.NilLiteral{}, ret.Value)
	require.Equal(t, token.Return, ret.Keyword.Kind)
}

func TestParseInvalidAssignmentTargetKeepsStatement(t *testing.T) {
	program, errs := ParseSource("1 = 2; print 3;")
	require.Len(t, errs, 1)
	require.Equal(t, "Syntax error at '=': Invalid assignment target. [line 1]", errs[0].Error())
	require.Len(t, program.Statements, 2)
}

func TestParseRecoversAtStatementBoundaries(t *testing.T) {
	program, errs := ParseSource("var = 1; print 2; var b = ;\nprint 3;")
	require.Len(t, errs, 2)
	require.Equal(t, "Syntax error at '=': Expect variable name. [line 1]", errs[0].Error())
	require.Equal(t, "Syntax error at ';': Expect expression. [line 1]", errs[1].Error())
	require.Equal(t, "(print 2)\n(print 3)", printed(program))
}

func TestParseRecoversAtKeyword(t *testing.T) {
	program, errs := ParseSource("print (1 + ;\nfun f() {}\nprint 2;")
	require.Len(t, errs, 1)
	require.Equal(t, 1, errs[0].Line)
	require.Equal(t, "(fun f ())\n(print 2)", printed(program))
}

func TestParseRecoversInsideBlock(t *testing.T) {
	program, errs := ParseSource("{ var 1; print 2; }")
	require.Len(t, errs, 1)
	require.Equal(t, "(block (print 2))", printed(program))
}

func TestParseUnterminatedBlockReportsAtEnd(t *testing.T) {
	_, errs := ParseSource("{ print 1;")
	require.Len(t, errs, 1)
	require.True(t, errs[0].AtEnd)
	require.Equal(t, "Syntax error at end: Expect '}' after block. [line 1]", errs[0].Error())
}

func TestParseParameterCap(t *testing.T) {
	params := make([]string, 256)
	for i := range params {
		params[i] = fmt.Sprintf("p%d", i)
	}
	program, errs := ParseSource("fun f(" + strings.Join(params, ", ") + ") {}")
	require.Len(t, errs, 1)
	require.Equal(t, "Can't have more than 255 parameters.", errs[0].Message)
	require.Len(t, program.Statements, 1)
	require.Len(t, program.Statements[0].(*ast.FunctionDefinition).Params, 256)
}

func TestParseArgumentCap(t *testing.T) {
	args := strings.TrimSuffix(strings.Repeat("0, ", 256), ", ")
	program, errs := ParseSource("f(" + args + ");")
	require.Len(t, errs, 1)
	require.Equal(t, "Can't have more than 255 arguments.", errs[0].Message)
	require.Len(t, program.Statements, 1)

	_, errs = ParseSource("f(" + strings.TrimSuffix(strings.Repeat("0, ", 255), ", ") + ");")
	require.Empty(t, errs)
}

func TestParseArityCapReportsOncePerList(t *testing.T) {
	params := make([]string, 300)
	for i := range params {
		params[i] = fmt.Sprintf("p%d", i)
	}
	program, errs := ParseSource("fun g(" + strings.Join(params, ", ") + ") {}")
	require.Len(t, errs, 1)
	require.Equal(t, "Can't have more than 255 parameters.", errs[0].Message)
	require.Len(t, program.Statements[0].(*ast.FunctionDefinition).Params, 300)

	program, errs = ParseSource("f(" + strings.Repeat("0, ", 299) + "0);")
	require.Len(t, errs, 1)
	require.Equal(t, "Can't have more than 255 arguments.", errs[0].Message)
	require.Len(t, program.Statements, 1)
}

func TestParseREPLTrailingExpression(t *testing.T) {
	program := mustParse(t, "var a = 1; a + 2", WithREPL())
	require.Len(t, program.Statements, 1)
	require.NotNil(t, program.Expression)
	require.Equal(t, "(+ a 2)", ast.Print(program.Expression))

	program = mustParse(t, "a = 3", WithREPL())
	require.Empty(t, program.Statements)
	require.Equal(t, "(= a 3)", ast.Print(program.Expression))

	program = mustParse(t, "print 1;", WithREPL())
	require.Nil(t, program.Expression)
	require.Len(t, program.Statements, 1)
}

func TestParseTrailingExpressionNeedsREPLMode(t *testing.T) {
	program, errs := ParseSource("1 + 2")
	require.Len(t, errs, 1)
	require.Equal(t, "Syntax error at end: Expect ';' after expression. [line 1]", errs[0].Error())
	require.Nil(t, program.Expression)

	_, errs = ParseSource("print 1", WithREPL())
	require.Len(t, errs, 1)
	require.Equal(t, "Expect ';' after value.", errs[0].Message)
}

func TestParseSourceCombinesLexicalErrors(t *testing.T) {
	program, errs := ParseSource("var a = @1;")
	require.Len(t, errs, 1)
	require.True(t, errs.Has(diag.Lexical))
	require.False(t, errs.Has(diag.Syntax))
	require.Equal(t, "(var a 1)", printed(program))
}

func TestParseAppendsMissingEOF(t *testing.T) {
	tokens := []token.Token{
		token.New(token.Print, "print", 1),
		token.New(token.True, "true", 1),
		token.New(token.Semicolon, ";", 1),
	}
	program, errs := Parse(tokens)
	require.Empty(t, errs)
	require.Equal(t, "(print true)", printed(program))
}
