package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/parser"
)

func parse(t *testing.T, source string, opts ...parser.Option) *parser.Program {
	t.Helper()
	program, errs := parser.ParseSource(source, opts...)
	require.Empty(t, errs, "unexpected diagnostics: %v", errs)
	return program
}

func resolveSource(t *testing.T, source string, opts ...Option) (Locals, error) {
	t.Helper()
	return Resolve(parse(t, source).Statements, opts...)
}

func requireResolutionError(t *testing.T, err error, want string) {
	t.Helper()
	require.Error(t, err)
	category, ok := diag.CategoryOf(err)
	require.True(t, ok, "expected a diagnostic, got %T", err)
	require.Equal(t, diag.Resolution, category)
	require.Equal(t, want, err.Error())
}

func TestResolveAcceptsShadowing(t *testing.T) {
	locals, err := resolveSource(t, `var a = "global"; { var a = "local"; print a; } print a;`)
	require.NoError(t, err)
	require.Len(t, locals, 2)
	for _, depth := range locals {
		require.Equal(t, 0, depth)
	}
}

func TestResolveRejectsSelfReferentialInitializer(t *testing.T) {
	_, err := resolveSource(t, "{ var a = a; }")
	requireResolutionError(t, err, "Resolution error at 'a': Can't read local variable in its own initializer. [line 1]")

	_, err = resolveSource(t, `var a = "outer"; { var a = a; print a; } print a;`)
	requireResolutionError(t, err, "Resolution error at 'a': Can't read local variable in its own initializer. [line 1]")
}

func TestResolveRejectsDuplicateInSameScope(t *testing.T) {
	_, err := resolveSource(t, "{ var a = 1;\nvar a = 2; print a; }")
	requireResolutionError(t, err, "Resolution error at 'a': Variable 'a' already declared in this scope. [line 2]")

	_, err = resolveSource(t, "fun f(a, a) { print a; } print f;")
	requireResolutionError(t, err, "Resolution error at 'a': Variable 'a' already declared in this scope. [line 1]")
}

func TestResolveAcceptsRedeclarationInNestedBlock(t *testing.T) {
	_, err := resolveSource(t, "{ var a = 1; { var a = 2; print a; } print a; }")
	require.NoError(t, err)
}

func TestResolveRejectsTopLevelReturn(t *testing.T) {
	_, err := resolveSource(t, "return 1;")
	requireResolutionError(t, err, "Resolution error at 'return': Can't return from top-level code. [line 1]")
}

func TestResolveRejectsThisOutsideClass(t *testing.T) {
	_, err := resolveSource(t, "print this;")
	requireResolutionError(t, err, "Resolution error at 'this': Can't use 'this' outside of a class. [line 1]")

	_, err = resolveSource(t, "fun f() { return this; } print f;")
	requireResolutionError(t, err, "Resolution error at 'this': Can't use 'this' outside of a class. [line 1]")
}

func TestResolveReportsFirstUnusedVariable(t *testing.T) {
	_, err := resolveSource(t, "var z = 1;\nvar a = 2;\nvar b = 3; print b;")
	requireResolutionError(t, err, "Resolution error at 'z': Variable 'z' declared and not used. [line 1]")

	_, err = resolveSource(t, "var a; a = 1;")
	requireResolutionError(t, err, "Resolution error at 'a': Variable 'a' declared and not used. [line 1]")

	_, err = resolveSource(t, "var z = 1;", WithUnusedCheck(false))
	require.NoError(t, err)
}

func TestResolveOnlyChecksLiveScopesForUnused(t *testing.T) {
	_, err := resolveSource(t, "{ var unused = 1; } fun f(p) {} print f;")
	require.NoError(t, err)
}

func TestResolveReadInNestedScopeMarksDeclaringScope(t *testing.T) {
	_, err := resolveSource(t, "var a = 1; { print a; }")
	require.NoError(t, err)
}

func TestResolveForwardReferenceToLaterGlobal(t *testing.T) {
	_, err := resolveSource(t, `
fun isEven(n) { if (n == 0) return true; return isOdd(n - 1); }
fun isOdd(n) { if (n == 0) return false; return isEven(n - 1); }
print isEven(4);
`)
	require.NoError(t, err)
}

func TestResolveClosureDepths(t *testing.T) {
	program := parse(t, "fun outer() { var x = 1; fun inner() { return x; } return inner; } print outer;")
	locals, err := Resolve(program.Statements)
	require.NoError(t, err)

	outer := program.Statements[0].(*ast.FunctionDefinition)
	inner := outer.Body[1].(*ast.FunctionDefinition)
	x := inner.Body[0].(*ast.ReturnStatement).Value.(*ast.VariableExpression)
	require.Equal(t, 1, locals[x.ID])

	ret := outer.Body[2].(*ast.ReturnStatement).Value.(*ast.VariableExpression)
	require.Equal(t, 0, locals[ret.ID])

	printed := program.Statements[1].(*ast.PrintStatement).Expression.(*ast.VariableExpression)
	require.Equal(t, 0, locals[printed.ID])
}

func TestResolveThisInMethod(t *testing.T) {
	program := parse(t, "class C { get() { return this; } } print C;")
	locals, err := Resolve(program.Statements)
	require.NoError(t, err)

	method := program.Statements[0].(*ast.ClassDefinition).Methods[0]
	this := method.Body[0].(*ast.ReturnStatement).Value.(*ast.ThisExpression)
	require.Equal(t, 1, locals[this.ID])
}

func TestResolveGlobalsHaveNoEntryWhenUndeclared(t *testing.T) {
	program := parse(t, "print clock;")
	locals, err := Resolve(program.Statements)
	require.NoError(t, err)
	require.Empty(t, locals)
}

func TestResolveProgramIncludesTrailingExpression(t *testing.T) {
	program := parse(t, "var a = 1; a", parser.WithREPL())
	locals, err := ResolveProgram(program)
	require.NoError(t, err)
	v := program.Expression.(*ast.VariableExpression)
	require.Equal(t, 0, locals[v.ID])
}

func TestLocalsMerge(t *testing.T) {
	into := Locals{1: 0}
	into.Merge(Locals{2: 3})
	require.Equal(t, Locals{1: 0, 2: 3}, into)
}
