package interpreter

import (
	"bytes"
	"testing"

	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/resolver"
)

func newTestInterpreter(opts ...Option) (*Interpreter, *bytes.Buffer) {
	var out bytes.Buffer
	return New(append([]Option{WithOutput(&out)}, opts...)...), &out
}

// execSource runs source through the whole front end and then interp. Front
// end failures fail the test; runtime errors are returned.
func execSource(t *testing.T, interp *Interpreter, source string) error {
	t.Helper()
	program, errs := parser.ParseSource(source)
	if len(errs) != 0 {
		t.Fatalf("parse %q: %v", source, errs)
	}
	locals, err := resolver.ResolveProgram(program)
	if err != nil {
		t.Fatalf("resolve %q: %v", source, err)
	}
	_, err = interp.Execute(program, locals)
	return err
}

func runProgram(t *testing.T, source string, opts ...Option) (string, error) {
	t.Helper()
	interp, out := newTestInterpreter(opts...)
	err := execSource(t, interp, source)
	return out.String(), err
}

func mustRun(t *testing.T, source string, opts ...Option) string {
	t.Helper()
	out, err := runProgram(t, source, opts...)
	if err != nil {
		t.Fatalf("run %q: %v", source, err)
	}
	return out
}

func expectRuntimeError(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected runtime error %q, got nil", want)
	}
	if category, ok := diag.CategoryOf(err); !ok || category != diag.Runtime {
		t.Fatalf("expected runtime category, got %T: %v", err, err)
	}
	if err.Error() != want {
		t.Fatalf("error = %q, want %q", err.Error(), want)
	}
}
