// Package interpreter evaluates resolved Lox programs by walking the AST.
package interpreter

import (
	"io"
	"os"
	"time"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/resolver"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

// Interpreter drives evaluation of Lox AST nodes. The global environment and
// the accumulated resolver depths live as long as the interpreter, so a REPL
// can feed it one unit at a time. An Interpreter is not safe for concurrent
// use.
type Interpreter struct {
	global       *runtime.Environment
	locals       resolver.Locals
	out          io.Writer
	now          func() time.Time
	maxCallDepth int
	callDepth    int
}

type Option func(*Interpreter)

// WithOutput redirects `print`. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithMaxCallDepth turns runaway recursion into a "Stack overflow." runtime
// error once more than depth calls are active. Zero means unbounded.
func WithMaxCallDepth(depth int) Option {
	return func(i *Interpreter) { i.maxCallDepth = depth }
}

// WithClock replaces the time source behind the clock() native.
func WithClock(now func() time.Time) Option {
	return func(i *Interpreter) { i.now = now }
}

// New returns an interpreter whose global environment holds the natives.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		global: runtime.NewEnvironment(nil),
		locals: make(resolver.Locals),
		out:    os.Stdout,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.defineNatives()
	return i
}

// GlobalEnvironment returns the interpreter’s global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Resolve records the scope depths computed for a unit before it runs.
func (i *Interpreter) Resolve(locals resolver.Locals) {
	i.locals.Merge(locals)
}

// Execute runs a parsed and resolved program. When the program carries a
// trailing REPL expression its value is returned; otherwise the value is nil.
func (i *Interpreter) Execute(program *parser.Program, locals resolver.Locals) (runtime.Value, error) {
	i.Resolve(locals)
	if err := i.Interpret(program.Statements); err != nil {
		return nil, err
	}
	if program.Expression == nil {
		return nil, nil
	}
	return i.Evaluate(program.Expression)
}

// Interpret executes statements in order against the global environment and
// stops at the first runtime error.
func (i *Interpreter) Interpret(statements []ast.Statement) error {
	for _, stmt := range statements {
		if err := i.evaluateStatement(stmt, i.global); err != nil {
			if ret, ok := err.(returnSignal); ok {
				return diag.At(diag.Runtime, ret.keyword, "Can't return from top-level code.")
			}
			return err
		}
	}
	return nil
}

// Evaluate evaluates a single expression against the global environment.
func (i *Interpreter) Evaluate(expr ast.Expression) (runtime.Value, error) {
	return i.evaluateExpression(expr, i.global)
}

// ExecuteBody runs a function body in env and unwraps its return signal. It
// satisfies runtime.Executor.
func (i *Interpreter) ExecuteBody(body []ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	for _, stmt := range body {
		if err := i.evaluateStatement(stmt, env); err != nil {
			if ret, ok := err.(returnSignal); ok {
				return ret.value, nil
			}
			return nil, err
		}
	}
	return nil, nil
}

// returnSignal unwinds evaluation to the nearest call boundary.
type returnSignal struct {
	keyword token.Token
	value   runtime.Value
}

func (r returnSignal) Error() string {
	return "return outside function"
}
