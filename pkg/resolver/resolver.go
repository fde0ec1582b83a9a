// Package resolver performs static scope resolution ahead of evaluation. It
// computes, for every variable reference, how many environments separate the
// reference from its declaration, and rejects programs with illegal binding
// patterns.
package resolver

import (
	"sort"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/token"
)

// Locals maps a resolvable node to its scope depth. Nodes without an entry
// refer to globals and are looked up dynamically.
type Locals map[ast.NodeID]int

// Merge copies every entry of other into l.
func (l Locals) Merge(other Locals) {
	for id, depth := range other {
		l[id] = depth
	}
}

type varState int

const (
	stateDeclared varState = iota
	stateDefined
	stateRead
)

type binding struct {
	name  token.Token
	state varState
	order int
}

type scope map[string]*binding

type functionKind int

const (
	functionNone functionKind = iota
	functionPlain
	functionMethod
)

type classKind int

const (
	classNone classKind = iota
	classPlain
)

type Option func(*Resolver)

// WithUnusedCheck toggles the end-of-pass unused variable check. It is on by
// default.
func WithUnusedCheck(enabled bool) Option {
	return func(r *Resolver) { r.checkUnused = enabled }
}

// Resolver is single use.
type Resolver struct {
	scopes          []scope
	locals          Locals
	currentFunction functionKind
	currentClass    classKind
	checkUnused     bool
	declarations    int
	// unresolvedReads holds names read while not yet declared anywhere on the
	// scope stack. A later top-level declaration of the same name counts as
	// read.
	unresolvedReads map[string]bool
}

// New returns a resolver with its implicit top-level scope in place.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		scopes:          []scope{make(scope)},
		locals:          make(Locals),
		checkUnused:     true,
		unresolvedReads: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve is shorthand for New(opts...).Resolve(statements).
func Resolve(statements []ast.Statement, opts ...Option) (Locals, error) {
	return New(opts...).Resolve(statements)
}

// ResolveProgram resolves the statements of program and then its trailing
// REPL expression, if any.
func ResolveProgram(program *parser.Program, opts ...Option) (Locals, error) {
	r := New(opts...)
	if err := r.resolveStatements(program.Statements); err != nil {
		return nil, err
	}
	if program.Expression != nil {
		if err := r.resolveExpression(program.Expression); err != nil {
			return nil, err
		}
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return r.locals, nil
}

// Resolve walks statements once. The first error aborts the pass; the
// returned error is then a *diag.Error of category Resolution.
func (r *Resolver) Resolve(statements []ast.Statement) (Locals, error) {
	if err := r.resolveStatements(statements); err != nil {
		return nil, err
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return r.locals, nil
}

func (r *Resolver) finish() error {
	if !r.checkUnused {
		return nil
	}
	var unused []*binding
	for depth, sc := range r.scopes {
		for name, b := range sc {
			if b.state == stateRead {
				continue
			}
			if depth == 0 && r.unresolvedReads[name] {
				continue
			}
			unused = append(unused, b)
		}
	}
	if len(unused) == 0 {
		return nil
	}
	sort.Slice(unused, func(i, j int) bool { return unused[i].order < unused[j].order })
	return errorf(unused[0].name, "Variable '%s' declared and not used.", unused[0].name.Lexeme)
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(scope))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) innermost() scope {
	return r.scopes[len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) error {
	sc := r.innermost()
	if _, exists := sc[name.Lexeme]; exists {
		return errorf(name, "Variable '%s' already declared in this scope.", name.Lexeme)
	}
	r.declarations++
	sc[name.Lexeme] = &binding{name: name, state: stateDeclared, order: r.declarations}
	return nil
}

func (r *Resolver) define(name token.Token) {
	if b, ok := r.innermost()[name.Lexeme]; ok && b.state == stateDeclared {
		b.state = stateDefined
	}
}

// resolveLocal records the depth of the nearest scope declaring name and
// returns that scope's binding, or nil when name is global.
func (r *Resolver) resolveLocal(id ast.NodeID, name token.Token) *binding {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if b, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[id] = len(r.scopes) - 1 - i
			return b
		}
	}
	return nil
}

func (r *Resolver) resolveFunction(fn *ast.FunctionDefinition, kind functionKind) error {
	enclosing := r.currentFunction
	r.currentFunction = kind
	defer func() { r.currentFunction = enclosing }()

	r.beginScope()
	defer r.endScope()
	for _, param := range fn.Params {
		if err := r.declare(param); err != nil {
			return err
		}
		r.define(param)
	}
	return r.resolveStatements(fn.Body)
}

func errorf(tok token.Token, format string, args ...any) error {
	return diag.Atf(diag.Resolution, tok, format, args...)
}
