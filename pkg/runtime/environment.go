package runtime

import (
	"sort"

	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/token"
)

// Environment provides lexical scoping for Lox runtime values. A nil Value
// marks a binding that is declared but not yet initialized.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define inserts or shadows an initialized binding in the current scope.
func (e *Environment) Define(name string, value Value) {
	if value == nil {
		value = NilValue{}
	}
	e.values[name] = value
}

// Declare inserts an uninitialized binding in the current scope.
func (e *Environment) Declare(name string) {
	e.values[name] = nil
}

// Assign updates an existing binding in the first scope where it appears.
func (e *Environment) Assign(name token.Token, value Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = value
			return nil
		}
	}
	return undefinedVariable(name)
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name token.Token) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name.Lexeme]; ok {
			return initialized(name, v)
		}
	}
	return nil, undefinedVariable(name)
}

// GetAt reads name from the environment exactly distance links outward,
// without searching.
func (e *Environment) GetAt(distance int, name token.Token) (Value, error) {
	env := e.Ancestor(distance)
	if env == nil {
		return nil, undefinedVariable(name)
	}
	v, ok := env.values[name.Lexeme]
	if !ok {
		return nil, undefinedVariable(name)
	}
	return initialized(name, v)
}

// AssignAt writes name in the environment exactly distance links outward.
func (e *Environment) AssignAt(distance int, name token.Token, value Value) error {
	env := e.Ancestor(distance)
	if env == nil {
		return undefinedVariable(name)
	}
	if _, ok := env.values[name.Lexeme]; !ok {
		return undefinedVariable(name)
	}
	env.values[name.Lexeme] = value
	return nil
}

// Ancestor walks distance parent links; nil when the chain is shorter.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance && env != nil; i++ {
		env = env.parent
	}
	return env
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the binding of name in this scope only. The second result
// is false when the name is absent or uninitialized.
func (e *Environment) Lookup(name string) (Value, bool) {
	v, ok := e.values[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func initialized(name token.Token, v Value) (Value, error) {
	if v == nil {
		return nil, diag.Atf(diag.Runtime, name, "Uninitialized variable '%s'.", name.Lexeme)
	}
	return v, nil
}

func undefinedVariable(name token.Token) error {
	return diag.Atf(diag.Runtime, name, "Undefined variable '%s'.", name.Lexeme)
}
