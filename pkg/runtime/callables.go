package runtime

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/token"
)

// Executor runs a user function body inside env and returns the value carried
// by its `return`, or nil when the body completes normally.
type Executor interface {
	ExecuteBody(body []ast.Statement, env *Environment) (Value, error)
}

// Callable is implemented by every value that can appear as a callee.
type Callable interface {
	Value
	Arity() int
	Call(exec Executor, args []Value) (Value, error)
}

//-----------------------------------------------------------------------------
// Native functions
//-----------------------------------------------------------------------------

type NativeFunc func(args []Value) (Value, error)

type NativeFunctionValue struct {
	Name       string
	ParamCount int
	Impl       NativeFunc
}

func (v *NativeFunctionValue) Kind() Kind { return KindNativeFunction }

func (v *NativeFunctionValue) Arity() int { return v.ParamCount }

func (v *NativeFunctionValue) Call(_ Executor, args []Value) (Value, error) {
	return v.Impl(args)
}

//-----------------------------------------------------------------------------
// User functions
//-----------------------------------------------------------------------------

type FunctionValue struct {
	Declaration *ast.FunctionDefinition
	Closure     *Environment
	// IsInitializer marks a class's `init`; its calls evaluate to `this`.
	IsInitializer bool
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

func (v *FunctionValue) Arity() int { return len(v.Declaration.Params) }

// Call binds the arguments positionally in a fresh environment enclosing the
// closure and runs the body there.
func (v *FunctionValue) Call(exec Executor, args []Value) (Value, error) {
	env := NewEnvironment(v.Closure)
	for i, param := range v.Declaration.Params {
		env.Define(param.Lexeme, args[i])
	}
	result, err := exec.ExecuteBody(v.Declaration.Body, env)
	if err != nil {
		return nil, err
	}
	if v.IsInitializer {
		if this, ok := v.Closure.Lookup("this"); ok {
			return this, nil
		}
	}
	if result == nil {
		return NilValue{}, nil
	}
	return result, nil
}

// Bind returns a copy of v whose closure defines `this` as instance.
func (v *FunctionValue) Bind(instance *InstanceValue) *FunctionValue {
	env := NewEnvironment(v.Closure)
	env.Define("this", instance)
	return &FunctionValue{Declaration: v.Declaration, Closure: env, IsInitializer: v.IsInitializer}
}

//-----------------------------------------------------------------------------
// Classes and instances
//-----------------------------------------------------------------------------

type ClassValue struct {
	Name    string
	Methods map[string]*FunctionValue
}

func (v *ClassValue) Kind() Kind { return KindClass }

// FindMethod looks up an unbound method.
func (v *ClassValue) FindMethod(name string) (*FunctionValue, bool) {
	method, ok := v.Methods[name]
	return method, ok
}

// Arity is the arity of `init`, or 0 without one.
func (v *ClassValue) Arity() int {
	if init, ok := v.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs an instance and runs `init` on it when present. The
// instance is always the result.
func (v *ClassValue) Call(exec Executor, args []Value) (Value, error) {
	instance := NewInstance(v)
	if init, ok := v.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(exec, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

type InstanceValue struct {
	Class  *ClassValue
	Fields map[string]Value
}

func NewInstance(class *ClassValue) *InstanceValue {
	return &InstanceValue{Class: class, Fields: make(map[string]Value)}
}

func (v *InstanceValue) Kind() Kind { return KindInstance }

// Get prefers fields and falls back to a method bound to the instance.
func (v *InstanceValue) Get(name token.Token) (Value, error) {
	if field, ok := v.Fields[name.Lexeme]; ok {
		return field, nil
	}
	if method, ok := v.Class.FindMethod(name.Lexeme); ok {
		return method.Bind(v), nil
	}
	return nil, diag.Atf(diag.Runtime, name, "Undefined property '%s'.", name.Lexeme)
}

// Set always writes a field, even when a method of the same name exists.
func (v *InstanceValue) Set(name token.Token, value Value) {
	v.Fields[name.Lexeme] = value
}
