package runtime

import (
	"fmt"
	"strconv"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindNil
	KindNumber
	KindFunction
	KindNativeFunction
	KindClass
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNil:
		return "nil"
	case KindNumber:
		return "number"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

// FormatNumber renders n in its shortest decimal form: 3 rather than 3.0,
// 2.5 rather than 2.500000.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

//-----------------------------------------------------------------------------
// Semantics shared by the evaluator
//-----------------------------------------------------------------------------

// IsTruthy reports the truthiness of v: nil and false are falsy.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case nil, NilValue:
		return false
	case BoolValue:
		return val.Val
	default:
		return true
	}
}

// Equal compares scalars structurally and instances by identity. Callables
// never compare equal, not even to themselves.
func Equal(a, b Value) bool {
	if _, ok := a.(Callable); ok {
		return false
	}
	if _, ok := b.(Callable); ok {
		return false
	}
	switch av := a.(type) {
	case NilValue:
		_, ok := b.(NilValue)
		return ok
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && av.Val == bv.Val
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	case *InstanceValue:
		bv, ok := b.(*InstanceValue)
		return ok && av == bv
	default:
		return false
	}
}

// Stringify renders v the way `print` shows it.
func Stringify(v Value) string {
	switch val := v.(type) {
	case nil, NilValue:
		return "nil"
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case NumberValue:
		return FormatNumber(val.Val)
	case StringValue:
		return val.Val
	case *InstanceValue:
		return fmt.Sprintf("<%s> instance", val.Class.Name)
	case Callable:
		return "<fn>"
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}
