package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NilLiteral:
		return runtime.NilValue{}, nil
	case *ast.GroupingExpression:
		return i.evaluateExpression(n.Expression, env)
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	case *ast.LogicalExpression:
		return i.evaluateLogicalExpression(n, env)
	case *ast.ConditionalExpression:
		cond, err := i.evaluateExpression(n.Condition, env)
		if err != nil {
			return nil, err
		}
		if runtime.IsTruthy(cond) {
			return i.evaluateExpression(n.Then, env)
		}
		return i.evaluateExpression(n.Else, env)
	case *ast.VariableExpression:
		return i.lookupVariable(n.ID, n.Name, env)
	case *ast.ThisExpression:
		return i.lookupVariable(n.ID, n.Keyword, env)
	case *ast.AssignmentExpression:
		return i.evaluateAssignment(n, env)
	case *ast.CallExpression:
		return i.evaluateCallExpression(n, env)
	case *ast.GetExpression:
		obj, err := i.evaluateExpression(n.Object, env)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*runtime.InstanceValue)
		if !ok {
			return nil, runtimeError(n.Name, "Only instances have properties.")
		}
		return instance.Get(n.Name)
	case *ast.SetExpression:
		obj, err := i.evaluateExpression(n.Object, env)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*runtime.InstanceValue)
		if !ok {
			return nil, runtimeError(n.Name, "Only instances have fields.")
		}
		val, err := i.evaluateExpression(n.Value, env)
		if err != nil {
			return nil, err
		}
		instance.Set(n.Name, val)
		return val, nil
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) lookupVariable(id ast.NodeID, name token.Token, env *runtime.Environment) (runtime.Value, error) {
	if depth, ok := i.locals[id]; ok {
		return env.GetAt(depth, name)
	}
	return i.global.Get(name)
}

func (i *Interpreter) evaluateAssignment(assign *ast.AssignmentExpression, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateExpression(assign.Value, env)
	if err != nil {
		return nil, err
	}
	if depth, ok := i.locals[assign.ID]; ok {
		err = env.AssignAt(depth, assign.Name, val)
	} else {
		err = i.global.Assign(assign.Name, val)
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.Kind {
	case token.Bang:
		return runtime.BoolValue{Val: !runtime.IsTruthy(operand)}, nil
	case token.Minus:
		num, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, runtimeError(expr.Operator, "Operand must be a number.")
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	default:
		return nil, runtimeErrorf(expr.Operator, "Unsupported unary operator %s.", expr.Operator.Lexeme)
	}
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}

	op := expr.Operator
	switch op.Kind {
	case token.EqualEqual:
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case token.BangEqual:
		return runtime.BoolValue{Val: !runtime.Equal(left, right)}, nil
	case token.Plus:
		return add(op, left, right)
	case token.Greater, token.GreaterEqual, token.Less, token.LessEqual:
		return compare(op, left, right)
	}

	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return nil, runtimeError(op, "Operands must be numbers.")
	}
	switch op.Kind {
	case token.Minus:
		return runtime.NumberValue{Val: l.Val - r.Val}, nil
	case token.Slash:
		if r.Val == 0 {
			return nil, runtimeError(op, "Division by zero.")
		}
		return runtime.NumberValue{Val: l.Val / r.Val}, nil
	case token.Star:
		if r.Val == 0 {
			return nil, runtimeError(op, "Multiplication by zero.")
		}
		return runtime.NumberValue{Val: l.Val * r.Val}, nil
	default:
		return nil, runtimeErrorf(op, "Unsupported binary operator %s.", op.Lexeme)
	}
}

// add sums numbers and concatenates strings. A number paired with a string is
// rendered in its shortest decimal form first.
func add(op token.Token, left, right runtime.Value) (runtime.Value, error) {
	switch l := left.(type) {
	case runtime.NumberValue:
		switch r := right.(type) {
		case runtime.NumberValue:
			return runtime.NumberValue{Val: l.Val + r.Val}, nil
		case runtime.StringValue:
			return runtime.StringValue{Val: runtime.FormatNumber(l.Val) + r.Val}, nil
		}
	case runtime.StringValue:
		switch r := right.(type) {
		case runtime.StringValue:
			return runtime.StringValue{Val: l.Val + r.Val}, nil
		case runtime.NumberValue:
			return runtime.StringValue{Val: l.Val + runtime.FormatNumber(r.Val)}, nil
		}
	}
	return nil, runtimeError(op, "Operands must be two numbers or two strings.")
}

func compare(op token.Token, left, right runtime.Value) (runtime.Value, error) {
	var cmp int
	switch l := left.(type) {
	case runtime.NumberValue:
		r, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, runtimeError(op, "Operands must be two numbers or two strings.")
		}
		switch {
		case l.Val < r.Val:
			cmp = -1
		case l.Val > r.Val:
			cmp = 1
		case l.Val != r.Val:
			// NaN compares false every way.
			return runtime.BoolValue{Val: false}, nil
		}
	case runtime.StringValue:
		r, ok := right.(runtime.StringValue)
		if !ok {
			return nil, runtimeError(op, "Operands must be two numbers or two strings.")
		}
		switch {
		case l.Val < r.Val:
			cmp = -1
		case l.Val > r.Val:
			cmp = 1
		}
	default:
		return nil, runtimeError(op, "Operands must be two numbers or two strings.")
	}
	return runtime.BoolValue{Val: comparisonOp(op.Kind, cmp)}, nil
}

func comparisonOp(kind token.Kind, cmp int) bool {
	switch kind {
	case token.Greater:
		return cmp > 0
	case token.GreaterEqual:
		return cmp >= 0
	case token.Less:
		return cmp < 0
	case token.LessEqual:
		return cmp <= 0
	default:
		return false
	}
}

func (i *Interpreter) evaluateLogicalExpression(expr *ast.LogicalExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	if expr.Operator.Kind == token.Or {
		if runtime.IsTruthy(left) {
			return left, nil
		}
	} else if !runtime.IsTruthy(left) {
		return left, nil
	}
	return i.evaluateExpression(expr.Right, env)
}

func (i *Interpreter) evaluateCallExpression(call *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	calleeVal, err := i.evaluateExpression(call.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		val, err := i.evaluateExpression(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}

	callee, ok := calleeVal.(runtime.Callable)
	if !ok {
		return nil, runtimeError(call.Paren, "Can only call functions and classes.")
	}
	if len(args) != callee.Arity() {
		return nil, runtimeErrorf(call.Paren, "Expected %d arguments but got %d.", callee.Arity(), len(args))
	}

	i.callDepth++
	defer func() { i.callDepth-- }()
	if i.maxCallDepth > 0 && i.callDepth > i.maxCallDepth {
		return nil, runtimeError(call.Paren, "Stack overflow.")
	}
	return callee.Call(i, args)
}

func runtimeError(tok token.Token, message string) error {
	return diag.At(diag.Runtime, tok, message)
}

func runtimeErrorf(tok token.Token, format string, args ...any) error {
	return diag.Atf(diag.Runtime, tok, format, args...)
}
