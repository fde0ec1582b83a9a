package resolver

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
)

func (r *Resolver) resolveExpression(expr ast.Expression) error {
	switch e := expr.(type) {
	case *ast.NumberLiteral, *ast.StringLiteral, *ast.BooleanLiteral, *ast.NilLiteral:
		return nil
	case *ast.GroupingExpression:
		return r.resolveExpression(e.Expression)
	case *ast.UnaryExpression:
		return r.resolveExpression(e.Operand)
	case *ast.BinaryExpression:
		return r.resolveExpressions(e.Left, e.Right)
	case *ast.LogicalExpression:
		return r.resolveExpressions(e.Left, e.Right)
	case *ast.ConditionalExpression:
		return r.resolveExpressions(e.Condition, e.Then, e.Else)
	case *ast.CallExpression:
		if err := r.resolveExpression(e.Callee); err != nil {
			return err
		}
		return r.resolveExpressions(e.Arguments...)
	case *ast.GetExpression:
		return r.resolveExpression(e.Object)
	case *ast.SetExpression:
		return r.resolveExpressions(e.Value, e.Object)
	case *ast.VariableExpression:
		b := r.resolveLocal(e.ID, e.Name)
		if b == nil {
			r.unresolvedReads[e.Name.Lexeme] = true
			return nil
		}
		if b.state == stateDeclared {
			return errorf(e.Name, "Can't read local variable in its own initializer.")
		}
		b.state = stateRead
		return nil
	case *ast.AssignmentExpression:
		if err := r.resolveExpression(e.Value); err != nil {
			return err
		}
		r.resolveLocal(e.ID, e.Name)
		return nil
	case *ast.ThisExpression:
		if r.currentClass == classNone {
			return errorf(e.Keyword, "Can't use 'this' outside of a class.")
		}
		r.resolveLocal(e.ID, e.Keyword)
		return nil
	default:
		return fmt.Errorf("resolver: unsupported expression %T", expr)
	}
}

func (r *Resolver) resolveExpressions(exprs ...ast.Expression) error {
	for _, expr := range exprs {
		if err := r.resolveExpression(expr); err != nil {
			return err
		}
	}
	return nil
}
