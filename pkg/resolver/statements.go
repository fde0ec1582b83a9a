package resolver

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
)

func (r *Resolver) resolveStatements(statements []ast.Statement) error {
	for _, stmt := range statements {
		if err := r.resolveStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) resolveStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		defer r.endScope()
		return r.resolveStatements(s.Statements)
	case *ast.ExpressionStatement:
		return r.resolveExpression(s.Expression)
	case *ast.PrintStatement:
		return r.resolveExpression(s.Expression)
	case *ast.VarDeclaration:
		if err := r.declare(s.Name); err != nil {
			return err
		}
		if s.Initializer != nil {
			if err := r.resolveExpression(s.Initializer); err != nil {
				return err
			}
		}
		r.define(s.Name)
		return nil
	case *ast.IfStatement:
		if err := r.resolveExpression(s.Condition); err != nil {
			return err
		}
		if err := r.resolveStatement(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return r.resolveStatement(s.Else)
		}
		return nil
	case *ast.WhileLoop:
		if err := r.resolveExpression(s.Condition); err != nil {
			return err
		}
		return r.resolveStatement(s.Body)
	case *ast.FunctionDefinition:
		if err := r.declare(s.Name); err != nil {
			return err
		}
		r.define(s.Name)
		return r.resolveFunction(s, functionPlain)
	case *ast.ReturnStatement:
		if r.currentFunction == functionNone {
			return errorf(s.Keyword, "Can't return from top-level code.")
		}
		return r.resolveExpression(s.Value)
	case *ast.ClassDefinition:
		return r.resolveClass(s)
	default:
		return fmt.Errorf("resolver: unsupported statement %T", stmt)
	}
}

func (r *Resolver) resolveClass(class *ast.ClassDefinition) error {
	enclosing := r.currentClass
	r.currentClass = classPlain
	defer func() { r.currentClass = enclosing }()

	if err := r.declare(class.Name); err != nil {
		return err
	}
	r.define(class.Name)

	for _, method := range class.Methods {
		r.beginScope()
		r.innermost()["this"] = &binding{name: method.Name, state: stateRead}
		err := r.resolveFunction(method, functionMethod)
		r.endScope()
		if err != nil {
			return err
		}
	}
	return nil
}
