package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) error {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		_, err := i.evaluateExpression(n.Expression, env)
		return err
	case *ast.PrintStatement:
		return i.evaluatePrintStatement(n, env)
	case *ast.VarDeclaration:
		return i.evaluateVarDeclaration(n, env)
	case *ast.Block:
		return i.evaluateBlock(n, env)
	case *ast.IfStatement:
		return i.evaluateIfStatement(n, env)
	case *ast.WhileLoop:
		return i.evaluateWhileLoop(n, env)
	case *ast.FunctionDefinition:
		env.Define(n.Name.Lexeme, &runtime.FunctionValue{Declaration: n, Closure: env})
		return nil
	case *ast.ReturnStatement:
		return i.evaluateReturnStatement(n, env)
	case *ast.ClassDefinition:
		return i.evaluateClassDefinition(n, env)
	default:
		return fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

// evaluateBlock runs the block in a child scope. The parent scope is the
// caller's env, so it is restored on every exit path.
func (i *Interpreter) evaluateBlock(block *ast.Block, env *runtime.Environment) error {
	scope := runtime.NewEnvironment(env)
	for _, stmt := range block.Statements {
		if err := i.evaluateStatement(stmt, scope); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluatePrintStatement(stmt *ast.PrintStatement, env *runtime.Environment) error {
	val, err := i.evaluateExpression(stmt.Expression, env)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(i.out, runtime.Stringify(val)); err != nil {
		return fmt.Errorf("print: %w", err)
	}
	return nil
}

func (i *Interpreter) evaluateVarDeclaration(decl *ast.VarDeclaration, env *runtime.Environment) error {
	if decl.Initializer == nil {
		env.Declare(decl.Name.Lexeme)
		return nil
	}
	val, err := i.evaluateExpression(decl.Initializer, env)
	if err != nil {
		return err
	}
	env.Define(decl.Name.Lexeme, val)
	return nil
}

func (i *Interpreter) evaluateIfStatement(stmt *ast.IfStatement, env *runtime.Environment) error {
	cond, err := i.evaluateExpression(stmt.Condition, env)
	if err != nil {
		return err
	}
	if runtime.IsTruthy(cond) {
		return i.evaluateStatement(stmt.Then, env)
	}
	if stmt.Else != nil {
		return i.evaluateStatement(stmt.Else, env)
	}
	return nil
}

func (i *Interpreter) evaluateWhileLoop(loop *ast.WhileLoop, env *runtime.Environment) error {
	for {
		cond, err := i.evaluateExpression(loop.Condition, env)
		if err != nil {
			return err
		}
		if !runtime.IsTruthy(cond) {
			return nil
		}
		if err := i.evaluateStatement(loop.Body, env); err != nil {
			return err
		}
	}
}

func (i *Interpreter) evaluateReturnStatement(stmt *ast.ReturnStatement, env *runtime.Environment) error {
	val, err := i.evaluateExpression(stmt.Value, env)
	if err != nil {
		return err
	}
	return returnSignal{keyword: stmt.Keyword, value: val}
}

func (i *Interpreter) evaluateClassDefinition(def *ast.ClassDefinition, env *runtime.Environment) error {
	methods := make(map[string]*runtime.FunctionValue, len(def.Methods))
	for _, method := range def.Methods {
		methods[method.Name.Lexeme] = &runtime.FunctionValue{
			Declaration:   method,
			Closure:       env,
			IsInitializer: method.Name.Lexeme == "init",
		}
	}
	env.Define(def.Name.Lexeme, &runtime.ClassValue{Name: def.Name.Lexeme, Methods: methods})
	return nil
}
