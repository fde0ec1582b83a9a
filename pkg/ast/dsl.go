package ast

import "lox/interpreter-go/pkg/token"

// Token helpers. Synthesised tokens all sit on line 1.

var operatorKinds = map[string]token.Kind{
	"+":   token.Plus,
	"-":   token.Minus,
	"*":   token.Star,
	"/":   token.Slash,
	"!":   token.Bang,
	"==":  token.EqualEqual,
	"!=":  token.BangEqual,
	"<":   token.Less,
	"<=":  token.LessEqual,
	">":   token.Greater,
	">=":  token.GreaterEqual,
	"and": token.And,
	"or":  token.Or,
}

func Op(lexeme string) token.Token {
	kind, ok := operatorKinds[lexeme]
	if !ok {
		kind = token.Illegal
	}
	return token.New(kind, lexeme, 1)
}

func Name(name string) token.Token {
	return token.New(token.Identifier, name, 1)
}

// Literal helpers.

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Nil() *NilLiteral {
	return NewNilLiteral()
}

// Expression helpers.

func Var(name string) *VariableExpression {
	return NewVariableExpression(Name(name))
}

func Assign(name string, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(Name(name), value)
}

func Group(expr Expression) *GroupingExpression {
	return NewGroupingExpression(expr)
}

func Un(operator string, operand Expression) *UnaryExpression {
	return NewUnaryExpression(Op(operator), operand)
}

func Bin(operator string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(left, Op(operator), right)
}

func And(left, right Expression) *LogicalExpression {
	return NewLogicalExpression(left, Op("and"), right)
}

func Or(left, right Expression) *LogicalExpression {
	return NewLogicalExpression(left, Op("or"), right)
}

func Cond(cond, then, otherwise Expression) *ConditionalExpression {
	return NewConditionalExpression(cond, then, otherwise)
}

func Call(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(callee, token.New(token.RightParen, ")", 1), args)
}

func Get(object Expression, name string) *GetExpression {
	return NewGetExpression(object, Name(name))
}

func SetField(object Expression, name string, value Expression) *SetExpression {
	return NewSetExpression(object, Name(name), value)
}

func This() *ThisExpression {
	return NewThisExpression(token.New(token.This, "this", 1))
}

// Statement helpers.

func Blk(statements ...Statement) *Block {
	return NewBlock(statements)
}

func ExprStmt(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func PrintStmt(expr Expression) *PrintStatement {
	return NewPrintStatement(expr)
}

func VarDecl(name string, initializer Expression) *VarDeclaration {
	return NewVarDeclaration(Name(name), initializer)
}

func IfStmt(cond Expression, then, otherwise Statement) *IfStatement {
	return NewIfStatement(cond, then, otherwise)
}

func While(cond Expression, body Statement) *WhileLoop {
	return NewWhileLoop(cond, body)
}

func Fn(name string, params []string, body ...Statement) *FunctionDefinition {
	tokens := make([]token.Token, len(params))
	for i, param := range params {
		tokens[i] = Name(param)
	}
	return NewFunctionDefinition(Name(name), tokens, body)
}

func Ret(value Expression) *ReturnStatement {
	return NewReturnStatement(token.New(token.Return, "return", 1), value)
}

func Class(name string, methods ...*FunctionDefinition) *ClassDefinition {
	return NewClassDefinition(Name(name), methods)
}
