package ast

import "lox/interpreter-go/pkg/token"

// Statements

type Block struct {
	nodeImpl
	statementMarker

	Statements []Statement `json:"statements"`
}

func NewBlock(statements []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: statements}
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

type PrintStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewPrintStatement(expr Expression) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement), Expression: expr}
}

type VarDeclaration struct {
	nodeImpl
	statementMarker

	Name        token.Token `json:"name"`
	Initializer Expression  `json:"initializer,omitempty"`
}

func NewVarDeclaration(name token.Token, initializer Expression) *VarDeclaration {
	return &VarDeclaration{nodeImpl: newNodeImpl(NodeVarDeclaration), Name: name, Initializer: initializer}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Then      Statement  `json:"then"`
	Else      Statement  `json:"else,omitempty"`
}

func NewIfStatement(cond Expression, then, otherwise Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: cond, Then: then, Else: otherwise}
}

type WhileLoop struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

func NewWhileLoop(cond Expression, body Statement) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: cond, Body: body}
}

type FunctionDefinition struct {
	nodeImpl
	statementMarker

	Name   token.Token   `json:"name"`
	Params []token.Token `json:"params"`
	Body   []Statement   `json:"body"`
}

func NewFunctionDefinition(name token.Token, params []token.Token, body []Statement) *FunctionDefinition {
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition), Name: name, Params: params, Body: body}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Keyword token.Token `json:"keyword"`
	Value   Expression  `json:"value"`
}

func NewReturnStatement(keyword token.Token, value Expression) *ReturnStatement {
	if value == nil {
		value = NewNilLiteral()
	}
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Keyword: keyword, Value: value}
}

type ClassDefinition struct {
	nodeImpl
	statementMarker

	Name    token.Token           `json:"name"`
	Methods []*FunctionDefinition `json:"methods"`
}

func NewClassDefinition(name token.Token, methods []*FunctionDefinition) *ClassDefinition {
	return &ClassDefinition{nodeImpl: newNodeImpl(NodeClassDefinition), Name: name, Methods: methods}
}
