package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders node in a parenthesized prefix form, e.g. `(+ 1 (* 2 3))`.
// It is a debugging aid; the output is not meant to be parsed back.
func Print(node Node) string {
	var p printer
	p.node(node)
	return p.String()
}

// PrintProgram renders each statement on its own line.
func PrintProgram(statements []Statement) string {
	lines := make([]string, len(statements))
	for i, stmt := range statements {
		lines[i] = Print(stmt)
	}
	return strings.Join(lines, "\n")
}

// PrintRPN renders expr in reverse Polish notation, e.g. `1 2 + 4 3 - *`.
// Only operators and atoms have a postfix form; anything else is printed as
// by Print.
func PrintRPN(expr Expression) string {
	switch e := expr.(type) {
	case *BinaryExpression:
		return PrintRPN(e.Left) + " " + PrintRPN(e.Right) + " " + e.Operator.Lexeme
	case *LogicalExpression:
		return PrintRPN(e.Left) + " " + PrintRPN(e.Right) + " " + e.Operator.Lexeme
	case *UnaryExpression:
		return PrintRPN(e.Operand) + " " + e.Operator.Lexeme
	case *GroupingExpression:
		return PrintRPN(e.Expression) + " Group"
	default:
		return Print(expr)
	}
}

type printer struct {
	strings.Builder
}

func (p *printer) parenthesize(name string, nodes ...Node) {
	p.WriteByte('(')
	p.WriteString(name)
	for _, n := range nodes {
		p.WriteByte(' ')
		p.node(n)
	}
	p.WriteByte(')')
}

func (p *printer) node(node Node) {
	switch n := node.(type) {
	case nil:
		p.WriteString("nil")
	case *NumberLiteral:
		p.WriteString(strconv.FormatFloat(n.Value, 'f', -1, 64))
	case *StringLiteral:
		p.WriteString(n.Value)
	case *BooleanLiteral:
		p.WriteString(strconv.FormatBool(n.Value))
	case *NilLiteral:
		p.WriteString("nil")
	case *GroupingExpression:
		p.parenthesize("Group", n.Expression)
	case *UnaryExpression:
		p.parenthesize(n.Operator.Lexeme, n.Operand)
	case *BinaryExpression:
		p.parenthesize(n.Operator.Lexeme, n.Left, n.Right)
	case *LogicalExpression:
		p.parenthesize(n.Operator.Lexeme, n.Left, n.Right)
	case *ConditionalExpression:
		p.parenthesize("Cond", n.Condition, n.Then, n.Else)
	case *VariableExpression:
		p.WriteString(n.Name.Lexeme)
	case *AssignmentExpression:
		p.parenthesize("= "+n.Name.Lexeme, n.Value)
	case *ThisExpression:
		p.WriteString("this")
	case *CallExpression:
		p.parenthesize("call", append([]Node{n.Callee}, expressionNodes(n.Arguments)...)...)
	case *GetExpression:
		p.WriteString("(. ")
		p.node(n.Object)
		p.WriteString(" " + n.Name.Lexeme + ")")
	case *SetExpression:
		p.WriteString("(set ")
		p.node(n.Object)
		p.WriteString(" " + n.Name.Lexeme + " ")
		p.node(n.Value)
		p.WriteByte(')')
	case *ExpressionStatement:
		p.parenthesize(";", n.Expression)
	case *PrintStatement:
		p.parenthesize("print", n.Expression)
	case *VarDeclaration:
		if n.Initializer == nil {
			p.WriteString("(var " + n.Name.Lexeme + ")")
			return
		}
		p.parenthesize("var "+n.Name.Lexeme, n.Initializer)
	case *Block:
		p.parenthesize("block", statementNodes(n.Statements)...)
	case *IfStatement:
		if n.Else == nil {
			p.parenthesize("if", n.Condition, n.Then)
			return
		}
		p.parenthesize("if", n.Condition, n.Then, n.Else)
	case *WhileLoop:
		p.parenthesize("while", n.Condition, n.Body)
	case *FunctionDefinition:
		p.function("fun", n)
	case *ReturnStatement:
		p.parenthesize("return", n.Value)
	case *ClassDefinition:
		p.WriteString("(class " + n.Name.Lexeme)
		for _, method := range n.Methods {
			p.WriteByte(' ')
			p.function("method", method)
		}
		p.WriteByte(')')
	default:
		p.WriteString(fmt.Sprintf("<%T>", node))
	}
}

func (p *printer) function(keyword string, fn *FunctionDefinition) {
	params := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = param.Lexeme
	}
	p.parenthesize(fmt.Sprintf("%s %s (%s)", keyword, fn.Name.Lexeme, strings.Join(params, " ")), statementNodes(fn.Body)...)
}

func expressionNodes(exprs []Expression) []Node {
	out := make([]Node, len(exprs))
	for i, e := range exprs {
		out[i] = e
	}
	return out
}

func statementNodes(stmts []Statement) []Node {
	out := make([]Node, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}
	return out
}
