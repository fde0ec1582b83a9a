package ast

import (
	"sync/atomic"

	"lox/interpreter-go/pkg/token"
)

type NodeType string

const (
	NodeNumberLiteral         NodeType = "NumberLiteral"
	NodeStringLiteral         NodeType = "StringLiteral"
	NodeBooleanLiteral        NodeType = "BooleanLiteral"
	NodeNilLiteral            NodeType = "NilLiteral"
	NodeGroupingExpression    NodeType = "GroupingExpression"
	NodeUnaryExpression       NodeType = "UnaryExpression"
	NodeBinaryExpression      NodeType = "BinaryExpression"
	NodeLogicalExpression     NodeType = "LogicalExpression"
	NodeConditionalExpression NodeType = "ConditionalExpression"
	NodeCallExpression        NodeType = "CallExpression"
	NodeGetExpression         NodeType = "GetExpression"
	NodeSetExpression         NodeType = "SetExpression"
	NodeVariableExpression    NodeType = "VariableExpression"
	NodeAssignmentExpression  NodeType = "AssignmentExpression"
	NodeThisExpression        NodeType = "ThisExpression"
	NodeBlock                 NodeType = "Block"
	NodeExpressionStatement   NodeType = "ExpressionStatement"
	NodePrintStatement        NodeType = "PrintStatement"
	NodeVarDeclaration        NodeType = "VarDeclaration"
	NodeIfStatement           NodeType = "IfStatement"
	NodeWhileLoop             NodeType = "WhileLoop"
	NodeFunctionDefinition    NodeType = "FunctionDefinition"
	NodeReturnStatement       NodeType = "ReturnStatement"
	NodeClassDefinition       NodeType = "ClassDefinition"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// NodeID identifies a variable-reference node so the resolver's depth map
// can be consulted at runtime without walking scopes again.
type NodeID uint64

var lastNodeID atomic.Uint64

// NextID mints a process-unique node id.
func NextID() NodeID {
	return NodeID(lastNodeID.Add(1))
}

// Resolvable is implemented by the nodes that carry a NodeID.
type Resolvable interface {
	Expression
	ResolutionID() NodeID
}

// Literals

type NumberLiteral struct {
	nodeImpl
	expressionMarker

	Value float64 `json:"value"`
}

func NewNumberLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NilLiteral struct {
	nodeImpl
	expressionMarker
}

func NewNilLiteral() *NilLiteral {
	return &NilLiteral{nodeImpl: newNodeImpl(NodeNilLiteral)}
}

// Expressions

type GroupingExpression struct {
	nodeImpl
	expressionMarker

	Expression Expression `json:"expression"`
}

func NewGroupingExpression(expr Expression) *GroupingExpression {
	return &GroupingExpression{nodeImpl: newNodeImpl(NodeGroupingExpression), Expression: expr}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator token.Token `json:"operator"`
	Operand  Expression  `json:"operand"`
}

func NewUnaryExpression(operator token.Token, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Left     Expression  `json:"left"`
	Operator token.Token `json:"operator"`
	Right    Expression  `json:"right"`
}

func NewBinaryExpression(left Expression, operator token.Token, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Left: left, Operator: operator, Right: right}
}

// LogicalExpression covers `and` and `or`; both short-circuit.
type LogicalExpression struct {
	nodeImpl
	expressionMarker

	Left     Expression  `json:"left"`
	Operator token.Token `json:"operator"`
	Right    Expression  `json:"right"`
}

func NewLogicalExpression(left Expression, operator token.Token, right Expression) *LogicalExpression {
	return &LogicalExpression{nodeImpl: newNodeImpl(NodeLogicalExpression), Left: left, Operator: operator, Right: right}
}

type ConditionalExpression struct {
	nodeImpl
	expressionMarker

	Condition Expression `json:"condition"`
	Then      Expression `json:"then"`
	Else      Expression `json:"else"`
}

func NewConditionalExpression(cond, then, otherwise Expression) *ConditionalExpression {
	return &ConditionalExpression{nodeImpl: newNodeImpl(NodeConditionalExpression), Condition: cond, Then: then, Else: otherwise}
}

type CallExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Paren     token.Token  `json:"paren"`
	Arguments []Expression `json:"arguments"`
}

func NewCallExpression(callee Expression, paren token.Token, args []Expression) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Callee: callee, Paren: paren, Arguments: args}
}

type GetExpression struct {
	nodeImpl
	expressionMarker

	Object Expression  `json:"object"`
	Name   token.Token `json:"name"`
}

func NewGetExpression(object Expression, name token.Token) *GetExpression {
	return &GetExpression{nodeImpl: newNodeImpl(NodeGetExpression), Object: object, Name: name}
}

type SetExpression struct {
	nodeImpl
	expressionMarker

	Object Expression  `json:"object"`
	Name   token.Token `json:"name"`
	Value  Expression  `json:"value"`
}

func NewSetExpression(object Expression, name token.Token, value Expression) *SetExpression {
	return &SetExpression{nodeImpl: newNodeImpl(NodeSetExpression), Object: object, Name: name, Value: value}
}

type VariableExpression struct {
	nodeImpl
	expressionMarker

	Name token.Token `json:"name"`
	ID   NodeID      `json:"id"`
}

func NewVariableExpression(name token.Token) *VariableExpression {
	return &VariableExpression{nodeImpl: newNodeImpl(NodeVariableExpression), Name: name, ID: NextID()}
}

func (v *VariableExpression) ResolutionID() NodeID { return v.ID }

type AssignmentExpression struct {
	nodeImpl
	expressionMarker

	Name  token.Token `json:"name"`
	Value Expression  `json:"value"`
	ID    NodeID      `json:"id"`
}

func NewAssignmentExpression(name token.Token, value Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Name: name, Value: value, ID: NextID()}
}

func (a *AssignmentExpression) ResolutionID() NodeID { return a.ID }

type ThisExpression struct {
	nodeImpl
	expressionMarker

	Keyword token.Token `json:"keyword"`
	ID      NodeID      `json:"id"`
}

func NewThisExpression(keyword token.Token) *ThisExpression {
	return &ThisExpression{nodeImpl: newNodeImpl(NodeThisExpression), Keyword: keyword, ID: NextID()}
}

func (t *ThisExpression) ResolutionID() NodeID { return t.ID }
