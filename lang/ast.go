package lang

// NodeKind identifies the variant of an AST node. The set is closed; the
// evaluator dispatches with an exhaustive switch over these values.
type NodeKind string

const (
	NodeNumber          NodeKind = "Number"
	NodeFloat           NodeKind = "Float"
	NodeBool            NodeKind = "Bool"
	NodeChar            NodeKind = "Char"
	NodeString          NodeKind = "String"
	NodeIdentifier      NodeKind = "Identifier"
	NodeUnaryOp         NodeKind = "UnaryOp"
	NodeBinaryOp        NodeKind = "BinaryOp"
	NodeArray           NodeKind = "Array"
	NodeArrayAccess     NodeKind = "ArrayAccess"
	NodeArrayAssignment NodeKind = "ArrayAssignment"
	NodeFunctionCall    NodeKind = "FunctionCall"
	NodeFunctionDecl    NodeKind = "FunctionDeclaration"
	NodeVariableDecl    NodeKind = "VariableDeclaration"
	NodeVariableAssign  NodeKind = "VariableAssignment"
	NodeReturn          NodeKind = "Return"
	NodeIf              NodeKind = "If"
	NodeWhile           NodeKind = "While"
)

// Node is a single AST node. Nodes are immutable once constructed by the
// parser, so a parsed program may be evaluated any number of times and
// shared freely (e.g. the body of a while loop).
type Node interface {
	Kind() NodeKind
}

// Program is the parsed representation of a source file: an ordered
// sequence of top-level statements.
type Program struct {
	Statements []Node
}

// NumberNode is an integer literal.
type NumberNode struct {
	Value int64
}

func (NumberNode) Kind() NodeKind { return NodeNumber }

// FloatNode is a floating-point literal.
type FloatNode struct {
	Value float64
}

func (FloatNode) Kind() NodeKind { return NodeFloat }

// BoolNode is a boolean literal.
type BoolNode struct {
	Value bool
}

func (BoolNode) Kind() NodeKind { return NodeBool }

// CharNode is a character literal. The AST stores the code point; the
// evaluator decodes it back to a character for display.
type CharNode struct {
	Code rune
}

func (CharNode) Kind() NodeKind { return NodeChar }

// StringNode is a string literal.
type StringNode struct {
	Value string
}

func (StringNode) Kind() NodeKind { return NodeString }

// IdentifierNode references a binding by name.
type IdentifierNode struct {
	Name string
}

func (IdentifierNode) Kind() NodeKind { return NodeIdentifier }

// UnaryOpNode applies a prefix operator (+ or -) to its operand.
type UnaryOpNode struct {
	Op      Kind
	Operand Node
}

func (UnaryOpNode) Kind() NodeKind { return NodeUnaryOp }

// BinaryOpNode applies an infix operator to two operands. Compound
// assignment operators (+=, -=) share this shape; their left operand must
// be an identifier.
type BinaryOpNode struct {
	Left  Node
	Op    Kind
	Right Node
}

func (BinaryOpNode) Kind() NodeKind { return NodeBinaryOp }

// ArrayNode is an array literal with ordered element expressions.
type ArrayNode struct {
	Elements []Node
}

func (ArrayNode) Kind() NodeKind { return NodeArray }

// ArrayAccessNode indexes into an array expression.
type ArrayAccessNode struct {
	Array Node
	Index Node
}

func (ArrayAccessNode) Kind() NodeKind { return NodeArrayAccess }

// ArrayAssignmentNode mutates one element of an array in place:
// NAME at INDEX = VALUE.
type ArrayAssignmentNode struct {
	Array Node
	Index Node
	Value Node
}

func (ArrayAssignmentNode) Kind() NodeKind { return NodeArrayAssignment }

// FunctionCallNode invokes a named callable with ordered arguments.
type FunctionCallNode struct {
	Name string
	Args []Node
}

func (FunctionCallNode) Kind() NodeKind { return NodeFunctionCall }

// FunctionDeclNode declares a named function. Declaration does not execute
// the body; it binds a function value in the current scope.
type FunctionDeclNode struct {
	Name   string
	Params []string
	Body   []Node
}

func (FunctionDeclNode) Kind() NodeKind { return NodeFunctionDecl }

// VariableDeclNode introduces a new binding in the current scope.
type VariableDeclNode struct {
	Name  string
	Value Node
}

func (VariableDeclNode) Kind() NodeKind { return NodeVariableDecl }

// VariableAssignNode mutates an existing binding, searched up the scope
// chain.
type VariableAssignNode struct {
	Name  string
	Value Node
}

func (VariableAssignNode) Kind() NodeKind { return NodeVariableAssign }

// ReturnNode short-circuits the enclosing function call (or the whole
// program at top level) with its value.
type ReturnNode struct {
	Value Node
}

func (ReturnNode) Kind() NodeKind { return NodeReturn }

// IfNode evaluates Body when the condition is truthy, otherwise Else (which
// may be nil).
type IfNode struct {
	Cond Node
	Body []Node
	Else []Node
}

func (IfNode) Kind() NodeKind { return NodeIf }

// WhileNode repeatedly evaluates Body while the condition remains truthy.
type WhileNode struct {
	Cond Node
	Body []Node
}

func (WhileNode) Kind() NodeKind { return NodeWhile }
