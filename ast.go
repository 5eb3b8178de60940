// ast.go — the AST node family.
//
// Tagged variants over inheritance: a parent back-link set once at
// construction, and flags as a plain bitset rather than a subtype marker.
// Every node kind is its own struct implementing Node, rather than a
// generic leaf/list tree with a kind tag bolted on.
package zr

// NodeKind tags which concrete type a Node value holds.
type NodeKind int

const (
	KindSource NodeKind = iota
	KindBlock
	KindCommandStatement
	KindCommandName
	KindIfStatement
	KindForInStatement
	KindFunctionDeclaration
	KindParameter
	KindTypeReference
	KindVariableDeclaration
	KindVariableStatement
	KindBinaryExpression
	KindUnaryExpression
	KindInterpolatedString
	KindArrayLiteral
	KindObjectLiteral
	KindPropertyAssignment
	KindPropertyAccessExpression
	KindArrayIndexExpression
	KindParenthesizedExpression
	KindInnerExpression
	KindPrefixExpression
	KindOptionExpression
	KindInvalid

	// terminals
	KindString
	KindNumber
	KindBoolean
	KindIdentifier
	KindOperatorToken
	KindPrefixToken
	KindEndOfStatement
	KindOptionKey
)

func (k NodeKind) String() string {
	names := map[NodeKind]string{
		KindSource:                   "Source",
		KindBlock:                    "Block",
		KindCommandStatement:         "CommandStatement",
		KindCommandName:              "CommandName",
		KindIfStatement:              "IfStatement",
		KindForInStatement:           "ForInStatement",
		KindFunctionDeclaration:      "FunctionDeclaration",
		KindParameter:                "Parameter",
		KindTypeReference:            "TypeReference",
		KindVariableDeclaration:      "VariableDeclaration",
		KindVariableStatement:        "VariableStatement",
		KindBinaryExpression:         "BinaryExpression",
		KindUnaryExpression:          "UnaryExpression",
		KindInterpolatedString:       "InterpolatedString",
		KindArrayLiteral:             "ArrayLiteral",
		KindObjectLiteral:            "ObjectLiteral",
		KindPropertyAssignment:       "PropertyAssignment",
		KindPropertyAccessExpression: "PropertyAccessExpression",
		KindArrayIndexExpression:     "ArrayIndexExpression",
		KindParenthesizedExpression:  "ParenthesizedExpression",
		KindInnerExpression:          "InnerExpression",
		KindPrefixExpression:         "PrefixExpression",
		KindOptionExpression:         "OptionExpression",
		KindInvalid:                  "Invalid",
		KindString:                   "String",
		KindNumber:                   "Number",
		KindBoolean:                  "Boolean",
		KindIdentifier:               "Identifier",
		KindOperatorToken:            "OperatorToken",
		KindPrefixToken:              "PrefixToken",
		KindEndOfStatement:           "EndOfStatement",
		KindOptionKey:                "OptionKey",
	}
	if s, ok := names[k]; ok {
		return s
	}
	return "Unknown"
}

// NodeFlags mirrors Token's bitset shape: a plain bitset, not a subtype
// marker.
type NodeFlags uint8

const (
	NodeFlagNone    NodeFlags = 0
	NodeHasError    NodeFlags = 1 << 0
	NodeUnterminated NodeFlags = 1 << 1
)

// Node is the common interface every AST variant satisfies. Mutator
// methods are unexported: only this package's factories and parser may
// assign a parent or span, keeping post-construction mutation inside a
// single ownership context.
type Node interface {
	NodeKind() NodeKind
	Parent() Node
	Span() (start, end int)
	Flags() NodeFlags
	Children() []Node

	setParent(Node)
	setSpan(start, end int)
	addFlags(NodeFlags)
}

// baseNode implements the common bookkeeping fields embedded into every
// concrete node type.
type baseNode struct {
	kind   NodeKind
	parent Node
	start  int
	end    int
	flags  NodeFlags
}

func (b *baseNode) NodeKind() NodeKind        { return b.kind }
func (b *baseNode) Parent() Node              { return b.parent }
func (b *baseNode) Span() (int, int)          { return b.start, b.end }
func (b *baseNode) Flags() NodeFlags          { return b.flags }
func (b *baseNode) setParent(p Node)          { b.parent = p }
func (b *baseNode) setSpan(start, end int)    { b.start, b.end = start, end }
func (b *baseNode) addFlags(f NodeFlags)      { b.flags |= f }

func adopt(parent Node, children ...Node) {
	for _, c := range children {
		if c != nil {
			c.setParent(parent)
		}
	}
}

// ----- terminals -----

type StringNode struct {
	baseNode
	Text          string
	Quote         byte
	Unterminated  bool
}

func (n *StringNode) Children() []Node { return nil }

func NewStringNode(text string, quote byte, unterminated bool, start, end int) *StringNode {
	n := &StringNode{baseNode: baseNode{kind: KindString, start: start, end: end}, Text: text, Quote: quote, Unterminated: unterminated}
	if unterminated {
		n.addFlags(NodeHasError | NodeUnterminated)
	}
	return n
}

type NumberNode struct {
	baseNode
	Value float64
}

func (n *NumberNode) Children() []Node { return nil }

func NewNumberNode(value float64, start, end int) *NumberNode {
	return &NumberNode{baseNode: baseNode{kind: KindNumber, start: start, end: end}, Value: value}
}

type BooleanNode struct {
	baseNode
	Value bool
}

func (n *BooleanNode) Children() []Node { return nil }

func NewBooleanNode(value bool, start, end int) *BooleanNode {
	return &BooleanNode{baseNode: baseNode{kind: KindBoolean, start: start, end: end}, Value: value}
}

type IdentifierNode struct {
	baseNode
	Name string
}

func (n *IdentifierNode) Children() []Node { return nil }

func NewIdentifierNode(name string, start, end int) *IdentifierNode {
	return &IdentifierNode{baseNode: baseNode{kind: KindIdentifier, start: start, end: end}, Name: name}
}

type OperatorTokenNode struct {
	baseNode
	Operator string
}

func (n *OperatorTokenNode) Children() []Node { return nil }

func NewOperatorTokenNode(op string, start, end int) *OperatorTokenNode {
	return &OperatorTokenNode{baseNode: baseNode{kind: KindOperatorToken, start: start, end: end}, Operator: op}
}

type PrefixTokenNode struct {
	baseNode
	Value string
}

func (n *PrefixTokenNode) Children() []Node { return nil }

func NewPrefixTokenNode(value string, start, end int) *PrefixTokenNode {
	return &PrefixTokenNode{baseNode: baseNode{kind: KindPrefixToken, start: start, end: end}, Value: value}
}

type EndOfStatementNode struct {
	baseNode
}

func (n *EndOfStatementNode) Children() []Node { return nil }

func NewEndOfStatementNode(start, end int) *EndOfStatementNode {
	return &EndOfStatementNode{baseNode: baseNode{kind: KindEndOfStatement, start: start, end: end}}
}

// OptionKeyNode is `--flag` or a single exploded letter of a `-abc`
// cluster. Right is carried in the field list but is left unset in
// practice: an attached value is represented by wrapping this node in an
// OptionExpressionNode instead (see DESIGN.md).
type OptionKeyNode struct {
	baseNode
	Flag   string
	Prefix string
	Right  Node
}

func (n *OptionKeyNode) Children() []Node {
	if n.Right != nil {
		return []Node{n.Right}
	}
	return nil
}

func NewOptionKeyNode(flag, prefix string, start, end int) *OptionKeyNode {
	return &OptionKeyNode{baseNode: baseNode{kind: KindOptionKey, start: start, end: end}, Flag: flag, Prefix: prefix}
}

// ----- composites -----

type SourceNode struct {
	baseNode
	Statements []Node
}

func (n *SourceNode) Children() []Node { return n.Statements }

func NewSourceNode(statements []Node, start, end int) *SourceNode {
	n := &SourceNode{baseNode: baseNode{kind: KindSource, start: start, end: end}, Statements: statements}
	adopt(n, statements...)
	return n
}

type BlockNode struct {
	baseNode
	Statements []Node
}

func (n *BlockNode) Children() []Node { return n.Statements }

func NewBlockNode(statements []Node, start, end int) *BlockNode {
	n := &BlockNode{baseNode: baseNode{kind: KindBlock, start: start, end: end}, Statements: statements}
	adopt(n, statements...)
	return n
}

type CommandNameNode struct {
	baseNode
	Name *StringNode
}

func (n *CommandNameNode) Children() []Node { return []Node{n.Name} }

func NewCommandNameNode(name *StringNode, start, end int) *CommandNameNode {
	n := &CommandNameNode{baseNode: baseNode{kind: KindCommandName, start: start, end: end}, Name: name}
	adopt(n, name)
	return n
}

type CommandStatementNode struct {
	baseNode
	Command      *CommandNameNode
	Args         []Node
	Unterminated bool
}

func (n *CommandStatementNode) Children() []Node {
	children := make([]Node, 0, len(n.Args)+1)
	children = append(children, n.Command)
	children = append(children, n.Args...)
	return children
}

func NewCommandStatementNode(command *CommandNameNode, args []Node, unterminated bool, start, end int) *CommandStatementNode {
	n := &CommandStatementNode{baseNode: baseNode{kind: KindCommandStatement, start: start, end: end}, Command: command, Args: args, Unterminated: unterminated}
	if unterminated {
		n.addFlags(NodeHasError | NodeUnterminated)
	}
	adopt(n, command)
	adopt(n, args...)
	return n
}

// IfStatementNode's Else may itself be an *IfStatementNode (else-if chain)
// or a Block/other statement (plain else).
type IfStatementNode struct {
	baseNode
	Condition Node
	Then      Node
	Else      Node
}

func (n *IfStatementNode) Children() []Node {
	var children []Node
	for _, c := range []Node{n.Condition, n.Then, n.Else} {
		if c != nil {
			children = append(children, c)
		}
	}
	return children
}

func NewIfStatementNode(condition, then, els Node, start, end int) *IfStatementNode {
	n := &IfStatementNode{baseNode: baseNode{kind: KindIfStatement, start: start, end: end}, Condition: condition, Then: then, Else: els}
	adopt(n, condition, then, els)
	return n
}

type ForInStatementNode struct {
	baseNode
	Initializer *IdentifierNode
	Expression  Node
	Statement   *BlockNode
}

func (n *ForInStatementNode) Children() []Node {
	return []Node{n.Initializer, n.Expression, n.Statement}
}

func NewForInStatementNode(initializer *IdentifierNode, expression Node, statement *BlockNode, start, end int) *ForInStatementNode {
	n := &ForInStatementNode{baseNode: baseNode{kind: KindForInStatement, start: start, end: end}, Initializer: initializer, Expression: expression, Statement: statement}
	adopt(n, initializer, expression, statement)
	return n
}

type TypeReferenceNode struct {
	baseNode
	TypeName *IdentifierNode
}

func (n *TypeReferenceNode) Children() []Node { return []Node{n.TypeName} }

func NewTypeReferenceNode(typeName *IdentifierNode, start, end int) *TypeReferenceNode {
	n := &TypeReferenceNode{baseNode: baseNode{kind: KindTypeReference, start: start, end: end}, TypeName: typeName}
	adopt(n, typeName)
	return n
}

type ParameterNode struct {
	baseNode
	Name *IdentifierNode
	Type *TypeReferenceNode
}

func (n *ParameterNode) Children() []Node {
	if n.Type != nil {
		return []Node{n.Name, n.Type}
	}
	return []Node{n.Name}
}

func NewParameterNode(name *IdentifierNode, typ *TypeReferenceNode, start, end int) *ParameterNode {
	n := &ParameterNode{baseNode: baseNode{kind: KindParameter, start: start, end: end}, Name: name, Type: typ}
	adopt(n, name)
	if typ != nil {
		adopt(n, typ)
	}
	return n
}

type FunctionDeclarationNode struct {
	baseNode
	Name       *IdentifierNode
	Parameters []*ParameterNode
	Body       *BlockNode
}

func (n *FunctionDeclarationNode) Children() []Node {
	children := make([]Node, 0, len(n.Parameters)+2)
	children = append(children, n.Name)
	for _, p := range n.Parameters {
		children = append(children, p)
	}
	children = append(children, n.Body)
	return children
}

func NewFunctionDeclarationNode(name *IdentifierNode, params []*ParameterNode, body *BlockNode, start, end int) *FunctionDeclarationNode {
	n := &FunctionDeclarationNode{baseNode: baseNode{kind: KindFunctionDeclaration, start: start, end: end}, Name: name, Parameters: params, Body: body}
	adopt(n, name, body)
	for _, p := range params {
		adopt(n, p)
	}
	return n
}

type VariableDeclarationNode struct {
	baseNode
	Identifier *IdentifierNode
	Expression Node
}

func (n *VariableDeclarationNode) Children() []Node { return []Node{n.Identifier, n.Expression} }

func NewVariableDeclarationNode(identifier *IdentifierNode, expression Node, start, end int) *VariableDeclarationNode {
	n := &VariableDeclarationNode{baseNode: baseNode{kind: KindVariableDeclaration, start: start, end: end}, Identifier: identifier, Expression: expression}
	adopt(n, identifier, expression)
	return n
}

type VariableStatementNode struct {
	baseNode
	Declaration *VariableDeclarationNode
}

func (n *VariableStatementNode) Children() []Node { return []Node{n.Declaration} }

func NewVariableStatementNode(decl *VariableDeclarationNode, start, end int) *VariableStatementNode {
	n := &VariableStatementNode{baseNode: baseNode{kind: KindVariableStatement, start: start, end: end}, Declaration: decl}
	adopt(n, decl)
	return n
}

type BinaryExpressionNode struct {
	baseNode
	Left     Node
	Operator *OperatorTokenNode
	Right    Node
}

func (n *BinaryExpressionNode) Children() []Node { return []Node{n.Left, n.Operator, n.Right} }

func NewBinaryExpressionNode(left Node, operator *OperatorTokenNode, right Node, start, end int) *BinaryExpressionNode {
	n := &BinaryExpressionNode{baseNode: baseNode{kind: KindBinaryExpression, start: start, end: end}, Left: left, Operator: operator, Right: right}
	adopt(n, left, operator, right)
	return n
}

type UnaryExpressionNode struct {
	baseNode
	Operator   string
	Expression Node
}

func (n *UnaryExpressionNode) Children() []Node { return []Node{n.Expression} }

func NewUnaryExpressionNode(operator string, expression Node, start, end int) *UnaryExpressionNode {
	n := &UnaryExpressionNode{baseNode: baseNode{kind: KindUnaryExpression, start: start, end: end}, Operator: operator, Expression: expression}
	adopt(n, expression)
	return n
}

// InterpolatedStringNode.Values alternates String and Identifier nodes.
// NewInterpolatedStringNode does not enforce the alternation itself (the
// parser builds it correctly by construction), it only wires parents.
type InterpolatedStringNode struct {
	baseNode
	Values []Node
}

func (n *InterpolatedStringNode) Children() []Node { return n.Values }

func NewInterpolatedStringNode(values []Node, start, end int) *InterpolatedStringNode {
	n := &InterpolatedStringNode{baseNode: baseNode{kind: KindInterpolatedString, start: start, end: end}, Values: values}
	adopt(n, values...)
	return n
}

type ArrayLiteralNode struct {
	baseNode
	Values []Node
}

func (n *ArrayLiteralNode) Children() []Node { return n.Values }

func NewArrayLiteralNode(values []Node, start, end int) *ArrayLiteralNode {
	n := &ArrayLiteralNode{baseNode: baseNode{kind: KindArrayLiteral, start: start, end: end}, Values: values}
	adopt(n, values...)
	return n
}

// PropertyAssignmentNode.Name is Identifier or String.
type PropertyAssignmentNode struct {
	baseNode
	Name        Node
	Initializer Node
}

func (n *PropertyAssignmentNode) Children() []Node { return []Node{n.Name, n.Initializer} }

func NewPropertyAssignmentNode(name, initializer Node, start, end int) *PropertyAssignmentNode {
	n := &PropertyAssignmentNode{baseNode: baseNode{kind: KindPropertyAssignment, start: start, end: end}, Name: name, Initializer: initializer}
	adopt(n, name, initializer)
	return n
}

type ObjectLiteralNode struct {
	baseNode
	Values []*PropertyAssignmentNode
}

func (n *ObjectLiteralNode) Children() []Node {
	children := make([]Node, len(n.Values))
	for i, v := range n.Values {
		children[i] = v
	}
	return children
}

func NewObjectLiteralNode(values []*PropertyAssignmentNode, start, end int) *ObjectLiteralNode {
	n := &ObjectLiteralNode{baseNode: baseNode{kind: KindObjectLiteral, start: start, end: end}, Values: values}
	for _, v := range values {
		adopt(n, v)
	}
	return n
}

// PropertyAccessExpressionNode.Expression is Identifier, PropertyAccess
// (i.e. another PropertyAccessExpressionNode), or ArrayIndexExpressionNode.
type PropertyAccessExpressionNode struct {
	baseNode
	Expression Node
	Name       *IdentifierNode
}

func (n *PropertyAccessExpressionNode) Children() []Node { return []Node{n.Expression, n.Name} }

func NewPropertyAccessExpressionNode(expression Node, name *IdentifierNode, start, end int) *PropertyAccessExpressionNode {
	n := &PropertyAccessExpressionNode{baseNode: baseNode{kind: KindPropertyAccessExpression, start: start, end: end}, Expression: expression, Name: name}
	adopt(n, expression, name)
	return n
}

type ArrayIndexExpressionNode struct {
	baseNode
	Expression Node
	Index      *NumberNode
}

func (n *ArrayIndexExpressionNode) Children() []Node { return []Node{n.Expression, n.Index} }

func NewArrayIndexExpressionNode(expression Node, index *NumberNode, start, end int) *ArrayIndexExpressionNode {
	n := &ArrayIndexExpressionNode{baseNode: baseNode{kind: KindArrayIndexExpression, start: start, end: end}, Expression: expression, Index: index}
	adopt(n, expression, index)
	return n
}

type ParenthesizedExpressionNode struct {
	baseNode
	Expression Node
}

func (n *ParenthesizedExpressionNode) Children() []Node { return []Node{n.Expression} }

func NewParenthesizedExpressionNode(expression Node, start, end int) *ParenthesizedExpressionNode {
	n := &ParenthesizedExpressionNode{baseNode: baseNode{kind: KindParenthesizedExpression, start: start, end: end}, Expression: expression}
	adopt(n, expression)
	return n
}

// InnerExpressionNode wraps the `$( … )` / explicit-call form; Expression
// is CommandStatement, BinaryExpression, or VariableStatement.
type InnerExpressionNode struct {
	baseNode
	Expression Node
}

func (n *InnerExpressionNode) Children() []Node { return []Node{n.Expression} }

func NewInnerExpressionNode(expression Node, start, end int) *InnerExpressionNode {
	n := &InnerExpressionNode{baseNode: baseNode{kind: KindInnerExpression, start: start, end: end}, Expression: expression}
	adopt(n, expression)
	return n
}

type PrefixExpressionNode struct {
	baseNode
	Prefix     *PrefixTokenNode
	Expression Node
}

func (n *PrefixExpressionNode) Children() []Node { return []Node{n.Prefix, n.Expression} }

func NewPrefixExpressionNode(prefix *PrefixTokenNode, expression Node, start, end int) *PrefixExpressionNode {
	n := &PrefixExpressionNode{baseNode: baseNode{kind: KindPrefixExpression, start: start, end: end}, Prefix: prefix, Expression: expression}
	adopt(n, prefix, expression)
	return n
}

type OptionExpressionNode struct {
	baseNode
	Option     *OptionKeyNode
	Expression Node
}

func (n *OptionExpressionNode) Children() []Node { return []Node{n.Option, n.Expression} }

func NewOptionExpressionNode(option *OptionKeyNode, expression Node, start, end int) *OptionExpressionNode {
	n := &OptionExpressionNode{baseNode: baseNode{kind: KindOptionExpression, start: start, end: end}, Option: option, Expression: expression}
	adopt(n, option, expression)
	return n
}

// InvalidNode carries a best-effort partial tree plus a human-readable
// message. Always carries NodeHasError.
type InvalidNode struct {
	baseNode
	Expression Node
	Message    string
}

func (n *InvalidNode) Children() []Node {
	if n.Expression != nil {
		return []Node{n.Expression}
	}
	return nil
}

func NewInvalidNode(expression Node, message string, start, end int) *InvalidNode {
	n := &InvalidNode{baseNode: baseNode{kind: KindInvalid, start: start, end: end}, Expression: expression, Message: message}
	n.addFlags(NodeHasError)
	adopt(n, expression)
	return n
}

// ----- predicates -----

// IsNode reports whether node is non-nil and has the given kind, the sole
// supported way (besides exhaustive switch) to narrow a Node's variant
// outside the package.
func IsNode(node Node, kind NodeKind) bool {
	return node != nil && node.NodeKind() == kind
}

// IsParentNode reports whether node has at least one child. A composite
// with no children (an empty block, for instance) reports false.
func IsParentNode(node Node) bool {
	return node != nil && len(node.Children()) > 0
}
