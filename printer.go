// printer.go — render and pretty-print.
//
// A type-switch-driven writer plus a string-escaping helper
// (escapeStringBody). Render targets near-source reconstruction of a fixed
// grammar rather than color/width-aware layout of arbitrary runtime values,
// so it skips that layer and keeps only the escaping helper.
package zr

import (
	"fmt"
	"strings"
)

// Render walks node and reconstructs a near-source-fidelity string: not
// byte-exact, but recognisable command/expression syntax a reader of the
// original source would recognise.
func Render(node Node) string {
	var b strings.Builder
	renderNode(&b, node)
	return b.String()
}

func renderNode(b *strings.Builder, node Node) {
	if node == nil {
		return
	}
	switch n := node.(type) {
	case *SourceNode:
		for i, s := range n.Statements {
			if i > 0 {
				b.WriteByte('\n')
			}
			renderNode(b, s)
		}
	case *BlockNode:
		b.WriteByte('{')
		for _, s := range n.Statements {
			b.WriteByte('\n')
			renderNode(b, s)
		}
		b.WriteString("\n}")
	case *CommandStatementNode:
		renderNode(b, n.Command)
		for _, a := range n.Args {
			b.WriteByte(' ')
			renderNode(b, a)
		}
	case *CommandNameNode:
		renderBareword(b, n.Name.Text)
	case *IfStatementNode:
		b.WriteString("if ")
		renderNode(b, n.Condition)
		b.WriteByte(' ')
		renderNode(b, n.Then)
		if n.Else != nil {
			b.WriteString(" else ")
			renderNode(b, n.Else)
		}
	case *ForInStatementNode:
		b.WriteString("for $")
		b.WriteString(n.Initializer.Name)
		b.WriteString(" in ")
		renderNode(b, n.Expression)
		b.WriteByte(' ')
		renderNode(b, n.Statement)
	case *FunctionDeclarationNode:
		b.WriteString("function ")
		b.WriteString(n.Name.Name)
		b.WriteByte('(')
		for i, p := range n.Parameters {
			if i > 0 {
				b.WriteString(", ")
			}
			renderNode(b, p)
		}
		b.WriteString(") ")
		renderNode(b, n.Body)
	case *ParameterNode:
		b.WriteString(n.Name.Name)
		if n.Type != nil {
			b.WriteString(": ")
			b.WriteString(n.Type.TypeName.Name)
		}
	case *VariableStatementNode:
		renderNode(b, n.Declaration)
	case *VariableDeclarationNode:
		b.WriteByte('$')
		b.WriteString(n.Identifier.Name)
		b.WriteString(" = ")
		renderNode(b, n.Expression)
	case *BinaryExpressionNode:
		renderNode(b, n.Left)
		b.WriteByte(' ')
		b.WriteString(n.Operator.Operator)
		b.WriteByte(' ')
		renderNode(b, n.Right)
	case *UnaryExpressionNode:
		b.WriteString(n.Operator)
		renderNode(b, n.Expression)
	case *InterpolatedStringNode:
		b.WriteByte('"')
		for _, v := range n.Values {
			switch val := v.(type) {
			case *StringNode:
				b.WriteString(escapeStringBody(val.Text))
			case *IdentifierNode:
				b.WriteByte('$')
				b.WriteString(val.Name)
			}
		}
		b.WriteByte('"')
	case *ArrayLiteralNode:
		b.WriteByte('[')
		for i, v := range n.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			renderNode(b, v)
		}
		b.WriteByte(']')
	case *ObjectLiteralNode:
		b.WriteByte('{')
		for i, v := range n.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			renderNode(b, v)
		}
		b.WriteByte('}')
	case *PropertyAssignmentNode:
		renderNode(b, n.Name)
		b.WriteString(": ")
		renderNode(b, n.Initializer)
	case *PropertyAccessExpressionNode:
		renderNode(b, n.Expression)
		b.WriteByte('.')
		b.WriteString(n.Name.Name)
	case *ArrayIndexExpressionNode:
		renderNode(b, n.Expression)
		b.WriteByte('.')
		fmt.Fprintf(b, "%g", n.Index.Value)
	case *ParenthesizedExpressionNode:
		b.WriteByte('(')
		renderNode(b, n.Expression)
		b.WriteByte(')')
	case *InnerExpressionNode:
		b.WriteString("$(")
		renderNode(b, n.Expression)
		b.WriteByte(')')
	case *PrefixExpressionNode:
		b.WriteString(n.Prefix.Value)
		renderNode(b, n.Expression)
	case *OptionExpressionNode:
		renderNode(b, n.Option)
		b.WriteByte(' ')
		renderNode(b, n.Expression)
	case *OptionKeyNode:
		b.WriteString(n.Prefix)
		b.WriteString(n.Flag)
	case *StringNode:
		if n.Quote != 0 {
			b.WriteByte(n.Quote)
			b.WriteString(escapeStringBody(n.Text))
			b.WriteByte(n.Quote)
		} else {
			renderBareword(b, n.Text)
		}
	case *NumberNode:
		fmt.Fprintf(b, "%g", n.Value)
	case *BooleanNode:
		if n.Value {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case *IdentifierNode:
		b.WriteByte('$')
		b.WriteString(n.Name)
	case *OperatorTokenNode:
		b.WriteString(n.Operator)
	case *PrefixTokenNode:
		b.WriteString(n.Value)
	case *EndOfStatementNode:
		b.WriteByte('\n')
	case *InvalidNode:
		b.WriteString("<invalid: ")
		b.WriteString(n.Message)
		b.WriteByte('>')
	default:
		b.WriteString(fmt.Sprintf("<unknown node %T>", n))
	}
}

func renderBareword(b *strings.Builder, text string) {
	b.WriteString(text)
}

func escapeStringBody(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PrettyPrint emits one line per node with indentation reflecting depth,
// used for debugging.
func PrettyPrint(nodes []Node, prefix string) string {
	var b strings.Builder
	for _, n := range nodes {
		prettyPrintNode(&b, n, prefix)
	}
	return b.String()
}

func prettyPrintNode(b *strings.Builder, node Node, prefix string) {
	if node == nil {
		return
	}
	b.WriteString(prefix)
	b.WriteString(describeNode(node))
	b.WriteByte('\n')
	for _, c := range node.Children() {
		prettyPrintNode(b, c, prefix+"  ")
	}
}

func describeNode(node Node) string {
	switch n := node.(type) {
	case *StringNode:
		return fmt.Sprintf("String %q", n.Text)
	case *NumberNode:
		return fmt.Sprintf("Number %g", n.Value)
	case *BooleanNode:
		return fmt.Sprintf("Boolean %v", n.Value)
	case *IdentifierNode:
		return fmt.Sprintf("Identifier $%s", n.Name)
	case *OperatorTokenNode:
		return fmt.Sprintf("OperatorToken %q", n.Operator)
	case *CommandNameNode:
		return fmt.Sprintf("CommandName %q", n.Name.Text)
	case *OptionKeyNode:
		return fmt.Sprintf("OptionKey %s%s", n.Prefix, n.Flag)
	case *InvalidNode:
		return fmt.Sprintf("Invalid %q", n.Message)
	default:
		return node.NodeKind().String()
	}
}
