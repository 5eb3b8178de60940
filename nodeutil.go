// nodeutil.go — tree utilities over the Node family.
//
// Every node already carries its own span and parent, so these walks need
// no sidecar position index.
package zr

import "fmt"

// OffsetNodePosition walks node's subtree, adding delta to every span,
// used when splicing a sub-parse into a larger source.
func OffsetNodePosition(node Node, delta int) {
	if node == nil {
		return
	}
	start, end := node.Span()
	node.setSpan(start+delta, end+delta)
	for _, c := range node.Children() {
		OffsetNodePosition(c, delta)
	}
}

// siblingList returns the parent's ordered child slice that node
// logically belongs to, so NextSibling/PreviousSibling can find node's
// index within it. It delegates to Children(), which every composite
// already exposes in declaration order (statements, values, args, …), so
// no separate bookkeeping is required.
func siblingList(parent Node) []Node {
	if parent == nil {
		return nil
	}
	return parent.Children()
}

func siblingIndex(siblings []Node, node Node) int {
	for i, s := range siblings {
		if s == node {
			return i
		}
	}
	return -1
}

// NextSibling follows node's parent back-link to the sibling at index+1
// in the parent's child list, or nil if node is the last child or has no
// parent.
func NextSibling(node Node) Node {
	if node == nil {
		return nil
	}
	siblings := siblingList(node.Parent())
	i := siblingIndex(siblings, node)
	if i < 0 || i+1 >= len(siblings) {
		return nil
	}
	return siblings[i+1]
}

// PreviousSibling follows node's parent back-link to the sibling at
// index-1, or nil if node is the first child or has no parent.
func PreviousSibling(node Node) Node {
	if node == nil {
		return nil
	}
	siblings := siblingList(node.Parent())
	i := siblingIndex(siblings, node)
	if i <= 0 {
		return nil
	}
	return siblings[i-1]
}

// FlattenInterpolatedString takes an InterpolatedStringNode and a variable
// map, and returns a plain StringNode with every Identifier value replaced
// by its string form.
func FlattenInterpolatedString(expr *InterpolatedStringNode, vars map[string]string) *StringNode {
	var text string
	for _, v := range expr.Values {
		switch val := v.(type) {
		case *StringNode:
			text += val.Text
		case *IdentifierNode:
			if s, ok := vars[val.Name]; ok {
				text += s
			} else {
				text += fmt.Sprintf("$%s", val.Name)
			}
		}
	}
	start, end := expr.Span()
	return NewStringNode(text, 0, false, start, end)
}
