package zr

import "testing"

func TestOffsetNodePositionShiftsSubtree(t *testing.T) {
	id := NewIdentifierNode("x", 10, 11)
	num := NewNumberNode(5, 14, 15)
	decl := NewVariableDeclarationNode(id, num, 10, 15)

	OffsetNodePosition(decl, 100)

	if s, e := decl.Span(); s != 110 || e != 115 {
		t.Errorf("decl span = (%d,%d), want (110,115)", s, e)
	}
	if s, e := id.Span(); s != 110 || e != 111 {
		t.Errorf("id span = (%d,%d), want (110,111)", s, e)
	}
	if s, e := num.Span(); s != 114 || e != 115 {
		t.Errorf("num span = (%d,%d), want (114,115)", s, e)
	}
}

func TestOffsetNodePositionNilIsNoop(t *testing.T) {
	OffsetNodePosition(nil, 5) // must not panic
}

func TestNextAndPreviousSibling(t *testing.T) {
	a := NewNumberNode(1, 0, 1)
	b := NewNumberNode(2, 2, 3)
	c := NewNumberNode(3, 4, 5)
	arr := NewArrayLiteralNode([]Node{a, b, c}, 0, 6)
	_ = arr

	if NextSibling(a) != Node(b) {
		t.Errorf("NextSibling(a) = %v, want b", NextSibling(a))
	}
	if NextSibling(c) != nil {
		t.Errorf("NextSibling(c) should be nil, got %v", NextSibling(c))
	}
	if PreviousSibling(b) != Node(a) {
		t.Errorf("PreviousSibling(b) = %v, want a", PreviousSibling(b))
	}
	if PreviousSibling(a) != nil {
		t.Errorf("PreviousSibling(a) should be nil, got %v", PreviousSibling(a))
	}
}

func TestSiblingOfOrphanNodeIsNil(t *testing.T) {
	orphan := NewNumberNode(1, 0, 1)
	if NextSibling(orphan) != nil || PreviousSibling(orphan) != nil {
		t.Errorf("a node with no parent should have no siblings")
	}
}

func TestFlattenInterpolatedString(t *testing.T) {
	values := []Node{
		NewStringNode("Hello, ", '"', false, 0, 7),
		NewIdentifierNode("name", 7, 12),
		NewStringNode("!", '"', false, 12, 13),
	}
	expr := NewInterpolatedStringNode(values, 0, 13)

	flat := FlattenInterpolatedString(expr, map[string]string{"name": "Ada"})
	if flat.Text != "Hello, Ada!" {
		t.Errorf("got %q, want %q", flat.Text, "Hello, Ada!")
	}
}

func TestFlattenInterpolatedStringMissingVariable(t *testing.T) {
	values := []Node{
		NewIdentifierNode("missing", 0, 8),
	}
	expr := NewInterpolatedStringNode(values, 0, 8)

	flat := FlattenInterpolatedString(expr, map[string]string{})
	if flat.Text != "$missing" {
		t.Errorf("got %q, want %q (unresolved variables render as $name)", flat.Text, "$missing")
	}
}
