package zr

import "testing"

func TestSpanEncloses(t *testing.T) {
	outer := Span{Start: 0, End: 10}
	tests := []struct {
		inner Span
		want  bool
	}{
		{Span{0, 10}, true},
		{Span{2, 8}, true},
		{Span{0, 0}, true},
		{Span{10, 10}, true},
		{Span{-1, 5}, false},
		{Span{5, 11}, false},
		{Span{11, 12}, false},
	}
	for _, tc := range tests {
		if got := outer.Encloses(tc.inner); got != tc.want {
			t.Errorf("Span{0,10}.Encloses(%+v) = %v, want %v", tc.inner, got, tc.want)
		}
	}
}

func TestNodeSpan(t *testing.T) {
	n := NewNumberNode(1, 3, 7)
	s := NodeSpan(n)
	if s.Start != 3 || s.End != 7 {
		t.Errorf("NodeSpan = %+v, want {3,7}", s)
	}
	if got := NodeSpan(nil); got != (Span{}) {
		t.Errorf("NodeSpan(nil) = %+v, want zero value", got)
	}
}

func TestLineColMatchesSpanLineCol(t *testing.T) {
	src := "a\nbc\n"
	l1, c1 := LineCol(src, 3)
	l2, c2 := lineCol(src, 3)
	if l1 != l2 || c1 != c2 {
		t.Errorf("LineCol and lineCol disagree: (%d,%d) vs (%d,%d)", l1, c1, l2, c2)
	}
}
