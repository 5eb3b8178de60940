package zr

import (
	"strings"
	"testing"
)

func TestLineCol(t *testing.T) {
	src := "abc\ndef\nghi"
	tests := []struct {
		pos      int
		wantLine int
		wantCol  int
	}{
		{0, 1, 1},
		{3, 1, 4},
		{4, 2, 1},
		{8, 3, 1},
	}
	for _, tc := range tests {
		line, col := LineCol(src, tc.pos)
		if line != tc.wantLine || col != tc.wantCol {
			t.Errorf("LineCol(%d) = (%d,%d), want (%d,%d)", tc.pos, line, col, tc.wantLine, tc.wantCol)
		}
	}
}

func TestWrapErrorWithSourceRendersCaret(t *testing.T) {
	src := "if\n"
	_, errs := Parse(src, ParserOptions{})
	if len(errs) == 0 {
		t.Fatalf("expected a diagnostic for a bare 'if'")
	}
	out := WrapErrorWithSource(errs[0], src)
	msg := out.Error()
	if !strings.Contains(msg, "PARSE ERROR") {
		t.Errorf("message missing header: %q", msg)
	}
	if !strings.Contains(msg, "^") {
		t.Errorf("message missing caret: %q", msg)
	}
}

func TestWrapErrorWithNameIncludesName(t *testing.T) {
	src := "if\n"
	_, errs := Parse(src, ParserOptions{})
	out := WrapErrorWithName(errs[0], "script.zr", src)
	if !strings.Contains(out.Error(), "script.zr") {
		t.Errorf("message missing source name: %q", out.Error())
	}
}

func TestWrapErrorWithSourcePassesThroughNonNodeError(t *testing.T) {
	plain := &nonNodeError{msg: "boom"}
	out := WrapErrorWithSource(plain, "anything")
	if out != plain {
		t.Errorf("expected a non-*NodeError to pass through unchanged")
	}
}

type nonNodeError struct{ msg string }

func (e *nonNodeError) Error() string { return e.msg }

func TestErrorKindString(t *testing.T) {
	if ErrUnclosedBlock.String() != "UnclosedBlock" {
		t.Errorf("got %q", ErrUnclosedBlock.String())
	}
	if ErrorKind(999).String() != "Unknown" {
		t.Errorf("unknown kind should stringify to Unknown")
	}
}

func TestParseInteractiveSetsIncompleteDiagOnAllEntries(t *testing.T) {
	_, errs, incomplete := ParseInteractive("function f() {", ParserOptions{})
	if !incomplete {
		t.Fatalf("expected incomplete=true")
	}
	for _, e := range errs {
		if e.Diag != DiagIncomplete {
			t.Errorf("error %v not marked DiagIncomplete", e)
		}
	}
}
