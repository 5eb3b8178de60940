package zr

import (
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

func diffStrings(t *testing.T, a, b, aName, bName string) string {
	t.Helper()
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: aName,
		ToFile:   bName,
		Context:  2,
	}
	out, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		t.Fatalf("difflib: %v", err)
	}
	return out
}

// assertRenderStable checks that re-parsing Render's output yields a tree
// whose own Render is identical to the first — a fixed point, even though
// Render is not byte-exact against the original source.
func assertRenderStable(t *testing.T, src string) string {
	t.Helper()
	root, errs := Parse(src, ParserOptions{})
	if len(errs) != 0 {
		t.Fatalf("Parse(%q) produced errors: %v", src, errs)
	}
	rendered := Render(root)

	root2, errs2 := Parse(rendered, ParserOptions{})
	if len(errs2) != 0 {
		t.Fatalf("re-parsing rendered output %q produced errors: %v", rendered, errs2)
	}
	rendered2 := Render(root2)

	if rendered != rendered2 {
		t.Fatalf("render is not idempotent for %q:\n%s", src, diffStrings(t, rendered, rendered2, "first", "second"))
	}
	return rendered
}

func TestRenderIdempotentSimpleCommand(t *testing.T) {
	assertRenderStable(t, "echo hello 42")
}

func TestRenderIdempotentVariableAssignment(t *testing.T) {
	out := assertRenderStable(t, "$x = 1 + 2 * 3")
	if out == "" {
		t.Fatalf("empty render")
	}
}

func TestRenderIdempotentIfElse(t *testing.T) {
	assertRenderStable(t, "if true { echo a } else { echo b }")
}

func TestRenderIdempotentForIn(t *testing.T) {
	assertRenderStable(t, "for $item in $items { echo $item }")
}

func TestRenderIdempotentFunctionDeclaration(t *testing.T) {
	assertRenderStable(t, "function greet(name: string) { echo $name }")
}

func TestRenderIdempotentPipeline(t *testing.T) {
	assertRenderStable(t, "cat file | grep foo")
}

func TestRenderCommandNameAndArgs(t *testing.T) {
	root, errs := Parse("echo hello 42", ParserOptions{})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	out := Render(root)
	want := "echo hello 42"
	if out != want {
		t.Errorf("Render = %q, want %q\n%s", out, want, diffStrings(t, want, out, "want", "got"))
	}
}

func TestRenderLongOptionWithValue(t *testing.T) {
	root, _ := Parse("build --target release", ParserOptions{})
	out := Render(root)
	want := "build --target release"
	if out != want {
		t.Errorf("Render = %q, want %q", out, want)
	}
}

func TestRenderInvalidNodeMarksItself(t *testing.T) {
	root, errs := Parse("if", ParserOptions{})
	if len(errs) == 0 {
		t.Fatalf("expected diagnostics")
	}
	out := Render(root)
	if out == "" {
		t.Fatalf("Render should still produce output for an invalid tree")
	}
}

func TestPrettyPrintOneLinePerNode(t *testing.T) {
	root, errs := Parse("echo hi", ParserOptions{})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	out := PrettyPrint([]Node{root}, "")
	if out == "" {
		t.Fatalf("PrettyPrint produced empty output")
	}
	lines := difflib.SplitLines(out)
	if len(lines) < 3 {
		t.Fatalf("expected multiple lines describing the tree, got %d: %q", len(lines), out)
	}
}
