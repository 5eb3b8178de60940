package zr

import "testing"

func scanAll(t *testing.T, src string, opts LexerOptions) []Token {
	t.Helper()
	l := NewLexer(src, opts)
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == TokEOF {
			break
		}
	}
	return toks
}

func TestLexerBasicCommand(t *testing.T) {
	toks := scanAll(t, "cmd hello 1337", LexerOptions{})
	wantKinds := []TokenKind{TokString, TokString, TokNumber, TokEOF}
	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(wantKinds), toks)
	}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Errorf("token %d kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
	if toks[2].Number != 1337 {
		t.Errorf("number token value = %v, want 1337", toks[2].Number)
	}
}

func TestLexerSpansWithinBounds(t *testing.T) {
	src := "cmd --flag \"hi $name\" 42\n"
	for _, tok := range scanAll(t, src, LexerOptions{}) {
		if tok.Start < 0 || tok.Start > tok.End || tok.End > len(src) {
			t.Errorf("token %+v has out-of-bounds span", tok)
		}
	}
}

func TestLexerLongOption(t *testing.T) {
	toks := scanAll(t, "--flag", LexerOptions{})
	if toks[0].Kind != TokOption || toks[0].Text != "flag" || toks[0].Prefix != "--" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestLexerDollarIdentifier(t *testing.T) {
	toks := scanAll(t, "$player", LexerOptions{})
	if toks[0].Kind != TokIdentifier || toks[0].Text != "player" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestLexerDollarPropertyAccess(t *testing.T) {
	toks := scanAll(t, "$player.name.first", LexerOptions{})
	if toks[0].Kind != TokPropertyAccess {
		t.Fatalf("got %+v", toks[0])
	}
	if toks[0].Text != "player" {
		t.Fatalf("head = %q, want player", toks[0].Text)
	}
	want := []string{"name", "first"}
	if len(toks[0].Properties) != len(want) {
		t.Fatalf("properties = %v, want %v", toks[0].Properties, want)
	}
	for i, p := range want {
		if toks[0].Properties[i] != p {
			t.Errorf("property %d = %q, want %q", i, toks[0].Properties[i], p)
		}
	}
}

func TestLexerDollarOpenParen(t *testing.T) {
	toks := scanAll(t, "$(cmd)", LexerOptions{})
	if toks[0].Kind != TokSpecial || toks[0].Text != "$(" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestLexerInvalidVariableName(t *testing.T) {
	toks := scanAll(t, "$ ", LexerOptions{})
	if toks[0].Kind != TokIdentifier || toks[0].Text != "" {
		t.Fatalf("got %+v, want empty-name Identifier", toks[0])
	}
	if !toks[0].Flags.Has(FlagInvalidName) {
		t.Fatalf("got %+v, want FlagInvalidName set", toks[0])
	}
}

func TestLexerQuotedStringPlain(t *testing.T) {
	toks := scanAll(t, `"hello world"`, LexerOptions{})
	if toks[0].Kind != TokString || toks[0].Text != "hello world" || toks[0].Quote != '"' {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestLexerInterpolatedString(t *testing.T) {
	toks := scanAll(t, `"Hello, $player!"`, LexerOptions{})
	tok := toks[0]
	if tok.Kind != TokInterpolatedString {
		t.Fatalf("got %+v", tok)
	}
	if !tok.Flags.Has(FlagInterpolated) {
		t.Errorf("missing Interpolated flag")
	}
	wantValues := []string{"Hello, ", "!"}
	wantVars := []string{"player"}
	if len(tok.Values) != len(wantValues) || len(tok.Variables) != len(wantVars) {
		t.Fatalf("values=%v vars=%v", tok.Values, tok.Variables)
	}
	for i := range wantValues {
		if tok.Values[i] != wantValues[i] {
			t.Errorf("value %d = %q, want %q", i, tok.Values[i], wantValues[i])
		}
	}
	if tok.Variables[0] != wantVars[0] {
		t.Errorf("variable 0 = %q, want %q", tok.Variables[0], wantVars[0])
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	toks := scanAll(t, `"abc`, LexerOptions{})
	tok := toks[0]
	if tok.Kind != TokString || tok.Closed {
		t.Fatalf("got %+v, want unclosed String", tok)
	}
	if !tok.Flags.Has(FlagUnterminatedString) {
		t.Errorf("missing UnterminatedString flag")
	}
}

func TestLexerEscapesAndInterpolationSplit(t *testing.T) {
	toks := scanAll(t, `"a\nb$x"`, LexerOptions{})
	tok := toks[0]
	if tok.Kind != TokInterpolatedString {
		t.Fatalf("got %+v", tok)
	}
	if tok.Values[0] != "a\nb" {
		t.Fatalf("escape not applied: %q", tok.Values[0])
	}
}

func TestLexerNumber(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{"0", 0},
		{"42", 42},
		{"3.14", 3.14},
	}
	for _, tc := range tests {
		toks := scanAll(t, tc.src, LexerOptions{})
		if toks[0].Kind != TokNumber || toks[0].Number != tc.want {
			t.Errorf("scan(%q) = %+v, want Number %v", tc.src, toks[0], tc.want)
		}
	}
}

func TestLexerNumberNoLeadingDot(t *testing.T) {
	toks := scanAll(t, ".5", LexerOptions{})
	if toks[0].Kind == TokNumber {
		t.Fatalf("leading-dot number should not lex as Number: %+v", toks[0])
	}
}

func TestLexerOperatorRun(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"&&", "&&"},
		{"||", "||"},
		{">=", ">="},
		{"+=", "+="},
		{"!=", "!="},
	}
	for _, tc := range tests {
		toks := scanAll(t, tc.src, LexerOptions{})
		if toks[0].Kind != TokOperator || toks[0].Text != tc.want {
			t.Errorf("scan(%q) = %+v, want Operator %q", tc.src, toks[0], tc.want)
		}
	}
}

func TestLexerEndOfStatementNeverWhitespace(t *testing.T) {
	toks := scanAll(t, "cmd\n", LexerOptions{})
	if toks[1].Kind != TokEndOfStatement || toks[1].Text != "\n" {
		t.Fatalf("newline should lex as EndOfStatement: %+v", toks[1])
	}
}

func TestLexerLabelRetrofit(t *testing.T) {
	l := NewLexer("x:", LexerOptions{})
	first := l.Next()
	l.Next() // ':'
	prev, ok := l.Prev(2)
	if !ok || prev.Start != first.Start {
		t.Fatalf("Prev(2) did not return the label target")
	}
	if !prev.Flags.Has(FlagLabel) {
		t.Errorf("label token missing Label flag after retrofit: %+v", prev)
	}
}

func TestLexerFunctionNameRetrofit(t *testing.T) {
	toks := scanAll(t, "function greet", LexerOptions{})
	if toks[0].Kind != TokKeyword || toks[0].Text != "function" {
		t.Fatalf("got %+v", toks[0])
	}
	if toks[1].Kind != TokIdentifier || !toks[1].Flags.Has(FlagFunctionName) {
		t.Fatalf("identifier after 'function' missing FunctionName flag: %+v", toks[1])
	}
}

func TestLexerKeywordsAndBooleans(t *testing.T) {
	toks := scanAll(t, "if else for in true false", LexerOptions{})
	wantKinds := []TokenKind{TokKeyword, TokKeyword, TokKeyword, TokKeyword, TokBoolean, TokBoolean}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Errorf("token %d kind = %v, want %v (%+v)", i, toks[i].Kind, k, toks[i])
		}
	}
	if !toks[4].Bool || toks[5].Bool {
		t.Errorf("boolean values wrong: %+v %+v", toks[4], toks[5])
	}
}

func TestLexerCommentDiscardedByDefault(t *testing.T) {
	toks := scanAll(t, "cmd # a comment\narg", LexerOptions{})
	for _, tok := range toks {
		if tok.Kind == TokComment {
			t.Fatalf("comment token leaked without ParseCommentsAsTokens: %+v", tok)
		}
	}
}

func TestLexerCommentAsToken(t *testing.T) {
	toks := scanAll(t, "cmd # hi\n", LexerOptions{ParseCommentsAsTokens: true})
	found := false
	for _, tok := range toks {
		if tok.Kind == TokComment {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a Comment token with ParseCommentsAsTokens set")
	}
}

func TestLexerWhitespaceAsTokens(t *testing.T) {
	toks := scanAll(t, "a  b", LexerOptions{ParseWhitespaceAsTokens: true})
	if toks[1].Kind != TokWhitespace {
		t.Fatalf("expected Whitespace token, got %+v", toks[1])
	}
}

func TestLexerBarewordDegradesToString(t *testing.T) {
	toks := scanAll(t, "~weird~thing", LexerOptions{})
	if toks[0].Kind != TokString || toks[0].Text != "~weird~thing" {
		t.Fatalf("got %+v", toks[0])
	}
}
