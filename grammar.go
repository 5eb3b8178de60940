// grammar.go — static lexical/grammar tables shared by the lexer and parser.
//
// Everything here is read-only, package-level data: keyword sets, operator
// and punctuation character classes, and the binary-operator precedence
// table from the language reference. No component mutates these at runtime.
package zr

// Keywords maps a bareword's text to the Keyword it denotes. Anything not in
// this set that is also not a boolean literal falls through to a bareword
// String token (see Lexer.scanLiteral).
var Keywords = map[string]bool{
	"if":       true,
	"else":     true,
	"for":      true,
	"in":       true,
	"function": true,
}

// TypeKeywords names the type annotations usable after a parameter's ':'.
var TypeKeywords = map[string]bool{
	"string":  true,
	"number":  true,
	"boolean": true,
}

// BooleanLiterals maps the literal spelling to its boolean value.
var BooleanLiterals = map[string]bool{
	"true":  true,
	"false": false,
}

// OperatorChars is the character class assembled greedily (longest run wins)
// into Operator tokens: this is how "&&", "||", ">=", "+=", "!=" etc. come
// to exist as single tokens despite being built from single-char runs.
var OperatorChars = map[byte]bool{
	'&': true, '|': true, '=': true, '>': true, '<': true,
	'-': true, '+': true, '/': true, '*': true, '!': true,
}

// EndOfStatementChars are never whitespace, even a bare newline: both ';'
// and '\n' terminate a statement.
var EndOfStatementChars = map[byte]bool{
	';': true, '\n': true,
}

// PunctuationChars are emitted as Special tokens (one byte each), except
// that ':' retroactively flags the previous token as a Label.
var PunctuationChars = map[byte]bool{
	'(': true, ')': true, ',': true, '{': true, '}': true,
	'[': true, ']': true, '.': true, ':': true, '\\': true,
}

// PrefixChars are sigil characters recognised as a PrefixToken only when
// they immediately precede a literal inside an argument slot.
var PrefixChars = map[byte]bool{
	'~': true, '@': true, '%': true, '^': true, '*': true, '!': true,
}

// Precedence gives the binding power of a binary operator; higher binds
// tighter. Operators absent from this table are not usable as infix binary
// operators (they may still occur as option/assignment tokens elsewhere).
var Precedence = map[string]int{
	"!":  1,
	"=":  1,
	"+=": 1,
	"-=": 1,

	"|":  2,
	"||": 2,

	"&&": 3,

	"<":  7,
	">":  7,
	">=": 7,
	"<=": 7,
	"==": 7,
	"!=": 7,

	"+": 10,
	"-": 10,

	"*": 20,
	"/": 20,
	"%": 20,
}

// CommandBoundaryOperators are the binary operators that fold an
// already-parsed command into the left-hand side of a BinaryExpression at
// the statement level: pipelines and short-circuit logical joins.
var CommandBoundaryOperators = map[string]bool{
	"|":  true,
	"&&": true,
	"||": true,
}

func isWhitespaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r'
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isAlphaNum(b byte) bool { return isAlpha(b) || isDigit(b) }
