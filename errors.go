// errors.go — diagnostics shape and caret-snippet rendering.
//
// NodeError is the plain record used throughout the package: a node whose
// span localises a problem plus a human-readable message.
// WrapErrorWithSource/prettyErrorStringLabeled convert a byte offset to
// 1-based line/col coordinates before rendering a caret-pointed source
// snippet beneath the message.
package zr

import (
	"fmt"
	"strings"
)

// ErrorKind enumerates the diagnostic categories the parser and lexer
// raise.
type ErrorKind int

const (
	ErrUnterminatedString ErrorKind = iota
	ErrInvalidVariableName
	ErrUnexpectedToken
	ErrMissingExpression
	ErrUnclosedBlock
	ErrUnclosedBracket
	ErrUnclosedParen
	ErrInvalidPropertyAccess
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnterminatedString:
		return "UnterminatedString"
	case ErrInvalidVariableName:
		return "InvalidVariableName"
	case ErrUnexpectedToken:
		return "UnexpectedToken"
	case ErrMissingExpression:
		return "MissingExpression"
	case ErrUnclosedBlock:
		return "UnclosedBlock"
	case ErrUnclosedBracket:
		return "UnclosedBracket"
	case ErrUnclosedParen:
		return "UnclosedParen"
	case ErrInvalidPropertyAccess:
		return "InvalidPropertyAccess"
	default:
		return "Unknown"
	}
}

// DiagKind distinguishes a hard parse failure from input that is simply an
// incomplete prefix of a longer program — the distinction an interactive
// reader needs to decide whether to keep reading more lines (see
// cmd/zr's repl command).
type DiagKind int

const (
	DiagParse DiagKind = iota
	DiagIncomplete
)

// NodeError is the plain diagnostic record used throughout the package: a
// node whose span localises the problem, plus a message. ErrorKind and
// Diag carry extra structure beyond the bare {node, message} pair;
// callers that only want the two named fields can ignore the rest.
type NodeError struct {
	Node      Node
	Message   string
	ErrorKind ErrorKind
	Diag      DiagKind
}

func (e *NodeError) Error() string { return e.Message }

// WrapErrorWithSource renders a *NodeError as a caret-annotated snippet of
// src. Any other error is returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName behaves like WrapErrorWithSource but includes srcName
// in the header when non-empty.
func WrapErrorWithName(err error, srcName, src string) error {
	ne, ok := err.(*NodeError)
	if !ok {
		return err
	}
	pos := 0
	if ne.Node != nil {
		pos, _ = ne.Node.Span()
	}
	line, col := lineCol(src, pos)
	header := "PARSE ERROR"
	if ne.Diag == DiagIncomplete {
		header = "INCOMPLETE INPUT"
	}
	return fmt.Errorf("%s", prettyErrorStringLabeled(src, header, srcName, line, col, ne.Message))
}

// lineCol converts a 0-based byte offset into 1-based line/column
// coordinates against src, clamping to the source's bounds.
func lineCol(src string, pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(src) {
		pos = len(src)
	}
	line = 1
	lastNewline := -1
	for i := 0; i < pos; i++ {
		if src[i] == '\n' {
			line++
			lastNewline = i
		}
	}
	col = pos - lastNewline
	return line, col
}

func prettyErrorStringLabeled(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := col - 1
	if caretPad < 0 {
		caretPad = 0
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
