// debug.go — debugging-only span/tree invariant verification.
//
// A single DebuggingMode toggle read from an environment variable at
// process start, plus a verifier that walks the tree checking the
// invariant the rest of the system depends on: every child span must fall
// within its parent's span, since the tree carries its own spans instead
// of a sidecar index.
package zr

import (
	"fmt"
	"os"
)

// DebuggingMode is picked up from the ZRDEBUG environment variable at
// package init; hosts may also set it programmatically (tests, REPLs).
var DebuggingMode = os.Getenv("ZRDEBUG") != ""

// VerifyTree walks root in pre-order and checks that every node has
// start_pos ≤ end_pos and that every node other than an InvalidNode lies
// within its parent's span. It returns the first violation found, or nil
// if the tree is well-formed.
func VerifyTree(root Node) error {
	return verify(root, nil)
}

func verify(node Node, parentSpan *Span) error {
	if node == nil {
		return nil
	}
	span := NodeSpan(node)
	if span.Start > span.End {
		return fmt.Errorf("%s at [%d,%d): start_pos > end_pos", node.NodeKind(), span.Start, span.End)
	}
	if parentSpan != nil && !IsNode(node, KindInvalid) && !parentSpan.Encloses(span) {
		return fmt.Errorf("%s at [%d,%d) escapes parent span [%d,%d)", node.NodeKind(), span.Start, span.End, parentSpan.Start, parentSpan.End)
	}
	for _, c := range node.Children() {
		if err := verify(c, &span); err != nil {
			return err
		}
	}
	return nil
}
