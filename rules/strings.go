package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/patternlint/predicate"
)

// checkImplicitConcatenation flags elements of a list, tuple or set display
// that the parser folded from adjacent string literals into one value, the
// signature of a missing comma:
//
//	items = [
//	    "first" "second",   # one element, almost certainly a typo
//	    "third",
//	]
//
// Adjacent literals outside a collection display are a deliberate
// line-wrapping idiom and are never flagged; this check only ever runs on
// collection nodes, so that context rule holds by construction.
func checkImplicitConcatenation(n *sitter.Node, ctx Context) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		element := n.NamedChild(i)
		if predicate.IsConcatenatedString(element) {
			ctx.Report(element, EFP213)
		}
	}
}
