package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/patternlint/predicate"
)

// checkDictGetPattern matches the try/except KeyError idiom whose only
// effect is assigning one variable from a mapping lookup with a fallback:
//
//	try:
//	    value = mapping[key]
//	except KeyError:
//	    value = default
//
// That is a single defaulted lookup, `mapping.get(key, default)`. Any
// additional statement in either block (logging, re-raising, notifying)
// means the handler does real work, so the finding is suppressed.
func checkDictGetPattern(n *sitter.Node, ctx Context) {
	source := ctx.Source()

	body := n.ChildByFieldName("body")
	if body == nil || body.NamedChildCount() != 1 {
		return
	}
	tryAssign, ok := predicate.StatementAssignment(body.NamedChild(0))
	if !ok {
		return
	}
	lookup, ok := predicate.AsSimpleAssignment(tryAssign, source)
	if !ok || lookup.TargetIsAttribute {
		return
	}
	if lookup.Value == nil || lookup.Value.Type() != predicate.KindSubscript {
		return
	}
	base := lookup.Value.ChildByFieldName("value")
	if base == nil || (base.Type() != predicate.KindIdentifier && base.Type() != predicate.KindAttribute) {
		return
	}

	handler := soleKeyErrorHandler(n, source)
	if handler == nil {
		return
	}

	handlerBody := clauseBlock(handler)
	if handlerBody == nil || handlerBody.NamedChildCount() != 1 {
		return
	}
	fallbackAssign, ok := predicate.StatementAssignment(handlerBody.NamedChild(0))
	if !ok {
		return
	}
	fallback, ok := predicate.AsSimpleAssignment(fallbackAssign, source)
	if !ok || fallback.TargetIsAttribute || fallback.TargetName != lookup.TargetName {
		return
	}

	ctx.Report(n, EFP426)
}

// soleKeyErrorHandler returns the try statement's single except clause when
// it catches exactly KeyError and the statement has no other clauses.
// Bare excepts, exception tuples and extra else/finally clauses disqualify
// the pattern.
func soleKeyErrorHandler(try *sitter.Node, source []byte) *sitter.Node {
	var handler *sitter.Node
	for i := 0; i < int(try.NamedChildCount()); i++ {
		clause := try.NamedChild(i)
		switch clause.Type() {
		case predicate.KindExceptClause:
			if handler != nil {
				return nil
			}
			handler = clause
		case predicate.KindElseClause, predicate.KindFinallyClause:
			return nil
		}
	}
	if handler == nil || !catchesOnlyKeyError(handler, source) {
		return nil
	}
	return handler
}

func catchesOnlyKeyError(clause *sitter.Node, source []byte) bool {
	var caught *sitter.Node
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		child := clause.NamedChild(i)
		if child.Type() == predicate.KindBlock {
			continue
		}
		if caught != nil {
			return false
		}
		caught = child
	}
	if caught == nil {
		// A bare except catches everything, not just missing keys.
		return false
	}
	if caught.Type() == predicate.KindAsPattern && caught.NamedChildCount() > 0 {
		caught = caught.NamedChild(0)
	}
	name, ok := predicate.Identifier(caught, source)
	return ok && name == "KeyError"
}
