// Package rules implements the Effective Python idiom detectors. Each rule
// subscribes to one or more node kinds and is invoked by the engine driver
// with the node and a Context giving access to the ancestor chain and the
// finding sink.
package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/patternlint/predicate"
)

// Tier 1 rule identifiers. Stable across releases: new rules get new codes,
// existing codes never change meaning.
const (
	EFP105 = "EFP105" // multiple-assignment unpacking over indexing
	EFP213 = "EFP213" // context-aware string concatenation
	EFP318 = "EFP318" // parallel iteration with zip
	EFP320 = "EFP320" // loop variables after the loop ends
	EFP321 = "EFP321" // be defensive when iterating over arguments
	EFP426 = "EFP426" // dict.get over try/except KeyError
)

// Context is the engine surface a rule check sees: ancestor access plus the
// finding sink. Implementations guarantee the chain is valid only for the
// duration of the check call.
type Context interface {
	// Parent returns the ancestor offset levels above the current node, or
	// nil when the chain is shorter.
	Parent(offset int) *sitter.Node
	// NearestAncestor scans the chain backwards for the closest ancestor of
	// one of the given kinds.
	NearestAncestor(kinds ...string) *sitter.Node
	// Source returns the raw bytes the tree was parsed from.
	Source() []byte
	// Report records a finding for the rule at the node's position.
	Report(n *sitter.Node, ruleID string)
}

// Rule binds a detector to the node kinds that trigger it.
type Rule struct {
	ID    string
	Kinds []string
	Check func(n *sitter.Node, ctx Context)
}

// All returns the Tier 1 rule set in stable order.
func All() []Rule {
	return []Rule{
		{
			ID:    EFP105,
			Kinds: []string{predicate.KindAssignment},
			Check: checkSequentialIndexing,
		},
		{
			ID:    EFP213,
			Kinds: []string{predicate.KindList, predicate.KindTuple, predicate.KindSet},
			Check: checkImplicitConcatenation,
		},
		{
			ID:    EFP318,
			Kinds: []string{predicate.KindForStatement},
			Check: checkParallelIteration,
		},
		{
			ID:    EFP320,
			Kinds: []string{predicate.KindForStatement},
			Check: checkStaleLoopVariable,
		},
		{
			ID:    EFP321,
			Kinds: []string{predicate.KindFunctionDefinition},
			Check: checkDefensiveIteration,
		},
		{
			ID:    EFP426,
			Kinds: []string{predicate.KindTryStatement},
			Check: checkDictGetPattern,
		},
	}
}

// walkSubtree visits n and every named descendant in source order.
func walkSubtree(n *sitter.Node, visit func(*sitter.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		walkSubtree(n.NamedChild(i), visit)
	}
}

// statements returns the named children of a statement list.
func statements(list *sitter.Node) []*sitter.Node {
	if list == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, list.NamedChildCount())
	for i := 0; i < int(list.NamedChildCount()); i++ {
		out = append(out, list.NamedChild(i))
	}
	return out
}
