package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/patternlint/predicate"
)

// indexAssign is the pattern-match state for one sibling statement of the
// sequential indexing pattern: `<name> = <container>[<index>]`.
type indexAssign struct {
	stmt        *sitter.Node
	target      string
	isAttribute bool
	container   string
	index       int
}

// checkSequentialIndexing detects runs of assignments that pull consecutive
// integer offsets out of the same sequence, the signature of code that
// should use unpacking (`x, y = item`) instead.
func checkSequentialIndexing(n *sitter.Node, ctx Context) {
	source := ctx.Source()

	current, ok := asIndexAssignment(n, source)
	if !ok {
		return
	}

	list := ctx.NearestAncestor(predicate.KindBlock, predicate.KindModule)
	if list == nil {
		return
	}

	// Collect every sibling statement indexing the same container.
	var group []indexAssign
	for _, stmt := range statements(list) {
		assign, ok := predicate.StatementAssignment(stmt)
		if !ok {
			continue
		}
		ia, ok := asIndexAssignment(assign, source)
		if !ok || ia.container != current.container {
			continue
		}
		ia.stmt = stmt
		group = append(group, ia)
	}
	if len(group) < 2 {
		return
	}

	indices := make([]int, len(group))
	for i, ia := range group {
		indices[i] = ia.index
	}
	if !hasConsecutiveRun(indices) {
		return
	}

	if isIntermediateIndexPattern(group, list, source) {
		return
	}

	ctx.Report(n, EFP105)
}

func asIndexAssignment(n *sitter.Node, source []byte) (indexAssign, bool) {
	assign, ok := predicate.AsSimpleAssignment(n, source)
	if !ok {
		return indexAssign{}, false
	}
	container, index, ok := predicate.IndexedAccess(assign.Value, source)
	if !ok {
		return indexAssign{}, false
	}
	return indexAssign{
		target:      assign.TargetName,
		isAttribute: assign.TargetIsAttribute,
		container:   container,
		index:       index,
	}, true
}

// hasConsecutiveRun reports whether the observed index values contain a run
// of two or more consecutive integers, anywhere in the set.
func hasConsecutiveRun(indices []int) bool {
	seen := make(map[int]bool, len(indices))
	for _, v := range indices {
		seen[v] = true
	}
	for v := range seen {
		if seen[v+1] {
			return true
		}
	}
	return false
}

// isIntermediateIndexPattern applies the suppression heuristic: when every
// assigned name is used exclusively as a subscript index in the statements
// that follow, the assignments are index holders for a second lookup, a
// benign idiom that merely looks like the unpacking anti-pattern. The
// heuristic is best-effort; it can both over- and under-suppress on mixed
// usage across branches.
func isIntermediateIndexPattern(group []indexAssign, list *sitter.Node, source []byte) bool {
	assigned := make(map[string]bool, len(group))
	for _, ia := range group {
		if ia.isAttribute {
			// self.x style targets are terminal stores, never index holders.
			return false
		}
		assigned[ia.target] = true
	}
	if len(assigned) == 0 {
		return false
	}

	var lastStart uint32
	for _, ia := range group {
		if ia.stmt.StartByte() > lastStart {
			lastStart = ia.stmt.StartByte()
		}
	}

	var following []*sitter.Node
	for _, stmt := range statements(list) {
		if stmt.StartByte() > lastStart {
			following = append(following, stmt)
		}
	}
	if len(following) == 0 {
		return false
	}

	indexUses, otherUses := 0, 0
	for _, stmt := range following {
		walkSubtree(stmt, func(nn *sitter.Node) {
			name, ok := predicate.Identifier(nn, source)
			if !ok || !assigned[name] {
				return
			}
			parent := nn.Parent()
			if parent != nil && parent.Type() == predicate.KindSubscript &&
				predicate.SameNode(predicate.SubscriptIndex(parent), nn) {
				indexUses++
				return
			}
			otherUses++
		})
	}

	return indexUses > 0 && otherUses == 0
}
