package rules

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/patternlint/predicate"
)

// checkParallelIteration detects `for i in range(len(seq))` loops whose body
// indexes two or more different sequences with the loop index. Those loops
// read in parallel and should use zip. Loops that need the index itself
// (printing it, arithmetic on it) are left alone.
func checkParallelIteration(n *sitter.Node, ctx Context) {
	source := ctx.Source()

	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	body := n.ChildByFieldName("body")
	if left == nil || right == nil || body == nil {
		return
	}

	loopVar, ok := predicate.Identifier(left, source)
	if !ok {
		return
	}
	if _, ok := predicate.RangeLenArgument(right, source); !ok {
		return
	}

	containers := make(map[string]bool)
	indexedOnly := true
	walkSubtree(body, func(nn *sitter.Node) {
		name, ok := predicate.Identifier(nn, source)
		if !ok || name != loopVar {
			return
		}
		parent := nn.Parent()
		if parent != nil && parent.Type() == predicate.KindSubscript &&
			predicate.SameNode(predicate.SubscriptIndex(parent), nn) {
			if seq, ok := predicate.Identifier(parent.ChildByFieldName("value"), source); ok {
				containers[seq] = true
			}
			return
		}
		indexedOnly = false
	})

	if !indexedOnly || len(containers) < 2 {
		return
	}

	ctx.Report(n, EFP318)
}

// checkStaleLoopVariable detects use of a for-loop's target variable after
// the loop in the same block. The variable is undefined when the iterable
// is empty, and otherwise holds whatever the last iteration left behind.
// A sentinel assigned before the loop, an assignment in the loop's else
// branch, or an intervening assignment in the trailing statements all
// neutralize the finding.
func checkStaleLoopVariable(n *sitter.Node, ctx Context) {
	source := ctx.Source()

	names := loopTargets(n, source)
	if len(names) == 0 {
		return
	}

	list := ctx.NearestAncestor(predicate.KindBlock, predicate.KindModule)
	if list == nil {
		return
	}
	siblings := statements(list)

	active := make(map[string]bool, len(names))
	for _, name := range names {
		active[name] = true
	}

	// Sentinel initialized before the loop guarantees the name is bound.
	for _, stmt := range siblings {
		if stmt.StartByte() >= n.StartByte() {
			break
		}
		for _, name := range names {
			if active[name] && assignsName(stmt, name, source) {
				delete(active, name)
			}
		}
	}

	// An explicit assignment in the for/else branch also guarantees binding.
	if alt := n.ChildByFieldName("alternative"); alt != nil {
		for _, stmt := range statements(clauseBlock(alt)) {
			for _, name := range names {
				if active[name] && assignsName(stmt, name, source) {
					delete(active, name)
				}
			}
		}
	}
	if len(active) == 0 {
		return
	}

	var after []*sitter.Node
	for _, stmt := range siblings {
		if stmt.StartByte() > n.StartByte() {
			after = append(after, stmt)
		}
	}

	// A finally clause wrapping the loop runs right after it, so its
	// statements count as trailing use sites too.
	if p1, p2 := ctx.Parent(1), ctx.Parent(2); p1 != nil && p1.Type() == predicate.KindBlock &&
		p2 != nil && p2.Type() == predicate.KindTryStatement {
		for i := 0; i < int(p2.NamedChildCount()); i++ {
			clause := p2.NamedChild(i)
			if clause.Type() == predicate.KindFinallyClause {
				after = append(after, statements(clauseBlock(clause))...)
			}
		}
	}

	for _, stmt := range after {
		for _, name := range names {
			if !active[name] {
				continue
			}
			if ref := findReference(stmt, name, source); ref != nil {
				ctx.Report(ref, EFP320)
				return
			}
			if assignsName(stmt, name, source) {
				delete(active, name)
			}
		}
		if len(active) == 0 {
			return
		}
	}
}

// loopTargets collects the identifier names bound by a for statement's
// target, covering both plain and tuple targets.
func loopTargets(n *sitter.Node, source []byte) []string {
	left := n.ChildByFieldName("left")
	if left == nil {
		return nil
	}
	if name, ok := predicate.Identifier(left, source); ok {
		return []string{name}
	}
	switch left.Type() {
	case predicate.KindPatternList, predicate.KindTuple:
		var names []string
		for i := 0; i < int(left.NamedChildCount()); i++ {
			if name, ok := predicate.Identifier(left.NamedChild(i), source); ok {
				names = append(names, name)
			}
		}
		return names
	}
	return nil
}

// clauseBlock returns the block owned by an else/except/finally clause.
func clauseBlock(clause *sitter.Node) *sitter.Node {
	if clause == nil {
		return nil
	}
	if body := clause.ChildByFieldName("body"); body != nil && body.Type() == predicate.KindBlock {
		return body
	}
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		if child := clause.NamedChild(i); child.Type() == predicate.KindBlock {
			return child
		}
	}
	return nil
}

// assignsName reports whether stmt is a top-level assignment binding name.
// Only statements directly in the block count as guaranteed; assignments
// inside conditionals are not.
func assignsName(stmt *sitter.Node, name string, source []byte) bool {
	assign, ok := predicate.StatementAssignment(stmt)
	if !ok {
		return false
	}
	return targetBinds(assign.ChildByFieldName("left"), name, source)
}

func targetBinds(target *sitter.Node, name string, source []byte) bool {
	if target == nil {
		return false
	}
	if got, ok := predicate.Identifier(target, source); ok {
		return got == name
	}
	switch target.Type() {
	case predicate.KindPatternList, predicate.KindTuple:
		for i := 0; i < int(target.NamedChildCount()); i++ {
			if got, ok := predicate.Identifier(target.NamedChild(i), source); ok && got == name {
				return true
			}
		}
	}
	return false
}

// findReference returns the first read of name inside stmt, in evaluation
// order: assignment right-hand sides are scanned before their targets, and
// a plain name in target position is a rebind, not a read. Nested for
// targets are likewise binds.
func findReference(stmt *sitter.Node, name string, source []byte) *sitter.Node {
	if stmt == nil {
		return nil
	}

	switch stmt.Type() {
	case predicate.KindIdentifier:
		if stmt.Content(source) == name {
			return stmt
		}
		return nil
	case predicate.KindAssignment:
		if ref := findReference(stmt.ChildByFieldName("right"), name, source); ref != nil {
			return ref
		}
		// Subscript or attribute targets still read their base expression.
		if left := stmt.ChildByFieldName("left"); left != nil && left.Type() != predicate.KindIdentifier &&
			left.Type() != predicate.KindPatternList && left.Type() != predicate.KindTuple {
			return findReference(left, name, source)
		}
		return nil
	case predicate.KindForStatement:
		if ref := findReference(stmt.ChildByFieldName("right"), name, source); ref != nil {
			return ref
		}
		// A nested loop that binds the name shadows the stale value for
		// its body and else branch.
		if targetBinds(stmt.ChildByFieldName("left"), name, source) {
			return nil
		}
		if ref := findReference(stmt.ChildByFieldName("body"), name, source); ref != nil {
			return ref
		}
		return findReference(stmt.ChildByFieldName("alternative"), name, source)
	}

	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		if ref := findReference(stmt.NamedChild(i), name, source); ref != nil {
			return ref
		}
	}
	return nil
}
