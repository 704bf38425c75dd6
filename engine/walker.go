package engine

import sitter "github.com/smacker/go-tree-sitter"

// Walker performs a single depth-first traversal over named nodes while
// maintaining the live ancestor chain. The chain is valid only during the
// visit of the node at its tip; push and pop are balanced around every
// recursive step via defer, so a panicking visitor cannot leave the chain
// unbalanced.
type Walker struct {
	chain []*sitter.Node
}

// Walk visits root and every named descendant, invoking visit at each node
// with the chain positioned on it.
func (w *Walker) Walk(root *sitter.Node, visit func(*sitter.Node)) {
	if root == nil {
		return
	}
	w.step(root, visit)
}

func (w *Walker) step(n *sitter.Node, visit func(*sitter.Node)) {
	w.chain = append(w.chain, n)
	defer func() { w.chain = w.chain[:len(w.chain)-1] }()

	visit(n)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		w.step(n.NamedChild(i), visit)
	}
}

// Parent returns the ancestor offset levels above the current node, or nil
// when the chain is shorter than that.
func (w *Walker) Parent(offset int) *sitter.Node {
	if offset < 1 || len(w.chain) <= offset {
		return nil
	}
	return w.chain[len(w.chain)-1-offset]
}

// NearestAncestor scans the chain backwards, excluding the current node,
// for the closest ancestor of one of the given kinds.
func (w *Walker) NearestAncestor(kinds ...string) *sitter.Node {
	for i := len(w.chain) - 2; i >= 0; i-- {
		for _, kind := range kinds {
			if w.chain[i].Type() == kind {
				return w.chain[i]
			}
		}
	}
	return nil
}

// Depth returns the current chain length, including the node being visited.
func (w *Walker) Depth() int {
	return len(w.chain)
}
