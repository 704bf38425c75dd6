package engine

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/patternlint/lang/python"
)

func parseTree(t *testing.T, source string) *sitter.Tree {
	t.Helper()
	tree, err := python.NewParser().Parse(context.Background(), []byte(source))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree
}

func TestWalkVisitsAllNamedNodes(t *testing.T) {
	tree := parseTree(t, "x = 1\ny = 2\n")

	var kinds []string
	w := &Walker{}
	w.Walk(tree.RootNode(), func(n *sitter.Node) {
		kinds = append(kinds, n.Type())
	})

	assert.Equal(t, []string{
		"module",
		"expression_statement", "assignment", "identifier", "integer",
		"expression_statement", "assignment", "identifier", "integer",
	}, kinds)
}

func TestWalkerParentChain(t *testing.T) {
	tree := parseTree(t, "x = 1\n")

	w := &Walker{}
	w.Walk(tree.RootNode(), func(n *sitter.Node) {
		if n.Type() != "integer" {
			return
		}
		require.NotNil(t, w.Parent(1))
		assert.Equal(t, "assignment", w.Parent(1).Type())
		assert.Equal(t, "expression_statement", w.Parent(2).Type())
		assert.Equal(t, "module", w.Parent(3).Type())
		assert.Nil(t, w.Parent(4))
		assert.Nil(t, w.Parent(0))
		assert.Equal(t, 4, w.Depth())
	})
}

func TestNearestAncestor(t *testing.T) {
	tree := parseTree(t, "def f():\n    x = 1\n")

	found := false
	w := &Walker{}
	w.Walk(tree.RootNode(), func(n *sitter.Node) {
		if n.Type() != "assignment" {
			return
		}
		found = true

		block := w.NearestAncestor("block", "module")
		require.NotNil(t, block)
		assert.Equal(t, "block", block.Type())

		fn := w.NearestAncestor("function_definition")
		require.NotNil(t, fn)

		assert.Nil(t, w.NearestAncestor("class_definition"))
		// The current node itself never matches.
		assert.Nil(t, w.NearestAncestor("assignment"))
	})
	assert.True(t, found)
}

func TestWalkerChainBalancedAfterPanic(t *testing.T) {
	tree := parseTree(t, "x = 1\n")

	w := &Walker{}
	func() {
		defer func() { _ = recover() }()
		w.Walk(tree.RootNode(), func(n *sitter.Node) {
			if n.Type() == "integer" {
				panic("boom")
			}
		})
	}()

	assert.Equal(t, 0, w.Depth())
}

func TestWalkNilRoot(t *testing.T) {
	w := &Walker{}
	w.Walk(nil, func(n *sitter.Node) {
		t.Fatal("visit should not be called")
	})
}
