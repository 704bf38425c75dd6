package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/patternlint/rules"
)

func TestImplicitConcatInList(t *testing.T) {
	findings := analyze(t, `items = [
    "first_item" "second_item",
    "third_item",
]
`)
	require.Equal(t, 1, countCode(findings, rules.EFP213))
	assert.Equal(t, 2, findings[0].Line)
}

func TestImplicitConcatInTuple(t *testing.T) {
	findings := analyze(t, `items = ("a" "b", "c")
`)
	assert.Equal(t, 1, countCode(findings, rules.EFP213))
}

func TestImplicitConcatInSet(t *testing.T) {
	findings := analyze(t, `items = {"a" "b", "c"}
`)
	assert.Equal(t, 1, countCode(findings, rules.EFP213))
}

func TestExplicitConcatNotFlagged(t *testing.T) {
	findings := analyze(t, `items = [
    "first_item" + "second_item",
    "third_item",
]
`)
	assert.False(t, hasCode(findings, rules.EFP213))
}

func TestAdjacentStringsOutsideCollectionAllowed(t *testing.T) {
	// Deliberate line wrapping, the idiom the context rule protects.
	findings := analyze(t, `message = (
    "a long sentence that "
    "continues on the next line"
)
`)
	assert.False(t, hasCode(findings, rules.EFP213))
}

func TestMultipleFoldedElements(t *testing.T) {
	findings := analyze(t, `items = [
    "a" "b",
    "c",
    "d" "e",
]
`)
	assert.Equal(t, 2, countCode(findings, rules.EFP213))
}

func TestFoldedElementInCallArgument(t *testing.T) {
	findings := analyze(t, `process(["a" "b", "c"])
`)
	assert.Equal(t, 1, countCode(findings, rules.EFP213))
}
