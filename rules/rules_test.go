package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oxhq/patternlint/core"
	"github.com/oxhq/patternlint/engine"
	"github.com/oxhq/patternlint/lang/python"
)

// analyze runs the full Tier 1 rule set over one source snippet.
func analyze(t *testing.T, source string) []core.Finding {
	t.Helper()

	parser := python.NewParser()
	tree, err := parser.Parse(context.Background(), []byte(source))
	require.NoError(t, err)
	defer tree.Close()

	return engine.Default().AnalyzeTree(tree, []byte(source), "test.py")
}

func countCode(findings []core.Finding, code string) int {
	n := 0
	for _, f := range findings {
		if f.RuleID == code {
			n++
		}
	}
	return n
}

func hasCode(findings []core.Finding, code string) bool {
	return countCode(findings, code) > 0
}
