package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/patternlint/core"
	"github.com/oxhq/patternlint/rules"
)

const badSnippet = `item = ("Alice", 25, "Engineer")
name = item[0]
age = item[1]
job = item[2]
`

const cleanSnippet = `item = ("Alice", 25, "Engineer")
name, age, job = item
`

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestRunFindsViolations(t *testing.T) {
	root := writeTree(t, map[string]string{
		"bad.py":       badSnippet,
		"clean.py":     cleanSnippet,
		"notes.txt":    "not python",
		"pkg/also.py":  badSnippet,
		"pkg/more.pyi": "x: int\n",
	})

	r := New(Options{})
	summary, err := r.Run(context.Background(), core.FileScope{Path: root})
	require.NoError(t, err)

	assert.Equal(t, 4, summary.FilesScanned)
	assert.Equal(t, 2, summary.FilesWithFindings)
	assert.Equal(t, 6, summary.TotalFindings)

	// Reports come back sorted by path with root-relative names.
	require.Len(t, summary.Reports, 4)
	assert.Equal(t, "bad.py", summary.Reports[0].Path)
	assert.Equal(t, "clean.py", summary.Reports[1].Path)
	assert.Equal(t, filepath.Join("pkg", "also.py"), summary.Reports[2].Path)

	for _, f := range summary.Reports[0].Findings {
		assert.Equal(t, "bad.py", f.File)
		assert.Equal(t, rules.EFP105, f.RuleID)
	}
}

func TestRunRepeatable(t *testing.T) {
	root := writeTree(t, map[string]string{
		"bad.py": badSnippet,
	})

	r := New(Options{})
	first, err := r.Run(context.Background(), core.FileScope{Path: root})
	require.NoError(t, err)
	second, err := r.Run(context.Background(), core.FileScope{Path: root})
	require.NoError(t, err)

	assert.Equal(t, first.Reports, second.Reports)
	assert.Equal(t, first.TotalFindings, second.TotalFindings)
}

func TestDisabledRulesSkipped(t *testing.T) {
	root := writeTree(t, map[string]string{"bad.py": badSnippet})

	r := New(Options{Disabled: []string{rules.EFP105}})
	summary, err := r.Run(context.Background(), core.FileScope{Path: root})
	require.NoError(t, err)

	assert.Zero(t, summary.TotalFindings)
}

func TestRunSkipsUnparseableGracefully(t *testing.T) {
	root := writeTree(t, map[string]string{
		"bad.py":    badSnippet,
		"broken.py": "def broken(:\n",
	})

	r := New(Options{})
	summary, err := r.Run(context.Background(), core.FileScope{Path: root})
	require.NoError(t, err)

	// tree-sitter produces a tree with error nodes rather than failing, so
	// the broken file is still scanned and the good file still reports.
	assert.Equal(t, 2, summary.FilesScanned)
	assert.Equal(t, 3, summary.TotalFindings)
}

func TestCheckSource(t *testing.T) {
	r := New(Options{})

	findings, err := r.CheckSource(context.Background(), []byte(badSnippet), "inline.py")
	require.NoError(t, err)
	assert.Len(t, findings, 3)
	assert.Equal(t, "inline.py", findings[0].File)

	findings, err = r.CheckSource(context.Background(), []byte(cleanSnippet), "inline.py")
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestWorkerCountDefaults(t *testing.T) {
	assert.Positive(t, New(Options{}).workers)
	assert.Equal(t, 3, New(Options{Workers: 3}).workers)
}
