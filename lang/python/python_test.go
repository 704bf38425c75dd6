package python

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValidSource(t *testing.T) {
	parser := NewParser()

	tree, err := parser.Parse(context.Background(), []byte("x = 1\nprint(x)\n"))
	require.NoError(t, err)
	defer tree.Close()

	root := tree.RootNode()
	assert.Equal(t, "module", root.Type())
	assert.EqualValues(t, 2, root.NamedChildCount())
	assert.Empty(t, SyntaxErrors(root))
}

func TestParseEmptySource(t *testing.T) {
	parser := NewParser()

	tree, err := parser.Parse(context.Background(), nil)
	require.NoError(t, err)
	defer tree.Close()

	assert.EqualValues(t, 0, tree.RootNode().NamedChildCount())
}

func TestSyntaxErrorsReported(t *testing.T) {
	parser := NewParser()

	tree, err := parser.Parse(context.Background(), []byte("def broken(:\n    pass\n"))
	require.NoError(t, err)
	defer tree.Close()

	errs := SyntaxErrors(tree.RootNode())
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "syntax error at line")
}

func TestParserReuse(t *testing.T) {
	parser := NewParser()

	for _, src := range []string{"a = 1\n", "b = 2\n", "c = 3\n"} {
		tree, err := parser.Parse(context.Background(), []byte(src))
		require.NoError(t, err)
		assert.Equal(t, "module", tree.RootNode().Type())
		tree.Close()
	}
}

func TestExtensions(t *testing.T) {
	assert.Equal(t, []string{".py", ".pyw", ".pyi"}, Extensions())
}
