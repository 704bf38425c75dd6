// Package python wraps the tree-sitter Python grammar behind the small
// parsing surface the rule engine and CLI need.
package python

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Extensions returns the file extensions treated as Python sources.
func Extensions() []string {
	return []string{".py", ".pyw", ".pyi"}
}

// Parser parses Python source into tree-sitter trees. Not safe for
// concurrent use; create one parser per goroutine.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a parser configured with the Python grammar.
func NewParser() *Parser {
	p := sitter.NewParser()
	lang := python.GetLanguage()
	if lang == nil {
		panic("failed to load python language for tree-sitter")
	}
	p.SetLanguage(lang)
	return &Parser{parser: p}
}

// Parse parses source into a tree. The caller owns the tree and must Close it.
func (p *Parser) Parse(ctx context.Context, source []byte) (*sitter.Tree, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	if tree == nil {
		return nil, fmt.Errorf("failed to parse source: no tree produced")
	}
	return tree, nil
}

// SyntaxErrors collects parse error locations under root, line/column 1-based.
func SyntaxErrors(root *sitter.Node) []string {
	var errors []string
	collectErrors(root, &errors)
	return errors
}

func collectErrors(node *sitter.Node, errors *[]string) {
	if node.Type() == "ERROR" {
		*errors = append(*errors, fmt.Sprintf(
			"syntax error at line %d, column %d",
			node.StartPoint().Row+1,
			node.StartPoint().Column+1,
		))
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectErrors(node.Child(i), errors)
	}
}
