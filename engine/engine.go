// Package engine drives one traversal of a parsed Python tree and collects
// rule findings. Each Engine instance owns all per-traversal state, so
// independent instances can check different files concurrently without any
// shared mutable state.
package engine

import (
	"github.com/hashicorp/go-hclog"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/patternlint/core"
	"github.com/oxhq/patternlint/rules"
)

// Identification exposed to linting hosts.
const (
	Name    = "patternlint"
	Version = "0.2.0"
)

// Options configures an engine. Zero values fall back to the Tier 1 rule
// set, the default catalog and a no-op logger.
type Options struct {
	Logger  hclog.Logger
	Rules   []rules.Rule
	Catalog rules.Catalog
}

// Engine dispatches visited nodes to the rule checks registered for their
// kind. Not safe for concurrent use; create one engine per goroutine.
type Engine struct {
	logger   hclog.Logger
	catalog  rules.Catalog
	dispatch map[string][]rules.Rule

	walker   Walker
	source   []byte
	filename string
	findings []core.Finding
	seen     map[findingKey]bool
}

// findingKey identifies one (node, rule) pair within a traversal. Node
// handles are not pointer comparable across field lookups, so identity is
// the source span plus kind.
type findingKey struct {
	start, end uint32
	kind       string
	rule       string
}

// New builds an engine with its dispatch table decided up front: node kind
// to registered checks, resolved once here rather than per node.
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	ruleSet := opts.Rules
	if ruleSet == nil {
		ruleSet = rules.All()
	}
	catalog := opts.Catalog
	if catalog.Len() == 0 {
		catalog = rules.DefaultCatalog()
	}

	dispatch := make(map[string][]rules.Rule)
	for _, r := range ruleSet {
		for _, kind := range r.Kinds {
			dispatch[kind] = append(dispatch[kind], r)
		}
	}

	return &Engine{
		logger:   logger,
		catalog:  catalog,
		dispatch: dispatch,
	}
}

// Default builds an engine with the Tier 1 rules and catalog.
func Default() *Engine {
	return New(Options{})
}

// Analyze runs one traversal of the tree rooted at root and returns the
// findings in discovery order. The tree is never mutated; source provides
// the bytes the tree was parsed from and filename is used for attribution
// only. Repeated calls on the same inputs yield identical sequences.
func (e *Engine) Analyze(root *sitter.Node, source []byte, filename string) []core.Finding {
	e.source = source
	e.filename = filename
	e.findings = nil
	e.seen = make(map[findingKey]bool)
	e.walker = Walker{}

	e.walker.Walk(root, e.visit)

	return e.findings
}

// AnalyzeTree is a convenience for hosts holding the parsed tree.
func (e *Engine) AnalyzeTree(tree *sitter.Tree, source []byte, filename string) []core.Finding {
	if tree == nil {
		return nil
	}
	return e.Analyze(tree.RootNode(), source, filename)
}

func (e *Engine) visit(n *sitter.Node) {
	checks, ok := e.dispatch[n.Type()]
	if !ok {
		return
	}
	for _, r := range checks {
		e.runCheck(r, n)
	}
}

// runCheck isolates one rule invocation: a panic inside a check is logged
// and dropped so the remaining rules and remaining nodes still run, and
// findings collected before the fault stay valid.
func (e *Engine) runCheck(r rules.Rule, n *sitter.Node) {
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Debug("rule check failed",
				"rule", r.ID,
				"node", n.Type(),
				"line", n.StartPoint().Row+1,
				"panic", rec,
			)
		}
	}()
	r.Check(n, e)
}

// Parent implements rules.Context.
func (e *Engine) Parent(offset int) *sitter.Node {
	return e.walker.Parent(offset)
}

// NearestAncestor implements rules.Context.
func (e *Engine) NearestAncestor(kinds ...string) *sitter.Node {
	return e.walker.NearestAncestor(kinds...)
}

// Source implements rules.Context.
func (e *Engine) Source() []byte {
	return e.source
}

// Report implements rules.Context. At most one finding is recorded per
// (node, rule) pair per traversal; rules are idempotent detectors, not
// multi-fire counters.
func (e *Engine) Report(n *sitter.Node, ruleID string) {
	if n == nil {
		return
	}
	key := findingKey{start: n.StartByte(), end: n.EndByte(), kind: n.Type(), rule: ruleID}
	if e.seen[key] {
		return
	}
	e.seen[key] = true

	e.findings = append(e.findings, core.Finding{
		File:     e.filename,
		Line:     int(n.StartPoint().Row) + 1,
		Column:   int(n.StartPoint().Column),
		RuleID:   ruleID,
		Message:  e.catalog.Message(ruleID),
		Reporter: Name,
	})
}

// Catalog returns the engine's message catalog.
func (e *Engine) Catalog() rules.Catalog {
	return e.catalog
}
