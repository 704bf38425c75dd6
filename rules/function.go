package rules

import (
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/patternlint/predicate"
)

// aggregateFuncs are builtins that traverse their iterable argument to
// completion in a single call.
var aggregateFuncs = map[string]bool{
	"len":       true,
	"sum":       true,
	"max":       true,
	"min":       true,
	"sorted":    true,
	"any":       true,
	"all":       true,
	"list":      true,
	"tuple":     true,
	"set":       true,
	"frozenset": true,
}

// materializers are builtins whose result is a reusable sequence; rebinding
// a parameter through one of them is the defensive copy idiom.
var materializers = map[string]bool{
	"list":      true,
	"tuple":     true,
	"sorted":    true,
	"set":       true,
	"frozenset": true,
}

type paramEvent struct {
	pos    uint32
	rebind bool
}

// checkDefensiveIteration flags functions that traverse the same parameter
// two or more times without first materializing it. A caller may pass a
// single-use iterator, in which case the second traversal silently sees
// nothing.
func checkDefensiveIteration(n *sitter.Node, ctx Context) {
	source := ctx.Source()

	params := parameterNames(n, source)
	body := n.ChildByFieldName("body")
	if len(params) == 0 || body == nil {
		return
	}

	lookup := make(map[string]bool, len(params))
	for _, p := range params {
		lookup[p] = true
	}

	events := make(map[string][]paramEvent)
	record := func(name string, pos uint32, rebind bool) {
		events[name] = append(events[name], paramEvent{pos: pos, rebind: rebind})
	}

	walkSubtree(body, func(nn *sitter.Node) {
		switch nn.Type() {
		case predicate.KindForStatement, predicate.KindForInClause:
			if name, ok := predicate.Identifier(nn.ChildByFieldName("right"), source); ok && lookup[name] {
				record(name, nn.StartByte(), false)
			}
		case predicate.KindCall:
			if !predicate.IsCallTo(nn, source, aggregateFuncs) {
				return
			}
			for _, arg := range predicate.CallArguments(nn) {
				if name, ok := predicate.Identifier(arg, source); ok && lookup[name] {
					record(name, nn.StartByte(), false)
				}
			}
		case predicate.KindAssignment:
			assign, ok := predicate.AsSimpleAssignment(nn, source)
			if !ok || assign.TargetIsAttribute || !lookup[assign.TargetName] {
				return
			}
			if !predicate.IsCallTo(assign.Value, source, materializers) {
				return
			}
			args := predicate.CallArguments(assign.Value)
			if len(args) == 1 {
				if name, ok := predicate.Identifier(args[0], source); ok && name == assign.TargetName {
					record(name, nn.StartByte(), true)
				}
			}
		}
	})

	for _, param := range params {
		evs := events[param]
		sort.Slice(evs, func(i, j int) bool { return evs[i].pos < evs[j].pos })

		traversals := 0
		for _, ev := range evs {
			if ev.rebind {
				// Defensive copy: everything after reads a real sequence.
				traversals = 0
				break
			}
			traversals++
			if traversals >= 2 {
				ctx.Report(n, EFP321)
				return
			}
		}
	}
}

// parameterNames extracts the plain formal parameter names of a function
// definition. Receiver-style names and splat parameters are skipped: *args
// and **kwargs arrive as materialized collections already.
func parameterNames(n *sitter.Node, source []byte) []string {
	paramsNode := n.ChildByFieldName("parameters")
	if paramsNode == nil {
		return nil
	}

	var names []string
	for i := 0; i < int(paramsNode.NamedChildCount()); i++ {
		p := paramsNode.NamedChild(i)
		var nameNode *sitter.Node
		switch p.Type() {
		case predicate.KindIdentifier:
			nameNode = p
		case predicate.KindDefaultParameter, predicate.KindTypedParameter, predicate.KindTypedDefaultParam:
			nameNode = p.ChildByFieldName("name")
			if nameNode == nil && p.NamedChildCount() > 0 {
				nameNode = p.NamedChild(0)
			}
		default:
			continue
		}
		name, ok := predicate.Identifier(nameNode, source)
		if !ok || name == "self" || name == "cls" {
			continue
		}
		names = append(names, name)
	}
	return names
}
