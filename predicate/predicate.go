// Package predicate holds stateless structural tests over single syntax
// nodes. Predicates inspect the node passed in (and its direct children)
// and never consult traversal state; malformed or unexpected shapes yield
// a negative result, never a panic.
package predicate

import (
	"strconv"

	sitter "github.com/smacker/go-tree-sitter"
)

// Python grammar node kinds the rules care about.
const (
	KindModule              = "module"
	KindBlock               = "block"
	KindExpressionStatement = "expression_statement"
	KindAssignment          = "assignment"
	KindAugmentedAssignment = "augmented_assignment"
	KindSubscript           = "subscript"
	KindIdentifier          = "identifier"
	KindAttribute           = "attribute"
	KindInteger             = "integer"
	KindString              = "string"
	KindConcatenatedString  = "concatenated_string"
	KindCall                = "call"
	KindArgumentList        = "argument_list"
	KindForStatement        = "for_statement"
	KindWhileStatement      = "while_statement"
	KindFunctionDefinition  = "function_definition"
	KindTryStatement        = "try_statement"
	KindExceptClause        = "except_clause"
	KindFinallyClause       = "finally_clause"
	KindElseClause          = "else_clause"
	KindAsPattern           = "as_pattern"
	KindList                = "list"
	KindTuple               = "tuple"
	KindSet                 = "set"
	KindListComprehension   = "list_comprehension"
	KindSetComprehension    = "set_comprehension"
	KindDictComprehension   = "dictionary_comprehension"
	KindGeneratorExpression = "generator_expression"
	KindForInClause         = "for_in_clause"
	KindParameters          = "parameters"
	KindDefaultParameter    = "default_parameter"
	KindTypedParameter      = "typed_parameter"
	KindTypedDefaultParam   = "typed_default_parameter"
	KindPatternList         = "pattern_list"
)

// IsStringLiteral reports whether n is a plain string literal.
func IsStringLiteral(n *sitter.Node) bool {
	return n != nil && n.Type() == KindString
}

// IsConcatenatedString reports whether n is an implicitly concatenated
// string literal (two or more adjacent literals folded by the parser).
func IsConcatenatedString(n *sitter.Node) bool {
	return n != nil && n.Type() == KindConcatenatedString
}

// IsLoop reports whether n is a for or while loop.
func IsLoop(n *sitter.Node) bool {
	if n == nil {
		return false
	}
	t := n.Type()
	return t == KindForStatement || t == KindWhileStatement
}

// IsComprehension reports whether n is any comprehension or generator
// expression.
func IsComprehension(n *sitter.Node) bool {
	if n == nil {
		return false
	}
	switch n.Type() {
	case KindListComprehension, KindSetComprehension, KindDictComprehension, KindGeneratorExpression:
		return true
	}
	return false
}

// IsStatementList reports whether n owns a statement sequence (a block or
// the module itself).
func IsStatementList(n *sitter.Node) bool {
	if n == nil {
		return false
	}
	t := n.Type()
	return t == KindBlock || t == KindModule
}

// Identifier returns the text of an identifier node.
func Identifier(n *sitter.Node, source []byte) (string, bool) {
	if n == nil || n.Type() != KindIdentifier {
		return "", false
	}
	return n.Content(source), true
}

// IntValue extracts the value of a literal integer node. Negative literals
// parse as a unary operator wrapping the integer, so a bare integer node is
// always non-negative.
func IntValue(n *sitter.Node, source []byte) (int, bool) {
	if n == nil || n.Type() != KindInteger {
		return 0, false
	}
	v, err := strconv.ParseInt(n.Content(source), 0, 64)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// CalleeName extracts the called function name from a call node: the
// identifier for simple calls, the attribute name for method calls.
func CalleeName(n *sitter.Node, source []byte) (string, bool) {
	if n == nil || n.Type() != KindCall {
		return "", false
	}
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return "", false
	}
	switch fn.Type() {
	case KindIdentifier:
		return fn.Content(source), true
	case KindAttribute:
		if attr := fn.ChildByFieldName("attribute"); attr != nil {
			return attr.Content(source), true
		}
	}
	return "", false
}

// CallArguments returns the named argument nodes of a call, or nil for
// non-call shapes.
func CallArguments(n *sitter.Node) []*sitter.Node {
	if n == nil || n.Type() != KindCall {
		return nil
	}
	list := n.ChildByFieldName("arguments")
	if list == nil {
		return nil
	}
	args := make([]*sitter.Node, 0, list.NamedChildCount())
	for i := 0; i < int(list.NamedChildCount()); i++ {
		args = append(args, list.NamedChild(i))
	}
	return args
}

// IsCallTo reports whether n calls one of the given function names.
func IsCallTo(n *sitter.Node, source []byte, names map[string]bool) bool {
	callee, ok := CalleeName(n, source)
	return ok && names[callee]
}

// RangeLenArgument matches the expression `range(len(<seq>))` and returns
// the sequence name.
func RangeLenArgument(n *sitter.Node, source []byte) (string, bool) {
	callee, ok := CalleeName(n, source)
	if !ok || callee != "range" {
		return "", false
	}
	args := CallArguments(n)
	if len(args) != 1 {
		return "", false
	}
	inner, ok := CalleeName(args[0], source)
	if !ok || inner != "len" {
		return "", false
	}
	innerArgs := CallArguments(args[0])
	if len(innerArgs) != 1 {
		return "", false
	}
	return Identifier(innerArgs[0], source)
}

// Assignment is the decomposed form of a single-target assignment.
type Assignment struct {
	Target      *sitter.Node // identifier or attribute
	TargetName  string
	TargetIsAttribute bool
	Value       *sitter.Node
}

// AsSimpleAssignment decomposes an assignment node whose target is a single
// plain name or attribute. Tuple targets, subscript targets and
// annotation-only statements do not match.
func AsSimpleAssignment(n *sitter.Node, source []byte) (Assignment, bool) {
	if n == nil || n.Type() != KindAssignment {
		return Assignment{}, false
	}
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	if left == nil || right == nil {
		return Assignment{}, false
	}
	switch left.Type() {
	case KindIdentifier:
		return Assignment{Target: left, TargetName: left.Content(source), Value: right}, true
	case KindAttribute:
		attr := left.ChildByFieldName("attribute")
		if attr == nil {
			return Assignment{}, false
		}
		return Assignment{Target: left, TargetName: attr.Content(source), TargetIsAttribute: true, Value: right}, true
	}
	return Assignment{}, false
}

// StatementAssignment unwraps an expression statement down to the
// assignment it carries, if that is all it carries.
func StatementAssignment(stmt *sitter.Node) (*sitter.Node, bool) {
	if stmt == nil || stmt.Type() != KindExpressionStatement {
		return nil, false
	}
	if stmt.NamedChildCount() != 1 {
		return nil, false
	}
	child := stmt.NamedChild(0)
	if child.Type() != KindAssignment {
		return nil, false
	}
	return child, true
}

// IndexedAccess matches a subscript of a plain named variable by a literal
// non-negative integer, returning the variable name and index.
func IndexedAccess(n *sitter.Node, source []byte) (string, int, bool) {
	if n == nil || n.Type() != KindSubscript {
		return "", 0, false
	}
	value := n.ChildByFieldName("value")
	index := n.ChildByFieldName("subscript")
	name, ok := Identifier(value, source)
	if !ok {
		return "", 0, false
	}
	idx, ok := IntValue(index, source)
	if !ok || idx < 0 {
		return "", 0, false
	}
	return name, idx, true
}

// SubscriptIndex returns the index expression of a subscript node.
func SubscriptIndex(n *sitter.Node) *sitter.Node {
	if n == nil || n.Type() != KindSubscript {
		return nil
	}
	return n.ChildByFieldName("subscript")
}

// SameNode reports whether two node handles address the same source span
// and kind. Node handles from repeated field lookups are not pointer
// comparable, so identity goes through the span.
func SameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}
