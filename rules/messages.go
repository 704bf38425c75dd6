package rules

import (
	"fmt"
	"sort"
)

// BookReference points at the section of "Effective Python" a rule teaches.
type BookReference struct {
	Book    string
	Edition string
	Chapter string
	Page    int
	Item    string
}

func (r BookReference) String() string {
	return fmt.Sprintf("'%s' (%s), %s, %s, p.%d", r.Book, r.Edition, r.Item, r.Chapter, r.Page)
}

// RuleInfo is the human-readable side of one rule.
type RuleInfo struct {
	Summary    string
	Suggestion string
	Ref        BookReference
}

// Catalog is an immutable rule-ID → message mapping. It is built once at
// engine construction and shared read-only; engine instances never mutate
// it, so independent engines cannot contaminate each other.
type Catalog struct {
	rules map[string]RuleInfo
}

// NewCatalog copies the given mapping into a catalog.
func NewCatalog(infos map[string]RuleInfo) Catalog {
	rules := make(map[string]RuleInfo, len(infos))
	for id, info := range infos {
		rules[id] = info
	}
	return Catalog{rules: rules}
}

// DefaultCatalog returns the Tier 1 Effective Python catalog.
func DefaultCatalog() Catalog {
	ep := func(chapter string, page int, item string) BookReference {
		return BookReference{
			Book:    "Effective Python",
			Edition: "3rd Edition",
			Chapter: chapter,
			Page:    page,
			Item:    item,
		}
	}
	return NewCatalog(map[string]RuleInfo{
		EFP105: {
			Summary:    "Sequential indexing into the same sequence",
			Suggestion: "use multiple-assignment unpacking",
			Ref:        ep("Chapter 1: Pythonic Thinking", 15, "Item 5: Prefer Multiple-Assignment Unpacking over Indexing"),
		},
		EFP213: {
			Summary:    "Implicit string concatenation inside a collection literal",
			Suggestion: "add the missing comma or concatenate explicitly",
			Ref:        ep("Chapter 2: Lists and Dictionaries", 35, "Item 13: Prefer Explicit String Concatenation"),
		},
		EFP318: {
			Summary:    "Manual parallel iteration with range(len())",
			Suggestion: "iterate with zip() instead of a shared index",
			Ref:        ep("Chapter 3: Functions", 58, "Item 18: Use zip to Process Iterators in Parallel"),
		},
		EFP320: {
			Summary:    "Loop variable used after the loop ends",
			Suggestion: "assign a dedicated variable inside the loop",
			Ref:        ep("Chapter 3: Functions", 63, "Item 20: Never Use for Loop Variables After the Loop Ends"),
		},
		EFP321: {
			Summary:    "Function iterates over an argument more than once",
			Suggestion: "materialize the argument with list() before reuse",
			Ref:        ep("Chapter 3: Functions", 65, "Item 21: Be Defensive when Iterating over Arguments"),
		},
		EFP426: {
			Summary:    "try/except KeyError around a single dictionary lookup",
			Suggestion: "use dict.get with a default",
			Ref:        ep("Chapter 4: Comprehensions and Generators", 85, "Item 26: Prefer get over in and KeyError to Handle Missing Dictionary Keys"),
		},
	})
}

// Message renders the full educational message for a rule identifier. The
// reporting path stays total: unknown identifiers yield a placeholder, not
// an error.
func (c Catalog) Message(id string) string {
	info, ok := c.rules[id]
	if !ok {
		return fmt.Sprintf("unknown rule code: %s", id)
	}
	return fmt.Sprintf("%s, %s → %s", info.Summary, info.Suggestion, info.Ref)
}

// Info returns the raw catalog entry for a rule identifier.
func (c Catalog) Info(id string) (RuleInfo, bool) {
	info, ok := c.rules[id]
	return info, ok
}

// Codes lists all registered identifiers in sorted order.
func (c Catalog) Codes() []string {
	codes := make([]string, 0, len(c.rules))
	for id := range c.rules {
		codes = append(codes, id)
	}
	sort.Strings(codes)
	return codes
}

// Len returns the number of registered rules.
func (c Catalog) Len() int {
	return len(c.rules)
}
