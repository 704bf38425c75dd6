package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxhq/patternlint/rules"
)

func TestSequentialIndexingFires(t *testing.T) {
	findings := analyze(t, `item = ("Alice", 25, "Engineer")
name = item[0]
age = item[1]
job = item[2]
`)
	assert.Equal(t, 3, countCode(findings, rules.EFP105))
}

func TestSequentialIndexingTwoElements(t *testing.T) {
	findings := analyze(t, `pair = (1, 2)
x = pair[0]
y = pair[1]
`)
	assert.Equal(t, 2, countCode(findings, rules.EFP105))
}

func TestSequentialIndexingRunAnywhere(t *testing.T) {
	// 5 does not extend the run, but 0 and 1 already form one.
	findings := analyze(t, `a = data[0]
b = data[1]
c = data[5]
`)
	assert.True(t, hasCode(findings, rules.EFP105))
}

func TestNonConsecutiveIndicesIgnored(t *testing.T) {
	findings := analyze(t, `a = data[0]
b = data[2]
c = data[4]
`)
	assert.False(t, hasCode(findings, rules.EFP105))
}

func TestDifferentContainersIgnored(t *testing.T) {
	findings := analyze(t, `a = xs[0]
b = ys[1]
`)
	assert.False(t, hasCode(findings, rules.EFP105))
}

func TestSingleIndexIgnored(t *testing.T) {
	findings := analyze(t, `a = data[0]
print(a)
`)
	assert.False(t, hasCode(findings, rules.EFP105))
}

func TestNegativeAndNonLiteralIndicesIgnored(t *testing.T) {
	findings := analyze(t, `a = data[-1]
b = data[0]
c = data[i]
`)
	assert.False(t, hasCode(findings, rules.EFP105))
}

func TestUnpackingNotFlagged(t *testing.T) {
	findings := analyze(t, `item = ("Alice", 25, "Engineer")
name, age, job = item
`)
	assert.False(t, hasCode(findings, rules.EFP105))
}

func TestIntermediateIndexPatternSuppressed(t *testing.T) {
	// The assigned names only feed a second subscript lookup; this is the
	// index-holder idiom, not a botched unpacking.
	findings := analyze(t, `i = order[0]
j = order[1]
first = items[i]
second = items[j]
`)
	assert.False(t, hasCode(findings, rules.EFP105))
}

func TestMixedUsageNotSuppressed(t *testing.T) {
	findings := analyze(t, `i = order[0]
j = order[1]
first = items[i]
print(j)
`)
	assert.True(t, hasCode(findings, rules.EFP105))
}

func TestAttributeTargetsFire(t *testing.T) {
	findings := analyze(t, `class User:
    def load(self, row):
        self.name = row[0]
        self.age = row[1]
`)
	assert.Equal(t, 2, countCode(findings, rules.EFP105))
}

func TestIndexingInsideFunctionBlock(t *testing.T) {
	findings := analyze(t, `def split(item):
    head = item[0]
    tail = item[1]
    return head, tail
`)
	assert.True(t, hasCode(findings, rules.EFP105))
}
