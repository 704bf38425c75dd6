package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindingText(t *testing.T) {
	f := Finding{
		File:    "app.py",
		Line:    12,
		Column:  4,
		RuleID:  "EFP318",
		Message: "Manual parallel iteration",
	}

	assert.Equal(t, "EFP318 Manual parallel iteration", f.Text())
	assert.Equal(t, "app.py:12:4: EFP318 Manual parallel iteration", f.String())
}
