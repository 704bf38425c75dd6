package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxhq/patternlint/core"
	"github.com/oxhq/patternlint/runner"
)

// selftestCase pairs a snippet that must trigger a rule with one that must
// stay clean.
type selftestCase struct {
	rule string
	bad  string
	good string
}

var selftestCases = []selftestCase{
	{
		rule: "EFP105",
		bad: `item = ("Alice", 25, "Engineer")
name = item[0]
age = item[1]
job = item[2]
`,
		good: `item = ("Alice", 25, "Engineer")
name, age, job = item
`,
	},
	{
		rule: "EFP213",
		bad: `items = [
    "first_item" "second_item",
    "third_item",
]
`,
		good: `items = [
    "first_item" + "second_item",
    "third_item",
]
`,
	},
	{
		rule: "EFP318",
		bad: `names = ["Alice", "Bob", "Charlie"]
ages = [25, 30, 35]
for i in range(len(names)):
    name = names[i]
    age = ages[i]
    print(name, age)
`,
		good: `names = ["Alice", "Bob", "Charlie"]
ages = [25, 30, 35]
for name, age in zip(names, ages):
    print(name, age)
`,
	},
	{
		rule: "EFP320",
		bad: `def find_admin(users):
    for user in users:
        if user.is_admin:
            break
    if user.is_admin:
        return user
`,
		good: `def find_admin(users):
    found = None
    for user in users:
        if user.is_admin:
            found = user
            break
    if found is not None:
        return found
`,
	},
	{
		rule: "EFP321",
		bad: `def normalize(numbers):
    total = sum(numbers)
    result = []
    for value in numbers:
        result.append(100 * value / total)
    return result
`,
		good: `def normalize(numbers):
    numbers = list(numbers)
    total = sum(numbers)
    result = []
    for value in numbers:
        result.append(100 * value / total)
    return result
`,
	},
	{
		rule: "EFP426",
		bad: `try:
    value = config[key]
except KeyError:
    value = "default"
`,
		good: `value = config.get(key, "default")
`,
	},
}

func newSelftestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Verify every rule fires on its known-bad snippet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := runner.New(runner.Options{Logger: log})

			failures := 0
			for _, tc := range selftestCases {
				if err := runSelftestCase(cmd, r, tc); err != nil {
					failures++
					fmt.Printf("FAIL %s: %v\n", tc.rule, err)
					continue
				}
				fmt.Printf("ok   %s\n", tc.rule)
			}

			if failures > 0 {
				return fmt.Errorf("%d of %d rules failed self test", failures, len(selftestCases))
			}
			log.Info("self test passed", "rules", len(selftestCases))
			return nil
		},
	}
}

func runSelftestCase(cmd *cobra.Command, r *runner.Runner, tc selftestCase) error {
	findings, err := r.CheckSource(cmd.Context(), []byte(tc.bad), "selftest_bad.py")
	if err != nil {
		return err
	}
	if !hasRule(findings, tc.rule) {
		return fmt.Errorf("expected a finding on the bad snippet, got %d findings", len(findings))
	}

	findings, err = r.CheckSource(cmd.Context(), []byte(tc.good), "selftest_good.py")
	if err != nil {
		return err
	}
	if hasRule(findings, tc.rule) {
		return fmt.Errorf("unexpected finding on the good snippet")
	}
	return nil
}

func hasRule(findings []core.Finding, rule string) bool {
	for _, f := range findings {
		if f.RuleID == rule {
			return true
		}
	}
	return false
}
