package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxhq/patternlint/rules"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the rule catalog with book references",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			catalog := rules.DefaultCatalog()
			for _, code := range catalog.Codes() {
				info, _ := catalog.Info(code)
				fmt.Printf("%s  %s\n", code, info.Summary)
				fmt.Printf("        fix: %s\n", info.Suggestion)
				fmt.Printf("        see: %s\n", info.Ref)
			}
		},
	}
}
