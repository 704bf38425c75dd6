package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxhq/patternlint/engine"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the patternlint version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", engine.Name, engine.Version)
		},
	}
}
