// Command patternlint checks Python source trees for Effective Python
// idiom violations.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/oxhq/patternlint/config"
	"github.com/oxhq/patternlint/engine"
	"github.com/oxhq/patternlint/logger"
)

// errFindingsDetected makes the process exit nonzero without printing a
// redundant error message; the findings themselves are the output.
var errFindingsDetected = errors.New("findings detected")

var (
	cfgFile   string
	appConfig *config.Config
	log       hclog.Logger

	rootCmd = &cobra.Command{
		Use:                   "patternlint [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "Patternlint flags Effective Python idiom violations in Python code.",
		Long: `Patternlint parses Python sources and checks them against a curated set of
rules from "Effective Python" (3rd Edition), reporting each violation with
the book section that explains the preferred idiom.`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is patternlint.yaml)")
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newRulesCmd())
	rootCmd.AddCommand(newBaselineCmd())
	rootCmd.AddCommand(newSelftestCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func Execute() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errFindingsDetected) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func initConfig() {
	// Local .env files supply secrets like the libsql auth token.
	_ = godotenv.Load()

	var err error
	appConfig, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	log = logger.NewLogger(appConfig, engine.Name)
}
