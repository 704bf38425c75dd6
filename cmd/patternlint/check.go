package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxhq/patternlint/core"
	"github.com/oxhq/patternlint/engine"
	"github.com/oxhq/patternlint/runner"
	"github.com/oxhq/patternlint/sarif"
)

type checkOptions struct {
	format         string
	include        []string
	exclude        []string
	disable        []string
	maxDepth       int
	maxFiles       int
	maxFileBytes   int64
	followSymlinks bool
	workers        int
}

func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Check a Python source tree and report findings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			summary, r, err := runCheck(cmd, root, opts)
			if err != nil {
				return err
			}

			if err := writeSummary(summary, r, opts.format); err != nil {
				return err
			}

			log.Info("check complete",
				"files", summary.FilesScanned,
				"findings", summary.TotalFindings,
				"duration_ms", summary.DurationMillis,
			)
			if summary.TotalFindings > 0 {
				return errFindingsDetected
			}
			return nil
		},
	}

	addScanFlags(cmd, opts)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format: text, json or sarif")

	return cmd
}

// runCheck merges config with flags and runs a scan rooted at root. Flags
// that were explicitly set override the configuration file.
func runCheck(cmd *cobra.Command, root string, opts *checkOptions) (*core.RunSummary, *runner.Runner, error) {
	scan := appConfig.Scan
	if cmd.Flags().Changed("include") {
		scan.Include = opts.include
	}
	if cmd.Flags().Changed("exclude") {
		scan.Exclude = opts.exclude
	}
	if cmd.Flags().Changed("max-depth") {
		scan.MaxDepth = opts.maxDepth
	}
	if cmd.Flags().Changed("max-files") {
		scan.MaxFiles = opts.maxFiles
	}
	if cmd.Flags().Changed("max-file-bytes") {
		scan.MaxFileBytes = opts.maxFileBytes
	}
	if cmd.Flags().Changed("follow-symlinks") {
		scan.FollowSymlinks = opts.followSymlinks
	}

	disabled := appConfig.Rules.Disabled
	if cmd.Flags().Changed("disable") {
		disabled = opts.disable
	}

	r := runner.New(runner.Options{
		Logger:   log,
		Disabled: disabled,
		Workers:  opts.workers,
	})

	summary, err := r.Run(cmd.Context(), core.FileScope{
		Path:           root,
		Include:        scan.Include,
		Exclude:        scan.Exclude,
		MaxDepth:       scan.MaxDepth,
		MaxFiles:       scan.MaxFiles,
		MaxBytes:       scan.MaxFileBytes,
		FollowSymlinks: scan.FollowSymlinks,
	})
	if err != nil {
		return nil, nil, err
	}
	return summary, r, nil
}

func writeSummary(summary *core.RunSummary, r *runner.Runner, format string) error {
	switch format {
	case "text":
		for _, report := range summary.Reports {
			for _, f := range report.Findings {
				fmt.Println(f.String())
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	case "sarif":
		return sarif.Write(os.Stdout, engine.Name, engine.Version, r.Catalog(), allFindings(summary))
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func allFindings(summary *core.RunSummary) []core.Finding {
	var findings []core.Finding
	for _, report := range summary.Reports {
		findings = append(findings, report.Findings...)
	}
	return findings
}
