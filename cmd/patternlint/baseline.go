package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"gorm.io/datatypes"

	"github.com/oxhq/patternlint/core"
	"github.com/oxhq/patternlint/db"
	"github.com/oxhq/patternlint/engine"
	"github.com/oxhq/patternlint/models"
)

func newBaselineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Record and compare finding baselines",
		Long: `A baseline captures the findings of one run so later runs can be judged
by what they add rather than by the historical backlog.`,
	}
	cmd.AddCommand(newBaselineSaveCmd())
	cmd.AddCommand(newBaselineDiffCmd())
	return cmd
}

func newBaselineSaveCmd() *cobra.Command {
	opts := &checkOptions{}
	var dsn string

	cmd := &cobra.Command{
		Use:   "save [path]",
		Short: "Check a tree and record the findings as its baseline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			rootKey, err := filepath.Abs(root)
			if err != nil {
				return err
			}

			summary, _, err := runCheck(cmd, root, opts)
			if err != nil {
				return err
			}

			store, err := db.Open(baselineDSN(dsn), false)
			if err != nil {
				return err
			}
			defer store.Close()

			run := buildRun(rootKey, summary)
			if err := store.SaveBaseline(run); err != nil {
				return err
			}

			log.Info("baseline saved",
				"root", rootKey,
				"run_id", run.ID,
				"findings", run.TotalFindings,
			)
			return nil
		},
	}

	addScanFlags(cmd, opts)
	cmd.Flags().StringVar(&dsn, "db", "", "baseline database DSN (overrides config)")
	return cmd
}

func newBaselineDiffCmd() *cobra.Command {
	opts := &checkOptions{}
	var dsn string

	cmd := &cobra.Command{
		Use:   "diff [path]",
		Short: "Check a tree and diff the findings against its baseline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			rootKey, err := filepath.Abs(root)
			if err != nil {
				return err
			}

			summary, _, err := runCheck(cmd, root, opts)
			if err != nil {
				return err
			}

			store, err := db.Open(baselineDSN(dsn), false)
			if err != nil {
				return err
			}
			defer store.Close()

			baseline, err := store.Baseline(rootKey)
			if err != nil {
				return err
			}

			// Lexical order on both sides keeps the diff free of
			// pure reordering noise.
			before := baselineLines(baseline)
			after := currentLines(summary)
			sort.Strings(before)
			sort.Strings(after)

			diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        before,
				B:        after,
				FromFile: fmt.Sprintf("baseline (run %d)", baseline.ID),
				ToFile:   "current",
				Context:  3,
			})
			if err != nil {
				return err
			}
			if diff == "" {
				log.Info("no changes against baseline", "root", rootKey)
				return nil
			}
			fmt.Print(diff)

			if introduced := countNew(before, after); introduced > 0 {
				log.Warn("new findings against baseline", "count", introduced)
				return errFindingsDetected
			}
			return nil
		},
	}

	addScanFlags(cmd, opts)
	cmd.Flags().StringVar(&dsn, "db", "", "baseline database DSN (overrides config)")
	return cmd
}

// addScanFlags registers the scan-shaping flags shared with check.
func addScanFlags(cmd *cobra.Command, opts *checkOptions) {
	cmd.Flags().StringSliceVar(&opts.include, "include", nil, "glob patterns of files to check")
	cmd.Flags().StringSliceVar(&opts.exclude, "exclude", nil, "glob patterns of files to skip")
	cmd.Flags().StringSliceVar(&opts.disable, "disable", nil, "rule codes to disable, e.g. EFP320")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "maximum directory depth (0 = unlimited)")
	cmd.Flags().IntVar(&opts.maxFiles, "max-files", 0, "maximum number of files to check (0 = unlimited)")
	cmd.Flags().Int64Var(&opts.maxFileBytes, "max-file-bytes", 0, "skip files larger than this (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.followSymlinks, "follow-symlinks", false, "follow symlinked directories")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "analysis workers (0 = NumCPU)")
}

func baselineDSN(override string) string {
	if override != "" {
		return override
	}
	return appConfig.Baseline.DSN
}

func buildRun(rootKey string, summary *core.RunSummary) *models.Run {
	failed := 0
	for _, report := range summary.Reports {
		if report.Error != nil {
			failed++
		}
	}

	meta, _ := json.Marshal(map[string]any{
		"duration_ms":         summary.DurationMillis,
		"files_with_findings": summary.FilesWithFindings,
	})

	return &models.Run{
		Root:          rootKey,
		EngineName:    engine.Name,
		EngineVersion: engine.Version,
		FilesScanned:  summary.FilesScanned,
		FilesFailed:   failed,
		TotalFindings: summary.TotalFindings,
		Metadata:      datatypes.JSON(meta),
		Findings:      db.Records(allFindings(summary)),
	}
}

func baselineLines(run *models.Run) []string {
	lines := make([]string, 0, len(run.Findings))
	for _, f := range run.Findings {
		lines = append(lines, fmt.Sprintf("%s:%d:%d: %s %s\n", f.File, f.Line, f.Column, f.RuleID, f.Message))
	}
	return lines
}

func currentLines(summary *core.RunSummary) []string {
	var lines []string
	for _, report := range summary.Reports {
		for _, f := range report.Findings {
			lines = append(lines, f.String()+"\n")
		}
	}
	return lines
}

// countNew counts lines present now that the baseline lacks.
func countNew(before, after []string) int {
	known := make(map[string]int, len(before))
	for _, line := range before {
		known[strings.TrimSuffix(line, "\n")]++
	}
	introduced := 0
	for _, line := range after {
		key := strings.TrimSuffix(line, "\n")
		if known[key] > 0 {
			known[key]--
			continue
		}
		introduced++
	}
	return introduced
}
