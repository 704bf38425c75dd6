// Package runner orchestrates batch checks: file discovery, parsing and
// rule analysis across a worker pool.
package runner

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/oxhq/patternlint/core"
	"github.com/oxhq/patternlint/engine"
	"github.com/oxhq/patternlint/lang/python"
	"github.com/oxhq/patternlint/rules"
)

// Options configures a runner.
type Options struct {
	Logger hclog.Logger

	// Disabled lists rule codes excluded from checking.
	Disabled []string

	// Workers bounds analysis concurrency; zero means NumCPU.
	Workers int
}

// Runner checks file trees. Each worker goroutine owns its parser and
// engine, so runs share nothing mutable.
type Runner struct {
	logger  hclog.Logger
	ruleSet []rules.Rule
	catalog rules.Catalog
	workers int
}

// New builds a runner with the Tier 1 rules minus any disabled codes.
func New(opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	disabled := make(map[string]bool, len(opts.Disabled))
	for _, code := range opts.Disabled {
		disabled[code] = true
	}
	var ruleSet []rules.Rule
	for _, r := range rules.All() {
		if !disabled[r.ID] {
			ruleSet = append(ruleSet, r)
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Runner{
		logger:  logger,
		ruleSet: ruleSet,
		catalog: rules.DefaultCatalog(),
		workers: workers,
	}
}

// Catalog returns the message catalog the runner reports with.
func (r *Runner) Catalog() rules.Catalog {
	return r.catalog
}

// Run checks every file in scope and returns the aggregated summary with
// reports sorted by path. File paths in reports are relative to the scope
// root when possible.
func (r *Runner) Run(ctx context.Context, scope core.FileScope) (*core.RunSummary, error) {
	start := time.Now()

	walker := core.NewFileWalker()
	files, err := walker.Walk(ctx, scope)
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		reports []core.FileReport
		wg      sync.WaitGroup
	)

	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			parser := python.NewParser()
			eng := engine.New(engine.Options{
				Logger:  r.logger,
				Rules:   r.ruleSet,
				Catalog: r.catalog,
			})

			for result := range files {
				report := r.checkFile(ctx, parser, eng, scope.Path, result)
				if report == nil {
					continue
				}
				mu.Lock()
				reports = append(reports, *report)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	sort.Slice(reports, func(i, j int) bool { return reports[i].Path < reports[j].Path })

	summary := &core.RunSummary{
		FilesScanned:   len(reports),
		DurationMillis: time.Since(start).Milliseconds(),
		Reports:        reports,
	}
	for _, rep := range reports {
		if len(rep.Findings) > 0 {
			summary.FilesWithFindings++
			summary.TotalFindings += len(rep.Findings)
		}
	}
	return summary, nil
}

func (r *Runner) checkFile(ctx context.Context, parser *python.Parser, eng *engine.Engine, root string, result core.WalkResult) *core.FileReport {
	display := result.Path
	if rel, err := filepath.Rel(root, result.Path); err == nil {
		display = rel
	}

	if result.Error != nil {
		r.logger.Warn("skipping unreadable file", "path", display, "error", result.Error)
		return &core.FileReport{Path: display, Error: result.Error}
	}

	source, err := os.ReadFile(result.Path)
	if err != nil {
		r.logger.Warn("failed to read file", "path", display, "error", err)
		return &core.FileReport{Path: display, Error: err}
	}

	tree, err := parser.Parse(ctx, source)
	if err != nil {
		r.logger.Warn("failed to parse file", "path", display, "error", err)
		return &core.FileReport{Path: display, Error: err}
	}
	defer tree.Close()

	for _, msg := range python.SyntaxErrors(tree.RootNode()) {
		r.logger.Debug("parse error", "path", display, "detail", msg)
	}

	return &core.FileReport{
		Path:     display,
		Findings: eng.AnalyzeTree(tree, source, display),
	}
}

// CheckSource analyzes one in-memory source, used by the self test and by
// hosts embedding the checker.
func (r *Runner) CheckSource(ctx context.Context, source []byte, filename string) ([]core.Finding, error) {
	parser := python.NewParser()
	tree, err := parser.Parse(ctx, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	eng := engine.New(engine.Options{
		Logger:  r.logger,
		Rules:   r.ruleSet,
		Catalog: r.catalog,
	})
	return eng.AnalyzeTree(tree, source, filename), nil
}
