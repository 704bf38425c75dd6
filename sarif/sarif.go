// Package sarif renders analysis findings as a SARIF 2.1.0 report.
package sarif

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/oxhq/patternlint/core"
	"github.com/oxhq/patternlint/rules"
)

const informationURI = "https://github.com/oxhq/patternlint"

// Report builds a single-run SARIF report from findings. Every rule in the
// catalog is declared on the driver so consumers see the full rule set,
// including rules that produced no results.
func Report(toolName, toolVersion string, catalog rules.Catalog, findings []core.Finding) (*sarif.Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, informationURI)
	run.Tool.Driver.SemanticVersion = &toolVersion

	for _, code := range catalog.Codes() {
		info, _ := catalog.Info(code)
		run.AddRule(code).
			WithDescription(info.Summary).
			WithHelp(sarif.NewMultiformatMessageString(info.Ref.String())).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{
				Level: "warning",
			})
	}

	for _, f := range findings {
		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(f.File)).
				WithRegion(sarif.NewRegion().
					WithStartLine(f.Line).
					WithStartColumn(f.Column + 1)),
		)

		result := sarif.NewRuleResult(f.RuleID).
			WithMessage(sarif.NewTextMessage(f.Message)).
			WithLevel("warning").
			WithLocations([]*sarif.Location{location})
		run.AddResult(result)
	}

	report.AddRun(run)
	return report, nil
}

// Write renders the report for findings to w.
func Write(w io.Writer, toolName, toolVersion string, catalog rules.Catalog, findings []core.Finding) error {
	report, err := Report(toolName, toolVersion, catalog, findings)
	if err != nil {
		return err
	}
	return report.PrettyWrite(w)
}
