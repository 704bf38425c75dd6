package core

import "fmt"

// Finding is one reported rule violation. Immutable after creation; the
// engine collects findings in discovery order, which tracks source order
// for a single depth-first pass.
type Finding struct {
	File     string `json:"file,omitempty"`
	Line     int    `json:"line"`   // 1-based
	Column   int    `json:"column"` // 0-based, flake8 convention
	RuleID   string `json:"rule_id"`
	Message  string `json:"message"`
	Reporter string `json:"reporter"`
}

// Text returns the "<rule_identifier> <message>" form consumed by linting
// hosts.
func (f Finding) Text() string {
	return f.RuleID + " " + f.Message
}

func (f Finding) String() string {
	return fmt.Sprintf("%s:%d:%d: %s %s", f.File, f.Line, f.Column, f.RuleID, f.Message)
}

// FileScope defines which files a batch check processes.
type FileScope struct {
	Path           string   `json:"path"`                // root path to scan
	Include        []string `json:"include,omitempty"`   // file patterns to include (*.py, **/*.py)
	Exclude        []string `json:"exclude,omitempty"`   // file patterns to exclude
	MaxDepth       int      `json:"max_depth,omitempty"` // max directory depth (0 = unlimited)
	MaxFiles       int      `json:"max_files,omitempty"` // max files to process (0 = unlimited)
	MaxBytes       int64    `json:"max_bytes,omitempty"` // max file size to read (0 = unlimited)
	FollowSymlinks bool     `json:"follow_symlinks"`
}

// FileReport is the outcome of checking a single file.
type FileReport struct {
	Path     string    `json:"path"`
	Findings []Finding `json:"findings"`
	Error    error     `json:"-"`
}

// RunSummary aggregates a batch check across files.
type RunSummary struct {
	FilesScanned      int          `json:"files_scanned"`
	FilesWithFindings int          `json:"files_with_findings"`
	TotalFindings     int          `json:"total_findings"`
	DurationMillis    int64        `json:"duration_ms"`
	Reports           []FileReport `json:"reports"`
}
