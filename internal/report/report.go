// Package report renders split and run results for human and machine
// consumption. The text format is meant for terminals, the JSON format for
// downstream tooling such as CI annotators.
package report

import (
	"time"

	"github.com/mysqlscript/mysqlrun/internal/runner"
	"github.com/mysqlscript/mysqlrun/internal/splitter"
)

// RunReport is the serializable view of a batch execution.
type RunReport struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Summary     SummaryReport  `json:"summary"`
	Scripts     []ScriptReport `json:"scripts"`
}

// SummaryReport aggregates counts across all executed scripts.
type SummaryReport struct {
	TotalScripts     int    `json:"total_scripts"`
	PassedScripts    int    `json:"passed_scripts"`
	FailedScripts    int    `json:"failed_scripts"`
	TimedOutScripts  int    `json:"timed_out_scripts"`
	TotalStatements  int    `json:"total_statements"`
	FailedStatements int    `json:"failed_statements"`
	TotalDuration    string `json:"total_duration"`
}

// ScriptReport describes the outcome of a single script.
type ScriptReport struct {
	Path       string            `json:"path"`
	Type       string            `json:"type"`
	Status     string            `json:"status"`
	Duration   string            `json:"duration"`
	Statements []StatementReport `json:"statements,omitempty"`
	Directives []DirectiveReport `json:"directives,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// StatementReport describes a single executed statement.
type StatementReport struct {
	Line         int    `json:"line"`
	Type         string `json:"type"`
	Preview      string `json:"preview"`
	RowsAffected int64  `json:"rows_affected"`
	Duration     string `json:"duration"`
	Error        string `json:"error,omitempty"`
}

// DirectiveReport describes a DELIMITER directive consumed while splitting.
type DirectiveReport struct {
	Line      int    `json:"line"`
	Delimiter string `json:"delimiter"`
}

// SplitReport is the serializable view of a split-only invocation.
type SplitReport struct {
	Path       string            `json:"path"`
	Statements []SplitStatement  `json:"statements"`
	Directives []DirectiveReport `json:"directives,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// SplitStatement describes one statement found by the splitter.
type SplitStatement struct {
	Index       int    `json:"index"`
	StartLine   int    `json:"start_line"`
	EndLine     int    `json:"end_line"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
	Type        string `json:"type"`
	Text        string `json:"text"`
}

// previewLimit caps the statement text echoed into run reports.
const previewLimit = 80

// NewRunReport builds a RunReport from executed script runs.
func NewRunReport(runs []*runner.ScriptRun, summary *runner.RunSummary) *RunReport {
	report := &RunReport{
		GeneratedAt: time.Now(),
		Summary: SummaryReport{
			TotalScripts:     summary.TotalScripts,
			PassedScripts:    summary.PassedScripts,
			FailedScripts:    summary.FailedScripts,
			TimedOutScripts:  summary.TimedOutScripts,
			TotalStatements:  summary.TotalStatements,
			FailedStatements: summary.FailedStatements,
			TotalDuration:    summary.TotalDuration.Round(time.Millisecond).String(),
		},
		Scripts: make([]ScriptReport, 0, len(runs)),
	}

	for _, run := range runs {
		script := ScriptReport{
			Path:     run.Script.RelativePath,
			Type:     run.Script.Type.String(),
			Status:   run.Status.String(),
			Duration: run.Duration().Round(time.Millisecond).String(),
		}
		if run.Error != nil {
			script.Error = run.Error.Error()
		}
		for _, stmt := range run.Statements {
			entry := StatementReport{
				Line:         stmt.Span.StartLine,
				Type:         stmt.Type.String(),
				Preview:      preview(stmt.Span.Text),
				RowsAffected: stmt.RowsAffected,
				Duration:     stmt.Duration.Round(time.Millisecond).String(),
			}
			if stmt.Err != nil {
				entry.Error = stmt.Err.Error()
			}
			script.Statements = append(script.Statements, entry)
		}
		script.Directives = directiveReports(run.Directives)
		report.Scripts = append(report.Scripts, script)
	}

	return report
}

// NewSplitReport builds a SplitReport from splitter output. A non-nil
// splitErr marks the report as partial; the spans collected before the
// error are still included.
func NewSplitReport(path string, spans []splitter.StatementSpan, directives []splitter.Directive, splitErr error) *SplitReport {
	report := &SplitReport{
		Path:       path,
		Statements: make([]SplitStatement, 0, len(spans)),
		Directives: directiveReports(directives),
	}
	if splitErr != nil {
		report.Error = splitErr.Error()
	}
	for i, span := range spans {
		report.Statements = append(report.Statements, SplitStatement{
			Index:       i + 1,
			StartLine:   span.StartLine,
			EndLine:     span.EndLine,
			StartOffset: span.StartOffset,
			EndOffset:   span.EndOffset,
			Type:        splitter.Classify(span.Text).String(),
			Text:        span.Text,
		})
	}
	return report
}

func directiveReports(directives []splitter.Directive) []DirectiveReport {
	if len(directives) == 0 {
		return nil
	}
	reports := make([]DirectiveReport, 0, len(directives))
	for _, d := range directives {
		reports = append(reports, DirectiveReport{Line: d.Line, Delimiter: d.Delimiter})
	}
	return reports
}

func preview(text string) string {
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' || text[i] == '\r' {
			return text[:i] + " ..."
		}
	}
	if len(text) > previewLimit {
		return text[:previewLimit] + " ..."
	}
	return text
}
