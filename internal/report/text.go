package report

import (
	"fmt"
	"io"
	"strings"
)

// TextReporter formats reports for terminal output
type TextReporter struct{}

// NewTextReporter creates a new text reporter
func NewTextReporter() *TextReporter {
	return &TextReporter{}
}

// FormatRun renders a run report as a per-script result list followed by a
// summary line.
func (r *TextReporter) FormatRun(report *RunReport, writer io.Writer) error {
	for _, script := range report.Scripts {
		status := strings.ToUpper(script.Status)
		if _, err := fmt.Fprintf(writer, "%-7s %s  (%d statements, %s)\n",
			status, script.Path, len(script.Statements), script.Duration); err != nil {
			return err
		}
		for _, stmt := range script.Statements {
			if stmt.Error == "" {
				continue
			}
			if _, err := fmt.Fprintf(writer, "        line %d: %s\n            %s\n",
				stmt.Line, stmt.Preview, stmt.Error); err != nil {
				return err
			}
		}
		if script.Error != "" && len(script.Statements) == 0 {
			if _, err := fmt.Fprintf(writer, "        %s\n", script.Error); err != nil {
				return err
			}
		}
	}

	s := report.Summary
	_, err := fmt.Fprintf(writer, "\n%d scripts: %d passed, %d failed, %d timed out (%d statements, %s)\n",
		s.TotalScripts, s.PassedScripts, s.FailedScripts, s.TimedOutScripts,
		s.TotalStatements, s.TotalDuration)
	return err
}

// FormatSplit renders each statement with its location, separated by a
// rule so multi-line statements stay readable.
func (r *TextReporter) FormatSplit(report *SplitReport, writer io.Writer) error {
	for _, stmt := range report.Statements {
		location := fmt.Sprintf("line %d", stmt.StartLine)
		if stmt.EndLine > stmt.StartLine {
			location = fmt.Sprintf("lines %d-%d", stmt.StartLine, stmt.EndLine)
		}
		if _, err := fmt.Fprintf(writer, "-- statement %d (%s, %s)\n%s\n",
			stmt.Index, location, stmt.Type, stmt.Text); err != nil {
			return err
		}
	}
	for _, d := range report.Directives {
		if _, err := fmt.Fprintf(writer, "-- delimiter changed to %q at line %d\n",
			d.Delimiter, d.Line); err != nil {
			return err
		}
	}
	if report.Error != "" {
		if _, err := fmt.Fprintf(writer, "-- error: %s\n", report.Error); err != nil {
			return err
		}
	}
	return nil
}

// Name returns the name of this reporter
func (r *TextReporter) Name() string {
	return "text"
}
