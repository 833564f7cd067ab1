package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONReporter formats reports as indented JSON
type JSONReporter struct{}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{}
}

// FormatRun formats a run report as JSON and writes to the writer
func (r *JSONReporter) FormatRun(report *RunReport, writer io.Writer) error {
	return r.write(report, writer)
}

// FormatSplit formats a split report as JSON and writes to the writer
func (r *JSONReporter) FormatSplit(report *SplitReport, writer io.Writer) error {
	return r.write(report, writer)
}

func (r *JSONReporter) write(v interface{}, writer io.Writer) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report to JSON: %w", err)
	}

	if _, err = writer.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}

	// Add newline
	_, err = writer.Write([]byte("\n"))
	return err
}

// Name returns the name of this reporter
func (r *JSONReporter) Name() string {
	return "json"
}
