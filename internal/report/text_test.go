package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mysqlscript/mysqlrun/internal/splitter"
)

func TestTextReporter_FormatRun(t *testing.T) {
	runs, summary := sampleRuns()
	report := NewRunReport(runs, summary)

	var buf bytes.Buffer
	if err := NewTextReporter().FormatRun(report, &buf); err != nil {
		t.Fatalf("FormatRun failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "users_schema.sql") {
		t.Errorf("output missing script path:\n%s", out)
	}
	if !strings.Contains(out, "PASSED") {
		t.Errorf("output missing script status:\n%s", out)
	}
	if !strings.Contains(out, "duplicate entry") {
		t.Errorf("output missing statement error:\n%s", out)
	}
	if !strings.Contains(out, "1 scripts: 1 passed, 0 failed, 0 timed out") {
		t.Errorf("output missing summary line:\n%s", out)
	}
}

func TestTextReporter_FormatSplit(t *testing.T) {
	spans := []splitter.StatementSpan{
		{Text: "SELECT 1", StartLine: 1, EndLine: 1},
		{Text: "CREATE PROCEDURE p()\nBEGIN\n  SELECT 2;\nEND", StartLine: 3, EndLine: 6},
	}
	directives := []splitter.Directive{{Delimiter: "$$", Line: 2}}
	report := NewSplitReport("demo.sql", spans, directives, nil)

	var buf bytes.Buffer
	if err := NewTextReporter().FormatSplit(report, &buf); err != nil {
		t.Fatalf("FormatSplit failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "-- statement 1 (line 1, dml)") {
		t.Errorf("output missing single-line statement header:\n%s", out)
	}
	if !strings.Contains(out, "-- statement 2 (lines 3-6, routine)") {
		t.Errorf("output missing multi-line statement header:\n%s", out)
	}
	if !strings.Contains(out, `-- delimiter changed to "$$" at line 2`) {
		t.Errorf("output missing directive note:\n%s", out)
	}
}

func TestTextReporter_FormatSplit_Error(t *testing.T) {
	splitErr := &splitter.UnterminatedCommentError{Offset: 5, Line: 1, Column: 6}
	report := NewSplitReport("bad.sql", nil, nil, splitErr)

	var buf bytes.Buffer
	if err := NewTextReporter().FormatSplit(report, &buf); err != nil {
		t.Fatalf("FormatSplit failed: %v", err)
	}
	if !strings.Contains(buf.String(), "-- error:") {
		t.Errorf("output missing error line:\n%s", buf.String())
	}
}

func TestTextReporter_Name(t *testing.T) {
	if name := NewTextReporter().Name(); name != "text" {
		t.Errorf("Name = %q, want text", name)
	}
}
