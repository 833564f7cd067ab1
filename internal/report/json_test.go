package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mysqlscript/mysqlrun/internal/discovery"
	"github.com/mysqlscript/mysqlrun/internal/runner"
	"github.com/mysqlscript/mysqlrun/internal/splitter"
)

func sampleRuns() ([]*runner.ScriptRun, *runner.RunSummary) {
	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	runs := []*runner.ScriptRun{
		{
			Script: &discovery.DiscoveredFile{
				Path:         "/work/users_schema.sql",
				RelativePath: "users_schema.sql",
				Type:         discovery.FileTypeSchema,
			},
			StartTime:  start,
			EndTime:    start.Add(120 * time.Millisecond),
			Status:     runner.RunPassed,
		},
	}
	runs[0].Statements = []runner.StatementResult{
		{
			Span:         splitter.StatementSpan{Text: "CREATE TABLE users (id INT)", StartLine: 1, EndLine: 1},
			Type:         splitter.StmtDDL,
			Duration:     40 * time.Millisecond,
			RowsAffected: 0,
		},
		{
			Span:         splitter.StatementSpan{Text: "INSERT INTO users VALUES (1)", StartLine: 2, EndLine: 2},
			Type:         splitter.StmtDML,
			Duration:     10 * time.Millisecond,
			RowsAffected: 1,
			Err:          errors.New("Error 1062: duplicate entry"),
		},
	}
	summary := runner.SummarizeRuns(runs)
	return runs, summary
}

func TestJSONReporter_FormatRun(t *testing.T) {
	runs, summary := sampleRuns()
	report := NewRunReport(runs, summary)

	var buf bytes.Buffer
	if err := NewJSONReporter().FormatRun(report, &buf); err != nil {
		t.Fatalf("FormatRun failed: %v", err)
	}

	var decoded RunReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}

	if decoded.Summary.TotalScripts != 1 {
		t.Errorf("TotalScripts = %d, want 1", decoded.Summary.TotalScripts)
	}
	if decoded.Summary.FailedStatements != 1 {
		t.Errorf("FailedStatements = %d, want 1", decoded.Summary.FailedStatements)
	}
	if len(decoded.Scripts) != 1 {
		t.Fatalf("Scripts count = %d, want 1", len(decoded.Scripts))
	}

	script := decoded.Scripts[0]
	if script.Path != "users_schema.sql" {
		t.Errorf("Path = %q, want users_schema.sql", script.Path)
	}
	if script.Type != "schema" {
		t.Errorf("script type = %q, want schema", script.Type)
	}
	if script.Status != "passed" {
		t.Errorf("script status = %q, want passed", script.Status)
	}
	if len(script.Statements) != 2 {
		t.Fatalf("Statements count = %d, want 2", len(script.Statements))
	}
	if script.Statements[0].Type != "ddl" {
		t.Errorf("first statement type = %q, want ddl", script.Statements[0].Type)
	}
	if script.Statements[1].Error == "" {
		t.Error("second statement is missing its error")
	}
}

func TestJSONReporter_FormatSplit(t *testing.T) {
	spans := []splitter.StatementSpan{
		{Text: "SELECT 1", StartOffset: 0, EndOffset: 8, StartLine: 1, EndLine: 1},
		{Text: "SELECT 2", StartOffset: 10, EndOffset: 18, StartLine: 2, EndLine: 2},
	}
	directives := []splitter.Directive{{Delimiter: "$$", Line: 3}}

	report := NewSplitReport("demo.sql", spans, directives, nil)

	var buf bytes.Buffer
	if err := NewJSONReporter().FormatSplit(report, &buf); err != nil {
		t.Fatalf("FormatSplit failed: %v", err)
	}

	var decoded SplitReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}

	if len(decoded.Statements) != 2 {
		t.Fatalf("Statements count = %d, want 2", len(decoded.Statements))
	}
	if decoded.Statements[0].Index != 1 || decoded.Statements[1].Index != 2 {
		t.Error("statement indexes must be 1-based and sequential")
	}
	if len(decoded.Directives) != 1 || decoded.Directives[0].Delimiter != "$$" {
		t.Errorf("Directives = %+v, want one $$ entry", decoded.Directives)
	}
	if decoded.Error != "" {
		t.Errorf("Error = %q, want empty", decoded.Error)
	}
}

func TestJSONReporter_FormatSplit_PartialWithError(t *testing.T) {
	spans := []splitter.StatementSpan{
		{Text: "SELECT 1", StartOffset: 0, EndOffset: 8, StartLine: 1, EndLine: 1},
	}
	splitErr := &splitter.UnterminatedQuoteError{Quote: '\'', Offset: 17, Line: 2, Column: 8}

	report := NewSplitReport("bad.sql", spans, nil, splitErr)

	var buf bytes.Buffer
	if err := NewJSONReporter().FormatSplit(report, &buf); err != nil {
		t.Fatalf("FormatSplit failed: %v", err)
	}

	var decoded SplitReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if len(decoded.Statements) != 1 {
		t.Errorf("partial statements must survive the error, got %d", len(decoded.Statements))
	}
	if decoded.Error == "" {
		t.Error("Error field must carry the split failure")
	}
}

func TestJSONReporter_Name(t *testing.T) {
	if name := NewJSONReporter().Name(); name != "json" {
		t.Errorf("Name = %q, want json", name)
	}
}
