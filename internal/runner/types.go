package runner

import (
	"time"

	"github.com/mysqlscript/mysqlrun/internal/discovery"
	"github.com/mysqlscript/mysqlrun/internal/splitter"
)

// ScriptRun represents the execution of a single script file
type ScriptRun struct {
	Script     *discovery.DiscoveredFile
	Statements []StatementResult    // One entry per statement handed to the server
	Directives []splitter.Directive // DELIMITER directives consumed while splitting
	StartTime  time.Time
	EndTime    time.Time
	Status     RunStatus
	Error      error // Non-nil if the run failed
}

// StatementResult records the outcome of one statement
type StatementResult struct {
	Span         splitter.StatementSpan
	Type         splitter.StatementType
	RowsAffected int64
	Duration     time.Duration
	Err          error // Non-nil if the server rejected the statement
}

// RunStatus represents the current state of a script execution
type RunStatus int

const (
	RunPending RunStatus = iota
	RunRunning
	RunPassed
	RunFailed
	RunTimeout
)

// String returns a string representation of RunStatus
func (rs RunStatus) String() string {
	switch rs {
	case RunPending:
		return "pending"
	case RunRunning:
		return "running"
	case RunPassed:
		return "passed"
	case RunFailed:
		return "failed"
	case RunTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Duration returns the script execution duration
func (r *ScriptRun) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}

// FailedStatements returns the number of statements the server rejected
func (r *ScriptRun) FailedStatements() int {
	n := 0
	for _, s := range r.Statements {
		if s.Err != nil {
			n++
		}
	}
	return n
}

// RunSummary summarizes all script executions
type RunSummary struct {
	TotalScripts     int
	PassedScripts    int
	FailedScripts    int
	TimedOutScripts  int
	TotalStatements  int
	FailedStatements int
	TotalDuration    time.Duration
}

// AllPassed returns true if every script completed without failures
func (s *RunSummary) AllPassed() bool {
	return s.FailedScripts == 0 && s.TimedOutScripts == 0
}

// ExitCode returns the appropriate exit code based on execution results
func (s *RunSummary) ExitCode() int {
	if s.AllPassed() {
		return 0
	}
	return 1
}
