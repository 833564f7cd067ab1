package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mysqlscript/mysqlrun/internal/database"
	"github.com/mysqlscript/mysqlrun/internal/discovery"
	"github.com/mysqlscript/mysqlrun/internal/errors"
	"github.com/mysqlscript/mysqlrun/internal/logger"
	"github.com/mysqlscript/mysqlrun/internal/splitter"
)

// Executor runs scripts against MySQL one statement at a time
type Executor struct {
	db              *database.DB
	timeout         time.Duration
	continueOnError bool
	verbose         bool
}

// NewExecutor creates a new script executor
func NewExecutor(db *database.DB, timeout time.Duration, continueOnError, verbose bool) *Executor {
	return &Executor{
		db:              db,
		timeout:         timeout,
		continueOnError: continueOnError,
		verbose:         verbose,
	}
}

// Execute runs a single script file. The returned error reports
// infrastructure failures (unreadable file, no connection); statement and
// split failures are recorded on the ScriptRun itself.
func (e *Executor) Execute(ctx context.Context, script *discovery.DiscoveredFile) (*ScriptRun, error) {
	run := &ScriptRun{
		Script:    script,
		StartTime: time.Now(),
		Status:    RunPending,
	}

	content, err := os.ReadFile(script.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	scriptCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	run.Status = RunRunning
	e.executeScript(scriptCtx, run, string(content))
	run.EndTime = time.Now()

	if run.Error != nil && scriptCtx.Err() == context.DeadlineExceeded {
		run.Status = RunTimeout
	} else if run.Error != nil {
		run.Status = RunFailed
	} else {
		run.Status = RunPassed
	}

	return run, nil
}

// executeScript splits the script and feeds statements to the server on a
// single pinned session, so session state carries across statements.
func (e *Executor) executeScript(ctx context.Context, run *ScriptRun, script string) {
	session, err := e.db.NewSession(ctx)
	if err != nil {
		run.Error = fmt.Errorf("failed to acquire session: %w", err)
		return
	}
	defer session.Close()

	sp := splitter.NewSplitter(script)
	for {
		span, err := sp.Next()
		if err != nil {
			run.Directives = sp.Directives()
			if err == io.EOF {
				return
			}
			// Statements before the malformed region were already
			// executed; the split failure itself fails the run.
			line, column, _ := splitter.ErrorPosition(err)
			run.Error = errors.NewScriptError(
				run.Script.RelativePath, line, column, err)
			return
		}

		result := e.executeStatement(ctx, session, run, span)
		run.Statements = append(run.Statements, result)

		if result.Err != nil {
			run.Error = result.Err
			if !e.continueOnError {
				run.Directives = sp.Directives()
				return
			}
		}
		if ctx.Err() != nil {
			if run.Error == nil {
				run.Error = ctx.Err()
			}
			run.Directives = sp.Directives()
			return
		}
	}
}

// executeStatement sends one span to the server and records the outcome
func (e *Executor) executeStatement(ctx context.Context, session *database.Session, run *ScriptRun, span splitter.StatementSpan) StatementResult {
	if e.verbose {
		logger.Debug("%s:%d: executing %s statement",
			run.Script.RelativePath, span.StartLine, splitter.Classify(span.Text))
	}

	start := time.Now()
	rows, err := session.Exec(ctx, span.Text)
	result := StatementResult{
		Span:         span,
		Type:         splitter.Classify(span.Text),
		RowsAffected: rows,
		Duration:     time.Since(start),
	}
	if err != nil {
		result.Err = errors.NewExecError(
			run.Script.RelativePath, span.StartLine, span.Text, err)
	}
	return result
}

// ExecuteBatch runs multiple scripts sequentially in the given order
func (e *Executor) ExecuteBatch(ctx context.Context, scripts []discovery.DiscoveredFile) ([]*ScriptRun, error) {
	var runs []*ScriptRun

	for i := range scripts {
		if e.verbose {
			logger.Info("running script: %s", scripts[i].RelativePath)
		}

		run, err := e.Execute(ctx, &scripts[i])
		if err != nil {
			return runs, fmt.Errorf("failed to run %s: %w", scripts[i].RelativePath, err)
		}
		runs = append(runs, run)

		if ctx.Err() != nil {
			break
		}
	}

	return runs, nil
}

// SummarizeRuns creates a summary of script execution results
func SummarizeRuns(runs []*ScriptRun) *RunSummary {
	summary := &RunSummary{
		TotalScripts: len(runs),
	}

	var totalDuration time.Duration

	for _, run := range runs {
		totalDuration += run.Duration()
		summary.TotalStatements += len(run.Statements)
		summary.FailedStatements += run.FailedStatements()

		switch run.Status {
		case RunPassed:
			summary.PassedScripts++
		case RunFailed:
			summary.FailedScripts++
		case RunTimeout:
			summary.TimedOutScripts++
		}
	}

	summary.TotalDuration = totalDuration

	return summary
}
