package cli

import (
	"context"
	"fmt"

	"github.com/mysqlscript/mysqlrun/internal/database"
	"github.com/mysqlscript/mysqlrun/internal/discovery"
	"github.com/mysqlscript/mysqlrun/internal/logger"
	"github.com/mysqlscript/mysqlrun/internal/report"
	"github.com/mysqlscript/mysqlrun/internal/runner"
)

// Run executes every SQL script under searchPath against the configured
// server and renders a report. The returned exit code is 0 when all scripts
// passed, 1 when any failed.
func Run(ctx context.Context, config *Config, searchPath string) (int, error) {
	if err := config.Validate(); err != nil {
		return 2, err
	}
	logger.SetVerbose(config.Verbose)

	logger.Debug("discovering scripts in %s", searchPath)
	scripts, err := discovery.Discover(searchPath)
	if err != nil {
		return 2, fmt.Errorf("failed to discover scripts: %w", err)
	}
	if len(scripts) == 0 {
		fmt.Println("No SQL scripts found")
		return 0, nil
	}
	discovery.SortForExecution(scripts)
	logger.Debug("found %d script(s)", len(scripts))

	db, err := database.Open(ctx, config)
	if err != nil {
		return 2, err
	}
	defer db.Close()
	logger.Debug("connected to MySQL %s", db.ServerVersion())

	executor := runner.NewExecutor(db, config.Timeout, config.ContinueOnError, config.Verbose)

	var runs []*runner.ScriptRun
	if config.Parallelism > 1 {
		logger.Debug("executing scripts in parallel (workers: %d)", config.Parallelism)
		pool := runner.NewWorkerPool(executor, config.Parallelism, config.Verbose)
		runs, err = pool.ExecuteParallel(ctx, scripts)
	} else {
		logger.Debug("executing scripts sequentially")
		runs, err = executor.ExecuteBatch(ctx, scripts)
	}
	if err != nil {
		return 2, fmt.Errorf("script execution failed: %w", err)
	}

	summary := runner.SummarizeRuns(runs)
	if err := writeRunReport(config, runs, summary); err != nil {
		return 2, err
	}

	return summary.ExitCode(), nil
}

func writeRunReport(config *Config, runs []*runner.ScriptRun, summary *runner.RunSummary) error {
	formatter, err := report.GetFormatter(report.FormatType(config.Format))
	if err != nil {
		return err
	}

	writer, closeOutput, err := report.OpenOutput(config.Output)
	if err != nil {
		return err
	}
	defer closeOutput()

	if err := formatter.FormatRun(report.NewRunReport(runs, summary), writer); err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	return nil
}
