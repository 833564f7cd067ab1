package runner

import (
	"context"
	"sync"
	"time"

	"github.com/mysqlscript/mysqlrun/internal/discovery"
	"github.com/mysqlscript/mysqlrun/internal/logger"
)

// WorkerPool manages parallel script execution. Scripts are independent of
// each other by assumption; within one script statement order is always
// preserved because each script runs on its own pinned session.
type WorkerPool struct {
	executor   *Executor
	maxWorkers int
	verbose    bool
}

// NewWorkerPool creates a new worker pool for parallel script execution
func NewWorkerPool(executor *Executor, maxWorkers int, verbose bool) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{
		executor:   executor,
		maxWorkers: maxWorkers,
		verbose:    verbose,
	}
}

// ExecuteParallel runs multiple scripts in parallel with the configured
// concurrency limit. Results are returned in the input order.
func (wp *WorkerPool) ExecuteParallel(ctx context.Context, scripts []discovery.DiscoveredFile) ([]*ScriptRun, error) {
	numScripts := len(scripts)
	if numScripts == 0 {
		return nil, nil
	}

	// If only one worker or one script, fall back to sequential execution
	if wp.maxWorkers == 1 || numScripts == 1 {
		return wp.executor.ExecuteBatch(ctx, scripts)
	}

	if wp.verbose {
		logger.Debug("starting parallel execution with %d workers for %d scripts", wp.maxWorkers, numScripts)
	}

	jobs := make(chan *scriptJob, numScripts)
	results := make(chan *scriptResult, numScripts)

	var wg sync.WaitGroup
	for i := 0; i < wp.maxWorkers; i++ {
		wg.Add(1)
		go wp.worker(ctx, i, jobs, results, &wg)
	}

	for i := range scripts {
		jobs <- &scriptJob{
			script: &scripts[i],
			index:  i,
		}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	runs := make([]*ScriptRun, numScripts)
	for result := range results {
		runs[result.index] = result.run
		if wp.verbose {
			logger.Debug("[%s] %s (worker %d)",
				result.run.Status, result.run.Script.RelativePath, result.workerID)
		}
	}

	return runs, nil
}

// scriptJob represents a single script to execute
type scriptJob struct {
	script *discovery.DiscoveredFile
	index  int
}

// scriptResult represents the result of a script execution
type scriptResult struct {
	run      *ScriptRun
	index    int
	workerID int
}

// worker is the goroutine that processes script jobs
func (wp *WorkerPool) worker(ctx context.Context, workerID int, jobs <-chan *scriptJob, results chan<- *scriptResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for job := range jobs {
		// Scripts queued after cancellation are reported as failed
		// without touching the server.
		if ctx.Err() != nil {
			results <- &scriptResult{
				run: &ScriptRun{
					Script:    job.script,
					StartTime: time.Now(),
					EndTime:   time.Now(),
					Status:    RunFailed,
					Error:     ctx.Err(),
				},
				index:    job.index,
				workerID: workerID,
			}
			continue
		}

		run, err := wp.executor.Execute(ctx, job.script)
		if err != nil && run == nil {
			run = &ScriptRun{
				Script:    job.script,
				StartTime: time.Now(),
				EndTime:   time.Now(),
				Status:    RunFailed,
				Error:     err,
			}
		}

		results <- &scriptResult{
			run:      run,
			index:    job.index,
			workerID: workerID,
		}
	}
}
