// Package tasks schedules background units of work with completion
// continuations.
//
// The recording walk of the admin "route" command must not run on the path
// that serves requests: the caller schedules the walk and returns
// immediately, and the reply is sent from the task's continuation. Within
// one task the work happens-before its continuation; between independent
// tasks no ordering exists.
package tasks

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/krouter-io/krouter/internal/logging"
)

// ErrRunnerClosed is returned by Schedule after Close has begun.
var ErrRunnerClosed = errors.New("task runner is closed")

// Runner runs scheduled work on background goroutines, bounded by a
// concurrency limit. Once scheduled, a task always runs to completion;
// there is no cancellation.
type Runner struct {
	sem    *semaphore.Weighted
	logger *logging.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewRunner creates a runner that executes at most maxConcurrent tasks at a
// time. maxConcurrent values below 1 are treated as 1.
func NewRunner(maxConcurrent int64, logger *logging.Logger) *Runner {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	return &Runner{
		sem:    semaphore.NewWeighted(maxConcurrent),
		logger: logger,
	}
}

// Schedule runs work as an independent unit of execution and delivers its
// outcome to finally, which runs after work completes on the same goroutine.
// Schedule itself never blocks: admission to the concurrency limit happens
// on the task's own goroutine. The work and its continuation must hand state
// to each other only through the returned value.
func (r *Runner) Schedule(work func() (string, error), finally func(string, error)) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRunnerClosed
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		if err := r.sem.Acquire(context.Background(), 1); err != nil {
			finally("", err)
			return
		}
		defer r.sem.Release(1)
		result, err := work()
		finally(result, err)
	}()
	return nil
}

// Close stops admitting new tasks and waits for in-flight tasks, including
// their continuations, to finish.
func (r *Runner) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.wg.Wait()
	r.logger.Debug("task runner drained")
}
