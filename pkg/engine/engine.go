// Package engine runs a per-plugin operation over a batch with
// bounded parallelism.
package engine

import (
	"fmt"
	"runtime/debug"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/awidegreen/pack/pkg/logger"
	"github.com/awidegreen/pack/pkg/registry"
)

// Operation is the per-package unit of work. It runs at most once per
// package, inside a single worker.
type Operation func(p registry.Package) error

// Runner applies an Operation to a batch of packages across a bounded
// worker pool. Build the batch with Add, then call Run exactly once;
// Run blocks until every package has been processed and returns the
// names whose operation failed. A failing package never stops the
// rest of the batch.
type Runner struct {
	workers int
	log     logger.Logger

	mu      sync.Mutex
	pending []registry.Package
	started bool
	failed  map[string]bool
}

// New creates a runner limited to workers simultaneous operations.
// workers must be positive; frontends validate user input before
// constructing a runner.
func New(workers int, log logger.Logger) *Runner {
	return &Runner{
		workers: workers,
		log:     log,
		failed:  make(map[string]bool),
	}
}

// Add enqueues a package for the coming Run. Calls after Run has
// started are dropped with a warning.
func (r *Runner) Add(p registry.Package) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		r.log.Warn("batch already running, package dropped", logger.WithField("name", p.Name))
		return
	}
	r.pending = append(r.pending, p)
}

// Run drains the batch through the worker pool and blocks until every
// package has been handled, then returns the set of failed names. The
// set is unordered. There are no retries and no cancellation; a slow
// operation occupies one worker slot until it finishes.
func (r *Runner) Run(op Operation) map[string]bool {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		r.log.Warn("runner already ran, returning previous result")
		return r.failed
	}
	r.started = true
	batch := r.pending
	r.pending = nil
	r.mu.Unlock()

	// Workers pull from one shared queue so a slow package cannot
	// leave the others parked behind a static split.
	queue := make(chan registry.Package)
	var g errgroup.Group
	for i := 0; i < r.workers; i++ {
		g.Go(func() error {
			for p := range queue {
				if err := r.runOne(p, op); err != nil {
					r.fail(p.Name, err)
				}
			}
			return nil
		})
	}

	for _, p := range batch {
		queue <- p
	}
	close(queue)
	_ = g.Wait()

	return r.failed
}

func (r *Runner) fail(name string, err error) {
	r.mu.Lock()
	r.failed[name] = true
	r.mu.Unlock()
	r.log.WithPlugin(name).Error(err.Error())
}

// runOne converts an operation panic into a failure so one broken
// plugin cannot take the whole batch down.
func (r *Runner) runOne(p registry.Package, op Operation) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.WithPlugin(p.Name).Error("operation panicked",
				logger.WithField("panic", rec),
				logger.WithField("stack", string(debug.Stack())))
			err = fmt.Errorf("operation panic: %v", rec)
		}
	}()
	return op(p)
}
