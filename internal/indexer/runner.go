// Package indexer runs scan-and-save indexing runs on a bounded worker
// pool, off whatever goroutine serves the interactive surface.
package indexer

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/starford/raidho/internal/catalog"
	"github.com/starford/raidho/internal/metrics"
	"github.com/starford/raidho/internal/scanner"
)

// Request describes one indexing run.
type Request struct {
	Root     string // directory to scan
	Category string // user-chosen grouping label
	Drive    string // storage location name
	Clean    bool   // delete prior files for (Category, Drive) first
}

// Result is the outcome of a completed run.
type Result struct {
	Generation     uint64
	Request        Request
	Inserted       int
	ScannedFiles   int
	AvailableSpace uint64
	Duration       time.Duration
	FinishedAt     time.Time
	Err            error
}

// SpaceFunc supplies the free-space reading for the scan root.
type SpaceFunc func(path string) (uint64, error)

// Runner executes indexing runs with at most `workers` concurrent scans.
// Each submission increments a generation counter; a run whose
// generation has been superseded by the time it completes is discarded
// rather than published, so the latest visible result never goes
// backwards. This guards against stale data, not cancellation: the
// superseded work still runs to completion.
type Runner struct {
	store  catalog.Store
	engine *catalog.Engine
	space  SpaceFunc
	logger *slog.Logger
	sem    *semaphore.Weighted
	gen    atomic.Uint64
	wg     sync.WaitGroup

	mu     sync.Mutex
	latest *Result
}

// NewRunner creates a runner over store. engine, if non-nil, has its
// result cache invalidated after every write. workers <= 0 selects 1.
func NewRunner(store catalog.Store, engine *catalog.Engine, space SpaceFunc, logger *slog.Logger, workers int64) *Runner {
	if workers <= 0 {
		workers = 1
	}
	return &Runner{
		store:  store,
		engine: engine,
		space:  space,
		logger: logger,
		sem:    semaphore.NewWeighted(workers),
	}
}

// Submit queues an indexing run and returns its generation immediately.
// The run executes asynchronously; its outcome is visible via Latest
// unless a newer submission supersedes it first.
func (r *Runner) Submit(req Request) uint64 {
	gen := r.gen.Add(1)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		_ = r.sem.Acquire(context.Background(), 1)
		defer r.sem.Release(1)

		res := r.runOnce(gen, req)
		r.publish(res)
	}()
	return gen
}

// RunSync executes an indexing run on the calling goroutine and returns
// its result. It still participates in generation ordering.
func (r *Runner) RunSync(req Request) Result {
	gen := r.gen.Add(1)
	res := r.runOnce(gen, req)
	r.publish(res)
	return res
}

// Latest returns the most recent published result, or nil if no run has
// completed yet.
func (r *Runner) Latest() *Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.latest
}

// Wait blocks until all submitted runs have finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) runOnce(gen uint64, req Request) Result {
	start := time.Now()
	res := Result{Generation: gen, Request: req}

	res.Err = r.execute(req, &res)

	res.Duration = time.Since(start)
	res.FinishedAt = time.Now()
	metrics.IndexRunDuration.Observe(res.Duration.Seconds())
	if res.Err != nil {
		metrics.IndexRunsTotal.WithLabelValues("error").Inc()
		r.logger.Error("indexing run failed",
			slog.Uint64("generation", gen),
			slog.String("root", req.Root),
			slog.String("error", res.Err.Error()))
	} else {
		metrics.IndexRunsTotal.WithLabelValues("ok").Inc()
		metrics.IndexFilesInserted.Add(float64(res.Inserted))
		r.logger.Info("indexing run finished",
			slog.Uint64("generation", gen),
			slog.String("category", req.Category),
			slog.String("drive", req.Drive),
			slog.Int("inserted", res.Inserted),
			slog.Duration("duration", res.Duration))
	}
	return res
}

func (r *Runner) execute(req Request, res *Result) error {
	files, err := scanner.Scan(req.Root)
	if err != nil {
		return err
	}
	res.ScannedFiles = len(files)

	space, err := r.space(req.Root)
	if err != nil {
		return err
	}
	res.AvailableSpace = space

	if req.Clean {
		if err := r.store.RemoveDuplicates(req.Category, req.Drive); err != nil {
			return err
		}
	}

	inserted, err := r.store.Save(req.Category, req.Drive, space, files)
	if err != nil {
		return err
	}
	res.Inserted = inserted

	if r.engine != nil {
		r.engine.Invalidate()
	}
	return nil
}

// publish records res as the latest result unless a newer submission has
// already advanced the generation counter.
func (r *Runner) publish(res Result) {
	if r.gen.Load() != res.Generation {
		metrics.IndexStaleResults.Inc()
		r.logger.Debug("discarding superseded run",
			slog.Uint64("generation", res.Generation),
			slog.Uint64("current", r.gen.Load()))
		return
	}
	r.mu.Lock()
	r.latest = &res
	r.mu.Unlock()
}
