package pageloader

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/ygrebnov/pageloader/metrics"
	"github.com/ygrebnov/pageloader/pool"
)

// fetchWorker is the handle the fetch pool hands out. It carries the
// instruments shared by all fetch executions.
type fetchWorker struct {
	log      zerolog.Logger
	inflight metrics.UpDownCounter
	duration metrics.Histogram
}

func (w *fetchWorker) execute(fn func()) {
	w.inflight.Add(1)
	start := time.Now()
	fn()
	w.duration.Record(time.Since(start).Seconds())
	w.inflight.Add(-1)
}

// fetchExecutor is the concurrent fetch context. Callers run fetch work on
// it from their own goroutines; a fixed pool caps how many run at once,
// a dynamic pool imposes no ceiling.
type fetchExecutor struct {
	pool pool.Pool[*fetchWorker]
}

func newFetchExecutor(capacity uint, newWorker func() *fetchWorker) *fetchExecutor {
	if capacity > 0 {
		return &fetchExecutor{pool: pool.NewFixed(capacity, newWorker)}
	}
	return &fetchExecutor{pool: pool.NewDynamic(newWorker)}
}

// run executes fn on a pooled fetch worker, blocking the calling goroutine
// for the duration (and, with a fixed pool, until a worker is free).
func (e *fetchExecutor) run(fn func()) {
	w := e.pool.Get()
	defer e.pool.Put(w)
	w.execute(fn)
}
