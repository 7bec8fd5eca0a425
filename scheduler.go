package pageloader

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/pageloader/metrics"
)

// Scheduler coordinates page loads against a Helper: it admits load requests
// through the concurrency policy, runs each admitted load as a three-phase
// pipeline in strict submission order, tracks the forward/backward cursors,
// and notifies the Delegate of lifecycle events.
//
// Methods are safe for concurrent use. Call Start(ctx) before loading (or
// construct with WithStartImmediately) and Close when done; Close cancels
// whatever is still in flight and waits until every admitted load has
// notified the delegate.
type Scheduler[T comparable, D any] struct {
	// noCopy prevents accidental copying of the scheduler.
	//go:nocopy
	nc noCopy

	config *config
	log    zerolog.Logger

	helper   Helper[T, D]
	delegate Delegate[T, D] // may be nil

	once      sync.Once
	closeOnce sync.Once

	// internal lifecycle control
	ctx    context.Context
	cancel context.CancelFunc

	// execution contexts
	coord   *coordinator
	fetcher *fetchExecutor

	// one driver goroutine per admitted pipeline
	inflight sync.WaitGroup

	// scheduler state; touched only from closures run on the coordinator
	current *pipeline[T, D]
	pending []*pipeline[T, D]
	cursors cursorState[T]

	// instruments
	admitted  metrics.Counter
	skipped   metrics.Counter
	cancelled metrics.Counter
	failed    metrics.Counter
}

// noCopy is a vet-recognized marker to discourage copying types with this
// field embedded. It works with the "-copylocks" analyzer via the presence
// of Lock/Unlock methods.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// New creates a Scheduler for the given helper using functional options.
func New[T comparable, D any](ctx context.Context, helper Helper[T, D], opts ...Option) (*Scheduler[T, D], error) {
	if helper == nil {
		return nil, errorc.With(ErrInvalidConfig, errorc.String("helper", "must not be nil"))
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	s := &Scheduler[T, D]{config: &cfg, helper: helper, log: cfg.Logger}
	if cfg.Delegate != nil {
		d, ok := cfg.Delegate.(Delegate[T, D])
		if !ok {
			return nil, errorc.With(ErrInvalidConfig,
				errorc.String("delegate", "type parameters do not match the scheduler's"))
		}
		s.delegate = d
	}

	if cfg.StartImmediately {
		s.Start(ctx)
	}
	return s, nil
}

// Start starts the coordination goroutine and the fetch executor. It is
// idempotent; only the first call's context is used.
func (s *Scheduler[T, D]) Start(ctx context.Context) {
	s.once.Do(func() {
		s.ctx, s.cancel = context.WithCancel(ctx)
		s.coord = newCoordinator(s.config.QueueCapacity)

		provider := s.config.Metrics
		s.admitted = provider.Counter("pageloader_loads_admitted_total",
			metrics.WithDescription("Loads admitted past the concurrency policy"))
		s.skipped = provider.Counter("pageloader_loads_skipped_total",
			metrics.WithDescription("Load requests dropped by a skip behavior"))
		s.cancelled = provider.Counter("pageloader_loads_cancelled_total",
			metrics.WithDescription("Admitted loads that completed cancelled"))
		s.failed = provider.Counter("pageloader_loads_failed_total",
			metrics.WithDescription("Admitted loads that completed with a failure"))

		fetchInflight := provider.UpDownCounter("pageloader_fetch_inflight",
			metrics.WithDescription("Fetch tasks currently executing"))
		fetchDuration := provider.Histogram("pageloader_fetch_duration_seconds",
			metrics.WithDescription("Fetch phase duration"), metrics.WithUnit("seconds"))
		s.fetcher = newFetchExecutor(s.config.FetchPoolSize, func() *fetchWorker {
			return &fetchWorker{log: s.log, inflight: fetchInflight, duration: fetchDuration}
		})

		go s.coord.run()
	})
}

// LoadInitialPage requests a full reload from the helper's initial token.
// It supersedes everything queued or in flight (BehaviorCancelAllOther);
// on success both cursors are replaced.
func (s *Scheduler[T, D]) LoadInitialPage() error {
	if s.ctx == nil {
		return ErrInvalidState
	}
	desc := LoadDescription[T]{Token: s.helper.InitialToken(), Reason: ReasonInitialPage}
	return s.Load(desc, BehaviorCancelAllOther)
}

// LoadNextPage pages forward from the current next cursor. It is a no-op
// when that cursor is absent and deduplicates against in-flight forward
// paging (BehaviorSkipSameReason).
func (s *Scheduler[T, D]) LoadNextPage() error {
	return s.loadFromCursor(ReasonNextPage)
}

// LoadPreviousPage pages backward from the current previous cursor,
// symmetric to LoadNextPage.
func (s *Scheduler[T, D]) LoadPreviousPage() error {
	return s.loadFromCursor(ReasonPreviousPage)
}

// loadFromCursor admits a cursor-driven load. Reading the cursor has to
// happen on the coordination context, so the whole admission runs there.
func (s *Scheduler[T, D]) loadFromCursor(reason LoadReason) error {
	return s.onCoordinator(func() error {
		tok, ok := s.cursors.forReason(reason)
		if !ok {
			return nil
		}
		return s.admit(LoadDescription[T]{Token: tok, Reason: reason}, BehaviorSkipSameReason, nil)
	})
}

// Load is the generic entry point: it applies the admission policy for
// behavior and, on admission, builds a pipeline for desc chained behind
// whatever is currently last. The pipeline's prestart additionally waits on
// extraDeps.
//
// Load returns ErrInvalidState when the scheduler is not started or already
// closed. A construction failure from the helper is delivered to the
// delegate as DidFinishLoading (no pipeline is enqueued) and echoed to the
// caller. Fetch failures and cancellations reach the caller only through
// the delegate.
func (s *Scheduler[T, D]) Load(desc LoadDescription[T], behavior ConcurrentLoadBehavior, extraDeps ...Dependency) error {
	return s.onCoordinator(func() error {
		return s.admit(desc, behavior, extraDeps)
	})
}

// CancelAll signals cancellation to the load in flight and every queued one.
// None of them is removed: each still runs its completion phase and reports
// ErrLoadCancelled to the delegate, in submission order. On an idle
// scheduler it is a no-op.
func (s *Scheduler[T, D]) CancelAll() error {
	return s.onCoordinator(func() error {
		if s.current == nil && len(s.pending) == 0 {
			return nil
		}
		s.log.Debug().Int("pending", len(s.pending)).Msg("cancelling all loads")
		s.cancelPipelines(true)
		return nil
	})
}

// CanDelete consults the delegate before a storage adapter discards an item
// during reconciliation. Without a delegate veto hook the answer is yes.
func (s *Scheduler[T, D]) CanDelete(item any) bool {
	if v, ok := s.delegate.(DeleteVetoer); ok {
		return v.CanDelete(item)
	}
	return true
}

// Close stops the scheduler: running fetches are cancelled, every admitted
// load still delivers its DidFinishLoading notification, then the
// coordination goroutine exits. Idempotent and safe for concurrent use.
func (s *Scheduler[T, D]) Close() {
	s.closeOnce.Do(func() {
		if s.ctx == nil {
			return // never started
		}
		lc := newLifecycleCoordinator(
			s.cancel,
			func() { s.runPhase(func() {}) },
			&s.inflight,
			s.coord.shutdown,
		)
		lc.Close()
	})
}

// onCoordinator runs fn on the coordination context and returns its error.
// It fails fast with ErrInvalidState when the scheduler is not started or
// is shutting down.
func (s *Scheduler[T, D]) onCoordinator(fn func() error) error {
	if s.ctx == nil || s.ctx.Err() != nil {
		return ErrInvalidState
	}

	res := make(chan error, 1)
	select {
	case s.coord.work <- func() { res <- fn() }:
	case <-s.coord.done:
		return ErrInvalidState
	}

	select {
	case err := <-res:
		return err
	case <-s.coord.done:
		// The coordinator drains everything it accepted before exiting; a
		// missing result means the closure was lost to the shutdown race.
		select {
		case err := <-res:
			return err
		default:
			return ErrInvalidState
		}
	}
}

// runPhase executes fn on the coordination context and waits for it. Only
// pipeline drivers and the Close barrier call it; the coordinator is
// guaranteed to outlive both.
func (s *Scheduler[T, D]) runPhase(fn func()) {
	done := make(chan struct{})
	s.coord.work <- func() { fn(); close(done) }
	<-done
}

// admit applies the admission policy and, on admission, enqueues a new
// pipeline. Runs on the coordination context.
func (s *Scheduler[T, D]) admit(desc LoadDescription[T], behavior ConcurrentLoadBehavior, extraDeps []Dependency) error {
	if s.ctx.Err() != nil {
		return ErrInvalidState
	}

	switch decideAdmission(behavior, desc, s.current, s.pending) {
	case drop:
		s.skipped.Add(1)
		s.log.Debug().Stringer("reason", desc.Reason).Stringer("behavior", behavior).Msg("load skipped")
		return nil
	case proceedCancelPending:
		s.cancelPipelines(false)
	case proceedCancelAll:
		s.cancelPipelines(true)
	case proceed:
	}

	fetch, err := s.helper.FetchTask(desc)
	if err != nil {
		cerr := err
		if !errors.Is(cerr, ErrConstruction) {
			cerr = fmt.Errorf("%w: %w", ErrConstruction, err)
		}
		s.failed.Add(1)
		s.log.Error().Err(cerr).Stringer("reason", desc.Reason).Msg("fetch task construction failed")
		if s.delegate != nil {
			var zero D
			s.delegate.DidFinishLoading(desc, zero, cerr)
		}
		return cerr
	}

	p := newPipeline(s.ctx, desc, fetch, s.helper, s.delegate, extraDeps)
	prev := s.tail()
	s.pending = append(s.pending, p)
	s.admitted.Add(1)
	s.log.Debug().Stringer("id", p.id).Stringer("reason", desc.Reason).Stringer("behavior", behavior).Msg("load admitted")

	s.inflight.Add(1)
	go s.drive(p, prev)
	return nil
}

// tail returns the pipeline a newly admitted one must chain behind.
func (s *Scheduler[T, D]) tail() *pipeline[T, D] {
	if n := len(s.pending); n > 0 {
		return s.pending[n-1]
	}
	return s.current
}

// cancelPipelines signals cancellation to every queued pipeline's fetch and,
// when includeCurrent is set, to the one in flight. Entries stay where they
// are; each still runs its completion phase and notifies the delegate, which
// preserves notification order.
func (s *Scheduler[T, D]) cancelPipelines(includeCurrent bool) {
	for _, p := range s.pending {
		p.cancel()
	}
	if includeCurrent && s.current != nil {
		s.current.cancel()
	}
}

// drive walks one pipeline through its three phases, enforcing the
// dependency chain: prestart waits for the previous pipeline's completion
// (and any extra dependencies), fetch waits for prestart, completion waits
// for fetch. One driver goroutine exists per admitted pipeline; together
// with the chain this serializes pipelines in submission order even though
// fetch work runs on a concurrent pool.
func (s *Scheduler[T, D]) drive(p, prev *pipeline[T, D]) {
	defer s.inflight.Done()

	if prev != nil {
		<-prev.completionDone
	}
	for _, dep := range p.extraDeps {
		if dep == nil {
			continue
		}
		select {
		case <-dep:
		case <-s.ctx.Done():
			// shutdown: stop gating, the fetch below surfaces cancellation
		}
	}

	s.runPhase(func() { s.prestart(p) })
	s.fetcher.run(p.runFetch)
	s.runPhase(func() { s.complete(p) })
}

// prestart runs on the coordination context: it notifies the delegate and
// transfers the pipeline from head-of-queue to current. An occupied current
// slot here means the dependency chain was wired wrong; that is a defect,
// not a runtime condition, so it crashes.
func (s *Scheduler[T, D]) prestart(p *pipeline[T, D]) {
	if s.current != nil {
		panic(Namespace + ": prestart while another load is current; dependency chain corrupted")
	}
	if len(s.pending) == 0 || s.pending[0] != p {
		panic(Namespace + ": prestart out of submission order")
	}

	if s.delegate != nil {
		s.delegate.WillStartLoading(p.desc)
	}
	s.pending = s.pending[1:]
	s.current = p
}

// complete runs on the coordination context: it applies cursor updates on
// success, clears the current slot, and delivers the finish notification.
// It runs for cancelled loads too; cancellation skips work, never the
// notification.
func (s *Scheduler[T, D]) complete(p *pipeline[T, D]) {
	defer close(p.completionDone)
	p.cancel() // release the fetch context; this phase itself is never cancelled

	if p.err == nil {
		s.applyCursors(p)
	} else {
		p.err = newLoadTaggedError(p.err, p.id, p.desc.Reason)
		if errors.Is(p.err, ErrLoadCancelled) {
			s.cancelled.Add(1)
			s.log.Debug().Stringer("id", p.id).Stringer("reason", p.desc.Reason).Msg("load cancelled")
		} else {
			s.failed.Add(1)
			s.log.Error().Err(p.err).Stringer("id", p.id).Stringer("reason", p.desc.Reason).Msg("load failed")
		}
	}

	s.current = nil
	if s.delegate != nil {
		s.delegate.DidFinishLoading(p.desc, p.data, p.err)
	}
}

// applyCursors moves the cursors a successful completion is allowed to move.
// Token derivation uses the pipeline's helper snapshot, not whatever the
// scheduler references now.
func (s *Scheduler[T, D]) applyCursors(p *pipeline[T, D]) {
	switch p.desc.Reason {
	case ReasonInitialPage:
		s.cursors.setNext(p.helper.NextToken(p.data, p.desc.Token))
		s.cursors.setPrevious(p.helper.PreviousToken(p.data, p.desc.Token))
	case ReasonNextPage:
		s.cursors.setNext(p.helper.NextToken(p.data, p.desc.Token))
	case ReasonPreviousPage:
		s.cursors.setPrevious(p.helper.PreviousToken(p.data, p.desc.Token))
	case ReasonSync:
		// reserved: bulk reconciliation moves no cursors
	}
}
