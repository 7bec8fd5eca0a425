package pageloader

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// pipeline is one admitted load: three ordered phases (prestart, fetch,
// completion) with a strict linear dependency chain.
//
// Phase contexts: prestart and completion run on the coordination context
// and are never cancelled; fetch runs on the fetch context and is the only
// phase cancellation reaches. Cancelling a pipeline therefore never skips
// its delegate notification, it only makes the fetch surface
// ErrLoadCancelled through the normal completion path.
//
// A pipeline snapshot-holds the helper and delegate in effect at submission
// time, keeping them referenced until completion fires.
type pipeline[T comparable, D any] struct {
	id   uuid.UUID
	desc LoadDescription[T]

	fetch    FetchTask[D]
	helper   Helper[T, D]
	delegate Delegate[T, D] // may be nil

	// fetch-phase cancellation; prestart/completion ignore it
	ctx    context.Context
	cancel context.CancelFunc

	// closed by the completion phase; the next pipeline's prestart waits on it
	completionDone chan struct{}

	extraDeps []Dependency

	// fetch outcome, written by runFetch, read by the completion phase.
	// The driver goroutine sequences the two, no lock needed.
	data D
	err  error
}

func newPipeline[T comparable, D any](
	parent context.Context,
	desc LoadDescription[T],
	fetch FetchTask[D],
	helper Helper[T, D],
	delegate Delegate[T, D],
	extraDeps []Dependency,
) *pipeline[T, D] {
	ctx, cancel := context.WithCancel(parent)
	return &pipeline[T, D]{
		id:             uuid.New(),
		desc:           desc,
		fetch:          fetch,
		helper:         helper,
		delegate:       delegate,
		ctx:            ctx,
		cancel:         cancel,
		completionDone: make(chan struct{}),
		extraDeps:      extraDeps,
	}
}

// check is the cooperative cancellation checkpoint handed to the fetch task
// and the import hook.
func (p *pipeline[T, D]) check() error {
	if err := p.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrLoadCancelled, err)
	}
	return nil
}

// runFetch executes the fetch phase and stores its outcome on the pipeline.
// The task runs in its own goroutine so a fetch that ignores its checkpoints
// cannot wedge the pipeline: cancellation wins the select and the load
// completes with ErrLoadCancelled regardless.
func (p *pipeline[T, D]) runFetch() {
	var (
		data D
		err  error
	)

	done := make(chan struct{})
	go func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", ErrFetchPanicked, r)
			}
			close(done)
		}()

		data, err = p.fetch(p.ctx, p.check)
		if err != nil {
			return
		}
		// Pre-commit import hook: runs inside the fetch phase, before the
		// completion phase. A veto fails the whole load.
		if imp, ok := p.delegate.(ImportDelegate[T, D]); ok {
			if hookErr := imp.WillFinishLoading(p.desc, data, p.check); hookErr != nil {
				var zero D
				data, err = zero, hookErr
			}
		}
	}()

	select {
	case <-p.ctx.Done():
		p.err = fmt.Errorf("%w: %w", ErrLoadCancelled, p.ctx.Err())
	case <-done:
		p.data, p.err = data, err
	}
}
