package pageloader

import "context"

// CancelCheck is the cooperative cancellation checkpoint handed to fetch
// tasks and import hooks. It returns nil while the owning load is live and
// an error wrapping ErrLoadCancelled once cancellation has been requested.
// Implementations of FetchTask should call it at safe points and abort by
// returning its error.
type CancelCheck func() error

// FetchTask performs the actual page fetch for one load. It runs on the
// concurrent fetch context and may block on arbitrary I/O. The context is
// cancelled when the load is cancelled; check offers the same signal as a
// callable for code that is not context-aware.
type FetchTask[D any] func(ctx context.Context, check CancelCheck) (D, error)

// Helper supplies page fetch operations and token derivation to a Scheduler.
// Implementations adapt a concrete source (a network API, a local store) to
// the scheduler; the scheduler never touches the source directly.
//
// T is the opaque page token type, D the data a completed fetch produces.
type Helper[T comparable, D any] interface {
	// InitialToken returns the token identifying the first page.
	InitialToken() T

	// FetchTask builds the fetch operation for one load. Returning an error
	// means the task could not even be constructed; the scheduler reports it
	// immediately and enqueues nothing.
	FetchTask(desc LoadDescription[T]) (FetchTask[D], error)

	// NextToken derives the forward cursor from a completed load.
	// loaded is the token the completed load fetched. ok=false means there
	// is no further page in that direction.
	NextToken(data D, loaded T) (tok T, ok bool)

	// PreviousToken derives the backward cursor from a completed load.
	PreviousToken(data D, loaded T) (tok T, ok bool)
}

// HelperFuncs adapts individually supplied callables to the Helper
// interface. Initial is required; a nil Fetch yields a construction error
// for every load; nil token funcs report no token in that direction.
type HelperFuncs[T comparable, D any] struct {
	Initial  func() T
	Fetch    func(desc LoadDescription[T]) (FetchTask[D], error)
	Next     func(data D, loaded T) (T, bool)
	Previous func(data D, loaded T) (T, bool)
}

func (h HelperFuncs[T, D]) InitialToken() T {
	if h.Initial == nil {
		var zero T
		return zero
	}
	return h.Initial()
}

func (h HelperFuncs[T, D]) FetchTask(desc LoadDescription[T]) (FetchTask[D], error) {
	if h.Fetch == nil {
		return nil, ErrConstruction
	}
	return h.Fetch(desc)
}

func (h HelperFuncs[T, D]) NextToken(data D, loaded T) (T, bool) {
	if h.Next == nil {
		var zero T
		return zero, false
	}
	return h.Next(data, loaded)
}

func (h HelperFuncs[T, D]) PreviousToken(data D, loaded T) (T, bool) {
	if h.Previous == nil {
		var zero T
		return zero, false
	}
	return h.Previous(data, loaded)
}
