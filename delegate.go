package pageloader

// Delegate receives lifecycle notifications from a Scheduler. Both methods
// run on the coordination context and must not block; slow reactions should
// be handed off to another goroutine by the implementation.
//
// Every admitted load produces exactly one DidFinishLoading call, whether it
// succeeded, failed, or was cancelled (err wraps ErrLoadCancelled in that
// case). Skipped requests produce no calls at all.
type Delegate[T comparable, D any] interface {
	// WillStartLoading fires in the load's prestart phase, immediately
	// before it becomes the one in flight.
	WillStartLoading(desc LoadDescription[T])

	// DidFinishLoading fires in the load's completion phase. On failure
	// data is the zero value and err is non-nil.
	DidFinishLoading(desc LoadDescription[T], data D, err error)
}

// ImportDelegate is an optional Delegate extension: a pre-commit hook run
// inside the fetch phase, after the fetch produced data and before the
// completion phase. Returning an error fails the whole load; the returned
// error is what DidFinishLoading receives. Unlike the Delegate methods it
// runs on the fetch context and may block; check should be consulted around
// expensive work.
type ImportDelegate[T comparable, D any] interface {
	WillFinishLoading(desc LoadDescription[T], data D, check CancelCheck) error
}

// DeleteVetoer is an optional Delegate extension consulted by storage
// adapters before discarding an item during reconciliation. The scheduler
// core never deletes items itself; it only forwards the question.
type DeleteVetoer interface {
	CanDelete(item any) bool
}

// DelegateFuncs adapts individually supplied callables to the Delegate
// interface (plus the optional extensions). Nil callables are no-ops;
// a nil OnCanDelete permits deletion.
type DelegateFuncs[T comparable, D any] struct {
	OnWillStart  func(desc LoadDescription[T])
	OnDidFinish  func(desc LoadDescription[T], data D, err error)
	OnWillFinish func(desc LoadDescription[T], data D, check CancelCheck) error
	OnCanDelete  func(item any) bool
}

func (d DelegateFuncs[T, D]) WillStartLoading(desc LoadDescription[T]) {
	if d.OnWillStart != nil {
		d.OnWillStart(desc)
	}
}

func (d DelegateFuncs[T, D]) DidFinishLoading(desc LoadDescription[T], data D, err error) {
	if d.OnDidFinish != nil {
		d.OnDidFinish(desc, data, err)
	}
}

func (d DelegateFuncs[T, D]) WillFinishLoading(desc LoadDescription[T], data D, check CancelCheck) error {
	if d.OnWillFinish != nil {
		return d.OnWillFinish(desc, data, check)
	}
	return nil
}

func (d DelegateFuncs[T, D]) CanDelete(item any) bool {
	if d.OnCanDelete != nil {
		return d.OnCanDelete(item)
	}
	return true
}
