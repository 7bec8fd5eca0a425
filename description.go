package pageloader

// LoadReason identifies why a page load was requested. It determines which
// cursors are updated when the load completes successfully.
type LoadReason int

const (
	// ReasonInitialPage reloads the collection from its first page.
	// On success both the next and previous cursors are replaced.
	ReasonInitialPage LoadReason = iota

	// ReasonNextPage pages forward. On success only the next cursor moves.
	ReasonNextPage

	// ReasonPreviousPage pages backward. On success only the previous cursor moves.
	ReasonPreviousPage

	// ReasonSync is reserved for bulk reconciliation. A Sync completion
	// updates no cursors; the reconciliation algorithm itself is undefined.
	ReasonSync
)

func (r LoadReason) String() string {
	switch r {
	case ReasonInitialPage:
		return "initial"
	case ReasonNextPage:
		return "next"
	case ReasonPreviousPage:
		return "previous"
	case ReasonSync:
		return "sync"
	default:
		return "unknown"
	}
}

// ConcurrentLoadBehavior selects how a new load request interacts with loads
// that are already queued or in flight. See decideAdmission for the exact
// effect of each value.
type ConcurrentLoadBehavior int

const (
	// BehaviorQueue appends the load to the tail of the pending queue.
	BehaviorQueue ConcurrentLoadBehavior = iota

	// BehaviorReplaceQueue cancels every queued (not yet started) load,
	// then appends. The load currently in flight is left alone.
	BehaviorReplaceQueue

	// BehaviorCancelAllOther cancels every queued load and the one in
	// flight, then appends.
	BehaviorCancelAllOther

	// BehaviorSkip drops the new request entirely if any load is queued or
	// in flight.
	BehaviorSkip

	// BehaviorSkipSame drops the new request if a load with an identical
	// description (token and reason) is queued or in flight.
	BehaviorSkipSame

	// BehaviorSkipSameReason drops the new request if a load with the same
	// reason is queued or in flight.
	BehaviorSkipSameReason

	// BehaviorSkipSamePageInfo drops the new request if a load with the
	// same page token is queued or in flight.
	BehaviorSkipSamePageInfo
)

func (b ConcurrentLoadBehavior) String() string {
	switch b {
	case BehaviorQueue:
		return "queue"
	case BehaviorReplaceQueue:
		return "replace-queue"
	case BehaviorCancelAllOther:
		return "cancel-all-other"
	case BehaviorSkip:
		return "skip"
	case BehaviorSkipSame:
		return "skip-same"
	case BehaviorSkipSameReason:
		return "skip-same-reason"
	case BehaviorSkipSamePageInfo:
		return "skip-same-page-info"
	default:
		return "unknown"
	}
}

// LoadDescription identifies one load attempt: the page token to fetch and
// the reason it is being fetched. T is the helper-defined token type.
// Equality is structural, which is what the skip behaviors compare with.
type LoadDescription[T comparable] struct {
	Token  T
	Reason LoadReason
}

// Dependency is an externally supplied gate a load may be made to wait on
// before its prestart phase runs. It is considered resolved once the channel
// is closed (or a value is received).
type Dependency <-chan struct{}
