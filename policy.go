package pageloader

// Admission policy
//
// Responsibility:
// - Map the requested ConcurrentLoadBehavior and the scheduler's queue state
//   to a single admission outcome. The decision is deterministic, inspects
//   state only, and never blocks; the Scheduler performs whatever
//   cancellation the outcome prescribes.
//
// Inputs:
// - behavior: the ConcurrentLoadBehavior requested by the caller.
// - desc: the description of the load asking for admission.
// - current: the pipeline in flight, nil when idle.
// - pending: queued pipelines in FIFO submission order.
//
// Semantics:
// - Queue:             always admit, no cleanup.
// - ReplaceQueue:      admit after cancelling every pending pipeline.
// - CancelAllOther:    admit after cancelling pending pipelines and current.
// - Skip:              drop when anything is queued or in flight.
// - SkipSame:          drop when any pipeline carries an identical
//                      description (token and reason).
// - SkipSameReason:    drop when any pipeline carries the same reason.
// - SkipSamePageInfo:  drop when any pipeline carries the same token.
//
// Cancellation prescribed here signals the fetch phase only. A cancelled
// pipeline stays in its data structure until its own completion phase runs,
// which preserves delegate notification order.

// admission is the outcome of applying a ConcurrentLoadBehavior to the
// scheduler's queue state.
type admission int

const (
	// proceed appends the new load to the tail of the pending queue.
	proceed admission = iota
	// proceedCancelPending cancels every queued pipeline first, then admits.
	proceedCancelPending
	// proceedCancelAll cancels queued pipelines and the current one, then admits.
	proceedCancelAll
	// drop discards the new request entirely; no pipeline, no notifications.
	drop
)

func decideAdmission[T comparable, D any](
	behavior ConcurrentLoadBehavior,
	desc LoadDescription[T],
	current *pipeline[T, D],
	pending []*pipeline[T, D],
) admission {
	switch behavior {
	case BehaviorQueue:
		return proceed

	case BehaviorReplaceQueue:
		return proceedCancelPending

	case BehaviorCancelAllOther:
		return proceedCancelAll

	case BehaviorSkip:
		if current != nil || len(pending) > 0 {
			return drop
		}
		return proceed

	case BehaviorSkipSame:
		return dropIfAny(current, pending, func(p *pipeline[T, D]) bool {
			return p.desc == desc
		})

	case BehaviorSkipSameReason:
		return dropIfAny(current, pending, func(p *pipeline[T, D]) bool {
			return p.desc.Reason == desc.Reason
		})

	case BehaviorSkipSamePageInfo:
		return dropIfAny(current, pending, func(p *pipeline[T, D]) bool {
			return p.desc.Token == desc.Token
		})

	default:
		return proceed
	}
}

// dropIfAny returns drop when the current pipeline or any pending one
// matches; admit otherwise. Current is checked first; order is unobservable
// since any match drops the request.
func dropIfAny[T comparable, D any](
	current *pipeline[T, D],
	pending []*pipeline[T, D],
	match func(*pipeline[T, D]) bool,
) admission {
	if current != nil && match(current) {
		return drop
	}
	for _, p := range pending {
		if match(p) {
			return drop
		}
	}
	return proceed
}
