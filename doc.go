// Package pageloader schedules page-by-page loading of a remote- or
// disk-backed collection: one fetch in flight at a time, strict submission
// order, cancellable supersession, and a delegate notified of every load's
// start and finish.
//
// Collaborators
//   - Helper: adapts the actual data source. It supplies the initial page
//     token, builds a FetchTask per load, and derives the next/previous
//     tokens from completed fetches.
//   - Delegate: receives WillStartLoading / DidFinishLoading for every
//     admitted load. Optional extensions add a pre-commit import hook
//     (ImportDelegate) and a deletion veto (DeleteVetoer). DelegateFuncs and
//     HelperFuncs adapt plain callables to either contract.
//
// Execution model
// Every admitted load runs as a three-phase pipeline: prestart and
// completion execute on a single coordination goroutine that owns all
// scheduler state, the fetch executes on a concurrent pool. Dependency
// chaining (prestart after the previous load's completion, completion after
// the own fetch) keeps loads strictly ordered even when fetch latencies are
// not. Cancellation reaches only the fetch phase, so a cancelled load still
// delivers exactly one finish notification, carrying ErrLoadCancelled.
//
// Admission
// Load requests pass a ConcurrentLoadBehavior deciding how they interact
// with loads already queued or in flight: queue behind them, replace the
// queue, supersede everything, or skip when a duplicate (by description,
// reason, or token) exists. LoadInitialPage, LoadNextPage and
// LoadPreviousPage pick the conventional behavior for their reason.
//
// Defaults
// Unless overridden, a new Scheduler uses a dynamic fetch pool (no
// concurrency ceiling), a coordination queue buffer of 64, a zerolog no-op
// logger, and no-op metrics. See the Option values in config.go.
package pageloader
