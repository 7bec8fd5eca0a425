package pageloader

import "sync"

// lifecycleCoordinator encapsulates the shutdown sequence for a Scheduler.
// It is a wiring helper: it owns nothing; it orders cancellation, the
// coordination barrier, and the waits.
//
// Close() is safe for concurrent calls; the sequence executes exactly once.
type lifecycleCoordinator struct {
	cancel    func()
	barrier   func()
	inflight  *sync.WaitGroup
	stopCoord func()

	once sync.Once
}

func newLifecycleCoordinator(
	cancel func(),
	barrier func(),
	inflight *sync.WaitGroup,
	stopCoord func(),
) *lifecycleCoordinator {
	return &lifecycleCoordinator{
		cancel:    cancel,
		barrier:   barrier,
		inflight:  inflight,
		stopCoord: stopCoord,
	}
}

// Close executes the shutdown sequence exactly once:
//  1. cancel the internal context: running fetches abort with
//     ErrLoadCancelled and new admissions are rejected
//  2. run a barrier closure on the coordination context, after which every
//     admission accepted earlier has executed and no new driver can appear
//  3. wait for the per-pipeline drivers: every admitted load has reached its
//     completion phase and notified the delegate
//  4. stop the coordination goroutine and wait for it to drain
func (lc *lifecycleCoordinator) Close() {
	lc.once.Do(func() {
		if lc.cancel != nil {
			lc.cancel()
		}
		if lc.barrier != nil {
			lc.barrier()
		}
		if lc.inflight != nil {
			lc.inflight.Wait()
		}
		if lc.stopCoord != nil {
			lc.stopCoord()
		}
	})
}
