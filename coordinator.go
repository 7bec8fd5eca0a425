package pageloader

// coordinator is the single-threaded coordination context: one goroutine
// draining submitted closures in strict FIFO order. All Scheduler
// bookkeeping (queue, current pipeline, cursors) and all delegate lifecycle
// notifications run here, which is what removes the need for locks on that
// state.
//
// Channel ownership: the coordinator never closes work; the Scheduler stops
// it by closing stop, after which the coordinator executes everything still
// queued and then closes done. A closure accepted into work before done is
// closed is guaranteed to execute.
type coordinator struct {
	work chan func()
	stop chan struct{}
	done chan struct{}
}

func newCoordinator(buffer uint) *coordinator {
	return &coordinator{
		work: make(chan func(), buffer),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// run executes submitted closures until stop is closed, then drains the
// remaining queue and exits. It runs in exactly one goroutine.
func (c *coordinator) run() {
	defer close(c.done)
	for {
		select {
		case fn := <-c.work:
			fn()
		case <-c.stop:
			for {
				select {
				case fn := <-c.work:
					fn()
				default:
					return
				}
			}
		}
	}
}

// shutdown signals the coordinator to drain and exit, then waits for it.
func (c *coordinator) shutdown() {
	close(c.stop)
	<-c.done
}
