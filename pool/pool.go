// Package pool provides reusable worker-handle pools backing the fetch
// execution context: a dynamic pool with no concurrency ceiling and a fixed
// pool that caps how many handles are out at once.
package pool

// Pool hands out worker handles of type W. Get may block (fixed pool at
// capacity) until a handle is returned with Put. Implementations are safe
// for concurrent use.
type Pool[W any] interface {
	Get() W
	Put(W)
}
