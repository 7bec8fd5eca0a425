package pageloader

// cursorState tracks the two optional page tokens derived from completed
// loads. It is touched only from the coordination context, so it carries no
// synchronization of its own.
type cursorState[T comparable] struct {
	next    T
	hasNext bool

	previous    T
	hasPrevious bool
}

func (c *cursorState[T]) setNext(tok T, ok bool) {
	c.next, c.hasNext = tok, ok
}

func (c *cursorState[T]) setPrevious(tok T, ok bool) {
	c.previous, c.hasPrevious = tok, ok
}

// forReason returns the token a load with the given reason would start from.
// Only ReasonNextPage and ReasonPreviousPage read cursors.
func (c *cursorState[T]) forReason(reason LoadReason) (T, bool) {
	switch reason {
	case ReasonNextPage:
		return c.next, c.hasNext
	case ReasonPreviousPage:
		return c.previous, c.hasPrevious
	default:
		var zero T
		return zero, false
	}
}
