package pageloader

import "testing"

func TestCursorState(t *testing.T) {
	var c cursorState[string]

	if _, ok := c.forReason(ReasonNextPage); ok {
		t.Fatal("fresh state should have no next cursor")
	}
	if _, ok := c.forReason(ReasonPreviousPage); ok {
		t.Fatal("fresh state should have no previous cursor")
	}

	c.setNext("p2", true)
	c.setPrevious("p0", true)

	if tok, ok := c.forReason(ReasonNextPage); !ok || tok != "p2" {
		t.Fatalf("next: got=(%q,%v) want=(p2,true)", tok, ok)
	}
	if tok, ok := c.forReason(ReasonPreviousPage); !ok || tok != "p0" {
		t.Fatalf("previous: got=(%q,%v) want=(p0,true)", tok, ok)
	}

	// initial and sync reasons never start from a cursor
	if _, ok := c.forReason(ReasonInitialPage); ok {
		t.Fatal("initial must not read a cursor")
	}
	if _, ok := c.forReason(ReasonSync); ok {
		t.Fatal("sync must not read a cursor")
	}

	c.setNext("", false)
	if _, ok := c.forReason(ReasonNextPage); ok {
		t.Fatal("cleared next cursor should be absent")
	}
	if tok, ok := c.forReason(ReasonPreviousPage); !ok || tok != "p0" {
		t.Fatalf("previous must survive clearing next: got=(%q,%v)", tok, ok)
	}
}
