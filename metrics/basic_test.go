package metrics

import "testing"

func TestBasicProvider_InstrumentsReusedByName(t *testing.T) {
	p := NewBasicProvider()

	c1 := p.Counter("loads_total", WithDescription("loads"))
	c2 := p.Counter("loads_total")
	if c1 != c2 {
		t.Fatal("same name must return the same counter")
	}

	u1 := p.UpDownCounter("inflight")
	u2 := p.UpDownCounter("inflight")
	if u1 != u2 {
		t.Fatal("same name must return the same up/down counter")
	}

	h1 := p.Histogram("duration_seconds", WithUnit("seconds"))
	h2 := p.Histogram("duration_seconds")
	if h1 != h2 {
		t.Fatal("same name must return the same histogram")
	}
}

func TestBasicCounter(t *testing.T) {
	p := NewBasicProvider()
	c := p.Counter("c").(*BasicCounter)
	c.Add(2)
	c.Add(3)
	if got := c.Snapshot(); got != 5 {
		t.Fatalf("counter: got=%d want=5", got)
	}
}

func TestBasicUpDownCounter(t *testing.T) {
	p := NewBasicProvider()
	u := p.UpDownCounter("u").(*BasicUpDownCounter)
	u.Add(4)
	u.Add(-1)
	if got := u.Snapshot(); got != 3 {
		t.Fatalf("updown: got=%d want=3", got)
	}
}

func TestBasicHistogram(t *testing.T) {
	p := NewBasicProvider()
	h := p.Histogram("h").(*BasicHistogram)

	empty := h.Snapshot()
	if empty.Count != 0 || empty.Mean != 0 {
		t.Fatalf("empty snapshot: %+v", empty)
	}

	for _, v := range []float64{1, 2, 3} {
		h.Record(v)
	}
	s := h.Snapshot()
	if s.Count != 3 || s.Sum != 6 || s.Min != 1 || s.Max != 3 || s.Mean != 2 {
		t.Fatalf("snapshot: %+v", s)
	}
}

func TestNoopProvider(t *testing.T) {
	p := NewNoopProvider()
	// must not panic and must accept any input
	p.Counter("x").Add(1)
	p.UpDownCounter("y").Add(-1)
	p.Histogram("z").Record(3.14)
}

func TestApplyOptions(t *testing.T) {
	cfg := ApplyOptions([]InstrumentOption{
		WithDescription("d"),
		WithUnit("seconds"),
		WithAttributes(map[string]string{"component": "scheduler"}),
		nil,
	})
	if cfg.Description != "d" || cfg.Unit != "seconds" {
		t.Fatalf("config: %+v", cfg)
	}
	if cfg.Attributes["component"] != "scheduler" {
		t.Fatalf("attributes: %+v", cfg.Attributes)
	}
}
