// Package prom backs the scheduler's metrics with Prometheus instruments,
// for services that already expose a Prometheus registry.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ygrebnov/pageloader/metrics"
)

// Provider implements metrics.Provider on a prometheus.Registerer.
// Instrument descriptions map to Help, attributes to constant labels; the
// advisory unit is ignored (encode units in the metric name, Prometheus
// convention). Registering the same name twice reuses the existing
// collector.
type Provider struct {
	reg prometheus.Registerer
}

// NewProvider constructs a Provider registering into reg. A nil reg falls
// back to prometheus.DefaultRegisterer.
func NewProvider(reg prometheus.Registerer) *Provider {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &Provider{reg: reg}
}

func (p *Provider) Counter(name string, opts ...metrics.InstrumentOption) metrics.Counter {
	cfg := metrics.ApplyOptions(opts)
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        name,
		Help:        cfg.Description,
		ConstLabels: prometheus.Labels(cfg.Attributes),
	})
	if err := p.reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			c = are.ExistingCollector.(prometheus.Counter)
		}
	}
	return counter{c}
}

func (p *Provider) UpDownCounter(name string, opts ...metrics.InstrumentOption) metrics.UpDownCounter {
	cfg := metrics.ApplyOptions(opts)
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        name,
		Help:        cfg.Description,
		ConstLabels: prometheus.Labels(cfg.Attributes),
	})
	if err := p.reg.Register(g); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			g = are.ExistingCollector.(prometheus.Gauge)
		}
	}
	return gauge{g}
}

func (p *Provider) Histogram(name string, opts ...metrics.InstrumentOption) metrics.Histogram {
	cfg := metrics.ApplyOptions(opts)
	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:        name,
		Help:        cfg.Description,
		ConstLabels: prometheus.Labels(cfg.Attributes),
	})
	if err := p.reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			h = are.ExistingCollector.(prometheus.Histogram)
		}
	}
	return histogram{h}
}

type counter struct{ c prometheus.Counter }

func (c counter) Add(n int64) { c.c.Add(float64(n)) }

type gauge struct{ g prometheus.Gauge }

func (g gauge) Add(n int64) { g.g.Add(float64(n)) }

type histogram struct{ h prometheus.Histogram }

func (h histogram) Record(v float64) { h.h.Observe(v) }
