package pageloader

import (
	"github.com/rs/zerolog"
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/pageloader/metrics"
)

// config holds Scheduler configuration.
type config struct {
	// FetchPoolSize caps how many fetch tasks may run concurrently.
	// Zero (default) means no ceiling (dynamic pool). Note that loads are
	// serialized by the dependency chain regardless; the cap only matters
	// for unrelated I/O a fetch implementation fans out itself.
	FetchPoolSize uint

	// QueueCapacity is the buffer of the coordination work channel.
	// Default: 64.
	QueueCapacity uint

	// StartImmediately starts the scheduler inside New.
	// Default: false (explicit Start).
	StartImmediately bool

	// Logger receives debug events on admission decisions and error events
	// on failed completions. Default: zerolog.Nop().
	Logger zerolog.Logger

	// Metrics constructs the scheduler's instruments.
	// Default: metrics.NewNoopProvider().
	Metrics metrics.Provider

	// Delegate holds the optional delegate (stored as any because config is
	// not generic; New asserts the concrete type).
	Delegate any
}

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		FetchPoolSize:    0, // dynamic pool
		QueueCapacity:    64,
		StartImmediately: false,
		Logger:           zerolog.Nop(),
		Metrics:          metrics.NewNoopProvider(),
		Delegate:         nil,
	}
}

// validateConfig performs lightweight invariants checks.
func validateConfig(cfg *config) error {
	if cfg.Metrics == nil {
		return errorc.With(ErrInvalidConfig, errorc.String("metrics", "provider must not be nil"))
	}
	return nil
}

// Option configures a Scheduler. Use New(ctx, helper, opts...) to construct
// one via options. Options return an error on invalid input instead of
// panicking.
type Option func(*config) error

// WithFixedFetchPool caps fetch concurrency with a fixed-size worker pool of
// the given capacity (must be > 0).
func WithFixedFetchPool(n uint) Option {
	return func(cfg *config) error {
		if n == 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("option", "WithFixedFetchPool requires n > 0"))
		}
		cfg.FetchPoolSize = n
		return nil
	}
}

// WithQueueCapacity sets the coordination work channel buffer (default 64).
func WithQueueCapacity(n uint) Option {
	return func(cfg *config) error { cfg.QueueCapacity = n; return nil }
}

// WithStartImmediately starts the scheduler inside New.
func WithStartImmediately() Option {
	return func(cfg *config) error { cfg.StartImmediately = true; return nil }
}

// WithLogger attaches a zerolog logger. The scheduler never writes to the
// global logger.
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *config) error { cfg.Logger = l; return nil }
}

// WithMetrics attaches a metrics provider for the scheduler's instruments.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("option", "WithMetrics requires a non-nil provider"))
		}
		cfg.Metrics = p
		return nil
	}
}

// WithDelegate attaches the delegate notified of load lifecycle events.
// Its type parameters must match the Scheduler's; New reports a mismatch as
// ErrInvalidConfig.
func WithDelegate[T comparable, D any](d Delegate[T, D]) Option {
	return func(cfg *config) error {
		if d == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("option", "WithDelegate requires a non-nil delegate"))
		}
		cfg.Delegate = d
		return nil
	}
}
