package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/lixenwraith/log"

	"github.com/vnykmshr/finflow/pkg/common/errors"
	"github.com/vnykmshr/finflow/pkg/common/validation"
	"github.com/vnykmshr/finflow/pkg/metrics"
	"github.com/vnykmshr/finflow/pkg/ratelimit/bucket"
)

// Registry maps data source names to their own token bucket limiters.
// Each source is throttled independently; draining one never affects another.
type Registry struct {
	mu       sync.RWMutex
	limiters map[string]bucket.Limiter

	logger  *log.Logger
	clock   bucket.Clock
	metrics *metrics.Registry
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger handed to every limiter and used for registry events.
func WithLogger(logger *log.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithClock sets the clock used by limiters that do not bring their own.
func WithClock(clock bucket.Clock) Option {
	return func(r *Registry) {
		r.clock = clock
	}
}

// WithMetrics instruments every registered limiter, labelled by source name.
func WithMetrics(config metrics.Config) Option {
	return func(r *Registry) {
		if !config.Enabled {
			r.metrics = nil
			return
		}
		r.metrics = config.Resolve()
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		limiters: make(map[string]bucket.Limiter),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewFromConfig creates a registry with one limiter per configured source.
func NewFromConfig(config *FileConfig, opts ...Option) (*Registry, error) {
	if config == nil {
		return nil, errors.NewValidationError("registry", "config", nil, "cannot be nil")
	}

	r := New(opts...)
	for _, source := range config.SourceNames() {
		cfg, err := config.Sources[source].BucketConfig()
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", source, err)
		}
		if err := r.Register(source, cfg); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register creates a limiter for source from config.
// Registering the same source twice returns ErrDuplicateSource.
func (r *Registry) Register(source string, config bucket.Config) error {
	if err := validation.ValidateNotEmpty("registry", "source", source); err != nil {
		return err
	}
	if config.Clock == nil {
		config.Clock = r.clock
	}
	if config.Logger == nil {
		config.Logger = r.logger
	}

	limiter, err := bucket.New(config)
	if err != nil {
		return fmt.Errorf("source %q: %w", source, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Instrumenting publishes the tokens gauge, so it must not happen for a
	// rejected duplicate.
	if _, exists := r.limiters[source]; exists {
		return fmt.Errorf("%w: %q", errors.ErrDuplicateSource, source)
	}
	if r.metrics != nil {
		limiter = bucket.Instrument(limiter, source, r.metrics)
	}
	r.limiters[source] = limiter

	if r.logger != nil {
		r.logger.Info("msg", "Rate limiter registered",
			"source", source,
			"capacity", config.Capacity,
			"refill_rate", config.RefillRate,
			"enabled", config.Enabled,
			"wait_timeout", config.WaitTimeout.String())
	}
	return nil
}

// Limiter returns the limiter registered for source.
func (r *Registry) Limiter(source string) (bucket.Limiter, error) {
	r.mu.RLock()
	limiter, ok := r.limiters[source]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", errors.ErrUnknownSource, source)
	}
	return limiter, nil
}

// Acquire takes n tokens from the limiter registered for source.
func (r *Registry) Acquire(ctx context.Context, source string, n int) error {
	limiter, err := r.Limiter(source)
	if err != nil {
		return err
	}
	return limiter.Acquire(ctx, n)
}

// Do acquires n tokens for source and then runs fn, the guarded outbound call.
// fn is not called when admission fails.
func (r *Registry) Do(ctx context.Context, source string, n int, fn func(context.Context) error) error {
	if fn == nil {
		return errors.NewArgumentError("registry", "fn", nil, "cannot be nil")
	}
	if err := r.Acquire(ctx, source, n); err != nil {
		return err
	}
	return fn(ctx)
}

// Status reports the state of the limiter registered for source.
func (r *Registry) Status(source string) (bucket.Status, error) {
	limiter, err := r.Limiter(source)
	if err != nil {
		return bucket.Status{}, err
	}
	return limiter.Status(), nil
}

// Snapshot reports the state of every registered limiter.
func (r *Registry) Snapshot() map[string]bucket.Status {
	r.mu.RLock()
	limiters := make(map[string]bucket.Limiter, len(r.limiters))
	for source, limiter := range r.limiters {
		limiters[source] = limiter
	}
	r.mu.RUnlock()

	snapshot := make(map[string]bucket.Status, len(limiters))
	for source, limiter := range limiters {
		snapshot[source] = limiter.Status()
	}
	return snapshot
}

// Sources returns the registered source names in sorted order.
func (r *Registry) Sources() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sources := make([]string, 0, len(r.limiters))
	for source := range r.limiters {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	return sources
}
