package bucket

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/vnykmshr/finflow/pkg/common/errors"
	"github.com/vnykmshr/finflow/pkg/metrics"
)

const limiterType = "token_bucket"

// MetricsLimiter wraps a Limiter with Prometheus metrics collection.
type MetricsLimiter struct {
	limiter  Limiter
	name     string
	registry atomic.Pointer[metrics.Registry] // nil while disabled
}

var (
	_ Limiter                = (*MetricsLimiter)(nil)
	_ metrics.Instrumentable = (*MetricsLimiter)(nil)
)

// NewWithMetrics creates a new token bucket limiter reporting under name.
// When metricsConfig is disabled the plain limiter is returned.
func NewWithMetrics(config Config, name string, metricsConfig metrics.Config) (Limiter, error) {
	base, err := New(config)
	if err != nil {
		return nil, err
	}

	if !metricsConfig.Enabled {
		return base, nil
	}

	return Instrument(base, name, metricsConfig.Resolve()), nil
}

// Instrument wraps an existing limiter with metrics recorded in registry.
func Instrument(limiter Limiter, name string, registry *metrics.Registry) *MetricsLimiter {
	ml := &MetricsLimiter{
		limiter: limiter,
		name:    name,
	}
	if registry != nil {
		ml.registry.Store(registry)
		registry.RateLimitTokens.WithLabelValues(limiterType, name).Set(float64(limiter.AvailableTokens()))
	}
	return ml
}

// Acquire blocks until n tokens are available and records the outcome.
func (ml *MetricsLimiter) Acquire(ctx context.Context, n int) error {
	reg := ml.registry.Load()
	if reg == nil {
		return ml.limiter.Acquire(ctx, n)
	}

	start := time.Now()
	err := ml.limiter.Acquire(ctx, n)
	if errors.IsValidationError(err) {
		return err
	}

	reg.RateLimitRequests.WithLabelValues(limiterType, ml.name).Add(float64(n))
	reg.RateLimitWaitTime.WithLabelValues(limiterType, ml.name).Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		reg.RateLimitAllowed.WithLabelValues(limiterType, ml.name).Add(float64(n))
	case errors.IsTimeout(err):
		reg.RateLimitTimeouts.WithLabelValues(limiterType, ml.name).Inc()
	}

	reg.RateLimitTokens.WithLabelValues(limiterType, ml.name).Set(float64(ml.limiter.AvailableTokens()))

	return err
}

// Status reports the wrapped limiter's state and updates the tokens gauge.
func (ml *MetricsLimiter) Status() Status {
	status := ml.limiter.Status()

	if reg := ml.registry.Load(); reg != nil {
		reg.RateLimitTokens.WithLabelValues(limiterType, ml.name).Set(float64(status.AvailableTokens))
	}

	return status
}

// AvailableTokens returns the number of tokens currently available.
func (ml *MetricsLimiter) AvailableTokens() int {
	return ml.limiter.AvailableTokens()
}

// Config returns the wrapped limiter's configuration.
func (ml *MetricsLimiter) Config() Config {
	return ml.limiter.Config()
}

// Name returns the limiter_name label value.
func (ml *MetricsLimiter) Name() string {
	return ml.name
}

// EnableMetrics enables metrics collection.
func (ml *MetricsLimiter) EnableMetrics(config metrics.Config) error {
	if !config.Enabled {
		ml.DisableMetrics()
		return nil
	}
	ml.registry.Store(config.Resolve())
	return nil
}

// DisableMetrics disables metrics collection.
func (ml *MetricsLimiter) DisableMetrics() {
	ml.registry.Store(nil)
}

// MetricsEnabled returns true if metrics are currently enabled.
func (ml *MetricsLimiter) MetricsEnabled() bool {
	return ml.registry.Load() != nil
}
