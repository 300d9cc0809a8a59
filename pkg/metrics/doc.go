// Package metrics provides Prometheus instrumentation for finflow components.
//
// # Quick Start
//
// Wrap a limiter with the metrics-enabled constructor:
//
//	limiter, err := bucket.NewWithMetrics(bucket.DefaultConfig(), "quotes", metrics.DefaultConfig())
//
// or let the registry instrument every source it builds:
//
//	reg := registry.New(registry.WithMetrics(metrics.DefaultConfig()))
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//
// # Available Metrics
//
//   - finflow_ratelimit_requests_total: Tokens requested
//   - finflow_ratelimit_allowed_total: Tokens granted
//   - finflow_ratelimit_timeouts_total: Acquire calls that timed out
//   - finflow_ratelimit_wait_duration_seconds: Time spent inside Acquire
//   - finflow_ratelimit_tokens_available: Tokens currently available
//
// All metrics carry the labels limiter_type ("token_bucket") and
// limiter_name (the data source the limiter guards).
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation, e.g. in tests:
//
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: prometheus.NewRegistry(),
//	}
package metrics
