/*
Package finflow provides client-side admission control for applications that
aggregate several financial data providers.

Rate Limiting (pkg/ratelimit):
  - bucket: Token bucket limiter with bursts, bounded waits and cancellation
  - registry: One independent limiter per data source, loadable from YAML
  - report: Periodic status publishing to logs, Redis and Prometheus

Support packages:
  - metrics: Prometheus instrumentation shared by all limiters
  - common/errors: Typed validation and timeout errors

Example usage:

	import (
		"github.com/vnykmshr/finflow/pkg/ratelimit/bucket"
		"github.com/vnykmshr/finflow/pkg/ratelimit/registry"
	)

	limits := registry.New()
	_ = limits.Register("quotes", bucket.Config{
		Capacity:    5,  // burst of 5
		RefillRate:  5,  // 5 requests per second
		Enabled:     true,
		WaitTimeout: 30 * time.Second,
	})

	if err := limits.Acquire(ctx, "quotes", 1); err == nil {
		// issue the request
	}
*/
package finflow
