package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Example_basicUsage demonstrates basic metrics configuration.
func Example_basicUsage() {
	// Create a separate registry for this example
	registry := NewRegistry(prometheus.NewRegistry())

	registry.RateLimitRequests.WithLabelValues("token_bucket", "quotes").Add(10)
	registry.RateLimitAllowed.WithLabelValues("token_bucket", "quotes").Add(8)
	registry.RateLimitTimeouts.WithLabelValues("token_bucket", "quotes").Inc()

	fmt.Printf("requested: %.0f\n", testutil.ToFloat64(registry.RateLimitRequests.WithLabelValues("token_bucket", "quotes")))
	fmt.Printf("allowed: %.0f\n", testutil.ToFloat64(registry.RateLimitAllowed.WithLabelValues("token_bucket", "quotes")))
	fmt.Printf("timeouts: %.0f\n", testutil.ToFloat64(registry.RateLimitTimeouts.WithLabelValues("token_bucket", "quotes")))

	// Output:
	// requested: 10
	// allowed: 8
	// timeouts: 1
}

// Example_configuration demonstrates different metrics configurations.
func Example_configuration() {
	defaultConfig := DefaultConfig()
	fmt.Printf("Default enabled: %v\n", defaultConfig.Enabled)

	customConfig := Config{
		Enabled:  false,
		Registry: prometheus.NewRegistry(),
	}
	fmt.Printf("Custom enabled: %v\n", customConfig.Enabled)

	// Output:
	// Default enabled: true
	// Custom enabled: false
}
