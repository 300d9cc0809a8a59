/*
Package registry keeps one token bucket limiter per upstream data source.

A facade client that talks to several financial data providers owns a single
Registry and calls Acquire (or Do) with the provider's name before every
outbound request. Sources never share tokens: exhausting the quotes budget
leaves fundamentals and macro untouched.

	reg := registry.New(registry.WithLogger(logger))
	_ = reg.Register("quotes", bucket.Config{Capacity: 5, RefillRate: 5, Enabled: true, WaitTimeout: 30 * time.Second})

	err := reg.Do(ctx, "quotes", 1, func(ctx context.Context) error {
		return client.FetchQuote(ctx, "AAPL")
	})

Policies can also be loaded from YAML:

	sources:
	  quotes:
	    capacity: 5
	    refill_rate: 5
	    wait_timeout: 30s
	  macro:
	    capacity: 2
	    refill_rate: 1
	    enabled: false

Unknown sources return an error wrapping errors.ErrUnknownSource; a second
registration under the same name returns errors.ErrDuplicateSource.
*/
package registry
