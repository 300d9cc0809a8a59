/*
Package ratelimit groups the rate limiting building blocks of finflow.

  - bucket: the token bucket limiter guarding a single data source
  - registry: a keyed set of limiters, one per data source
  - report: scheduled publishing of limiter status

A token bucket holds up to Capacity tokens and regains RefillRate tokens per
second. Each outbound request consumes tokens; a caller that finds the bucket
short waits for the refill, but never longer than WaitTimeout:

	limiter, _ := bucket.New(bucket.Config{
		Capacity:    2,
		RefillRate:  1,
		Enabled:     true,
		WaitTimeout: 10 * time.Second,
	})

	if err := limiter.Acquire(ctx, 1); errors.IsTimeout(err) {
		// source is saturated; degrade or retry later
	}

Every limiter is safe for concurrent use. Waiters are not served in arrival
order: after a refill, whichever caller re-checks first takes the tokens.
*/
package ratelimit
