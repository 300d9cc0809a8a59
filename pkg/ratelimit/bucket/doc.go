/*
Package bucket provides a token bucket rate limiter for outbound calls to a
single data source.

The bucket starts full. Tokens accumulate continuously at RefillRate per
second up to Capacity, so short gaps between calls earn fractional credit that
is never lost. Acquire consumes tokens immediately when enough are present and
otherwise sleeps until the deficit has refilled.

Basic usage:

	limiter, err := bucket.New(bucket.Config{
		Capacity:    5,
		RefillRate:  5,
		Enabled:     true,
		WaitTimeout: 30 * time.Second,
	})
	if err != nil {
		return err
	}

	if err := limiter.Acquire(ctx, 1); err != nil {
		return err
	}
	resp, err := client.Get(url)

Errors:

  - n < 1 returns a *errors.ValidationError wrapping errors.ErrInvalidArgument.
  - A wait that cannot finish within WaitTimeout returns *errors.TimeoutError.
    The limiter predicts this and fails before sleeping. Requests larger than
    Capacity can never be served and always end this way.
  - Cancelling ctx returns ctx.Err().

Timeouts leave the bucket untouched; tokens are consumed only on success.

A disabled limiter (Enabled false) admits every request immediately and
reports a full bucket.

Metrics:

	limiter, err := bucket.NewWithMetrics(config, "quotes", metrics.DefaultConfig())

records requests, admissions, timeouts, wait durations and available tokens
under the limiter_name label.
*/
package bucket
