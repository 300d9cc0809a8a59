package bucket

import (
	"context"
	"math"
	"time"

	ctxutil "github.com/vnykmshr/finflow/pkg/common/context"
	"github.com/vnykmshr/finflow/pkg/common/errors"
)

// Acquire blocks until n tokens are available and consumes them.
func (tb *tokenBucket) Acquire(ctx context.Context, n int) error {
	if n < 1 {
		return errors.NewArgumentError("bucket", "tokens", n, "must be at least 1").
			WithHint("request one or more tokens per call")
	}

	if !tb.config.Enabled {
		return nil
	}

	if ctxutil.IsCanceled(ctx) {
		return ctx.Err()
	}

	start := tb.waitClock.Now()
	for {
		wait, ok := tb.take(n)
		if ok {
			return nil
		}

		// Deadline is checked on every pass; requests larger than the
		// capacity end up here once the remaining budget runs out.
		waited := tb.waitClock.Now().Sub(start)
		if waited < 0 {
			waited = 0
		}
		if wait > tb.config.WaitTimeout-waited {
			tb.logTimeout(n, waited)
			return &errors.TimeoutError{
				Timeout:   tb.config.WaitTimeout,
				Requested: n,
				Waited:    waited,
			}
		}

		tb.logWait(n, wait)
		if err := tb.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// sleep suspends the caller for d on the wait clock or until ctx is done.
func (tb *tokenBucket) sleep(ctx context.Context, d time.Duration) error {
	if tb.timer == nil {
		return ctxutil.Sleep(ctx, d)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-tb.timer.After(d):
		return nil
	}
}

// Status reports the current bucket state after refilling up to now.
func (tb *tokenBucket) Status() Status {
	tb.mu.Lock()
	tb.refill(tb.clock.Now())
	tokens := tb.tokens
	tb.mu.Unlock()

	return Status{
		AvailableTokens:   int(tokens / tokenUnit),
		Capacity:          tb.config.Capacity,
		RefillRate:        tb.config.RefillRate,
		Enabled:           tb.config.Enabled,
		EstimatedWaitTime: tb.refillTime(tb.capacityUnits() - tokens),
	}
}

// AvailableTokens returns the whole number of tokens currently available.
func (tb *tokenBucket) AvailableTokens() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill(tb.clock.Now())
	return int(tb.tokens / tokenUnit)
}

// Config returns the configuration the limiter was built with.
func (tb *tokenBucket) Config() Config {
	return tb.config
}

// take refills the bucket and consumes n tokens if they are available.
// Otherwise it returns how long the caller must wait for the deficit to refill.
func (tb *tokenBucket) take(n int) (time.Duration, bool) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill(tb.clock.Now())

	if int64(n) > maxCapacity {
		return time.Duration(math.MaxInt64), false
	}

	need := int64(n) * tokenUnit
	if tb.tokens >= need {
		tb.tokens -= need
		return 0, true
	}

	return tb.refillTime(need - tb.tokens), false
}

// refill adds tokens for the time elapsed since the last refill.
// MUST be called with mutex held.
func (tb *tokenBucket) refill(now time.Time) {
	elapsed := now.Sub(tb.lastRefill)
	if elapsed <= 0 {
		// Clock went backwards or no time passed; lastRefill never moves back.
		return
	}
	tb.lastRefill = now

	full := tb.capacityUnits()
	if elapsed >= tb.refillTime(full-tb.tokens) {
		tb.tokens = full
		return
	}
	tb.tokens += int64(elapsed) * int64(tb.config.RefillRate)
}

func (tb *tokenBucket) capacityUnits() int64 {
	return int64(tb.config.Capacity) * tokenUnit
}

// refillTime returns how long the bucket needs to accumulate units,
// rounded up so a positive deficit never yields a zero wait.
func (tb *tokenBucket) refillTime(units int64) time.Duration {
	if units <= 0 {
		return 0
	}
	rate := int64(tb.config.RefillRate)
	return time.Duration((units + rate - 1) / rate)
}

func (tb *tokenBucket) logWait(n int, wait time.Duration) {
	if tb.logger == nil {
		return
	}
	tb.waitLog.Do(func() {
		tb.logger.Debug("msg", "Waiting for rate limit tokens",
			"requested", n,
			"wait", wait.String(),
			"capacity", tb.config.Capacity,
			"refill_rate", tb.config.RefillRate)
	})
}

func (tb *tokenBucket) logTimeout(n int, waited time.Duration) {
	if tb.logger == nil {
		return
	}
	tb.timeoutLog.Do(func() {
		tb.logger.Warn("msg", "Rate limit wait timed out",
			"requested", n,
			"waited", waited.String(),
			"wait_timeout", tb.config.WaitTimeout.String(),
			"capacity", tb.config.Capacity)
	})
}
