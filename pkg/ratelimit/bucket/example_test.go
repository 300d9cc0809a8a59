package bucket_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	fferrors "github.com/vnykmshr/finflow/pkg/common/errors"
	"github.com/vnykmshr/finflow/pkg/ratelimit/bucket"
)

// Example demonstrates basic usage of the token bucket rate limiter
func Example() {
	// 5 requests per second with a burst of 5, wait at most 2s per call
	limiter, err := bucket.New(bucket.Config{
		Capacity:    5,
		RefillRate:  5,
		Enabled:     true,
		WaitTimeout: 2 * time.Second,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create limiter: %v", err))
	}

	if err := limiter.Acquire(context.Background(), 1); err == nil {
		fmt.Println("Request admitted")
	}
	fmt.Printf("Tokens remaining: %d\n", limiter.AvailableTokens())

	// Output:
	// Request admitted
	// Tokens remaining: 4
}

// Example_burst demonstrates consuming the full capacity at once
func Example_burst() {
	limiter, err := bucket.New(bucket.Config{
		Capacity:    20,
		RefillRate:  10,
		Enabled:     true,
		WaitTimeout: time.Second,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create limiter: %v", err))
	}

	if err := limiter.Acquire(context.Background(), 20); err == nil {
		fmt.Println("Bulk download admitted (20 tokens)")
	}

	status := limiter.Status()
	fmt.Printf("Tokens: %d/%d\n", status.AvailableTokens, status.Capacity)
	fmt.Printf("Refilled in about %ds\n", status.EstimatedWaitTime.Round(time.Second)/time.Second)

	// Output:
	// Bulk download admitted (20 tokens)
	// Tokens: 0/20
	// Refilled in about 2s
}

// Example_timeout demonstrates distinguishing a slow source from a misconfigured call
func Example_timeout() {
	limiter, err := bucket.New(bucket.Config{
		Capacity:    1,
		RefillRate:  1,
		Enabled:     true,
		WaitTimeout: 100 * time.Millisecond,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create limiter: %v", err))
	}
	ctx := context.Background()

	_ = limiter.Acquire(ctx, 1)

	err = limiter.Acquire(ctx, 1)
	var te *fferrors.TimeoutError
	if errors.As(err, &te) {
		fmt.Printf("Timed out waiting for %d token(s), budget %v\n", te.Requested, te.Timeout)
	}

	err = limiter.Acquire(ctx, 0)
	if errors.Is(err, fferrors.ErrInvalidArgument) {
		fmt.Println("Invalid token count rejected")
	}

	// Output:
	// Timed out waiting for 1 token(s), budget 100ms
	// Invalid token count rejected
}

// Example_disabled demonstrates turning a limiter into a no-op
func Example_disabled() {
	config := bucket.DefaultConfig()
	config.Enabled = false

	limiter, err := bucket.New(config)
	if err != nil {
		panic(fmt.Sprintf("Failed to create limiter: %v", err))
	}

	err = limiter.Acquire(context.Background(), 1_000_000)
	fmt.Printf("Admitted: %v\n", err == nil)

	// Output:
	// Admitted: true
}
