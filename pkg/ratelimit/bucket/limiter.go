package bucket

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/lixenwraith/log"
	"golang.org/x/time/rate"

	"github.com/vnykmshr/finflow/pkg/common/errors"
	"github.com/vnykmshr/finflow/pkg/common/validation"
)

// Limiter admits units of work against a configured token rate. Callers
// invoke Acquire immediately before issuing an outbound request to the
// data source the limiter guards.
type Limiter interface {
	// Acquire blocks until n tokens are available and consumes them.
	// It returns an *errors.TimeoutError when the tokens cannot be obtained
	// within the configured WaitTimeout, an *errors.ValidationError when
	// n < 1, or ctx.Err() when ctx ends the wait first.
	Acquire(ctx context.Context, n int) error

	// Status reports the current bucket state after refilling up to now.
	Status() Status

	// AvailableTokens returns the whole number of tokens currently available.
	AvailableTokens() int

	// Config returns the configuration the limiter was built with.
	Config() Config
}

// Status is a point-in-time snapshot of a limiter.
type Status struct {
	AvailableTokens int
	Capacity        int
	RefillRate      int
	Enabled         bool

	// EstimatedWaitTime is the time needed to refill the bucket to capacity
	// from its current level.
	EstimatedWaitTime time.Duration
}

// EstimatedWaitTimeMs returns EstimatedWaitTime in whole milliseconds, rounded up.
func (s Status) EstimatedWaitTimeMs() int64 {
	ms := s.EstimatedWaitTime / time.Millisecond
	if s.EstimatedWaitTime%time.Millisecond != 0 {
		ms++
	}
	return int64(ms)
}

// Clock provides the current time. It can be mocked for testing.
type Clock interface {
	Now() time.Time
}

// Timer is implemented by clocks that can also drive waits. When Config.Clock
// implements Timer, Acquire sleeps and measures its WaitTimeout on that clock.
// Otherwise waits use real timers and WaitTimeout is measured on wall time,
// while refills still follow Config.Clock.
type Timer interface {
	After(d time.Duration) <-chan time.Time
}

// SystemClock implements Clock using the system time.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Config holds configuration options for creating a new Limiter.
type Config struct {
	// Capacity is the maximum number of tokens the bucket holds.
	Capacity int

	// RefillRate is the number of tokens added per second.
	RefillRate int

	// Enabled turns the limiter into a no-op when false.
	Enabled bool

	// WaitTimeout bounds how long a single Acquire call may be suspended.
	WaitTimeout time.Duration

	// Clock provides the current time. If nil, SystemClock is used.
	Clock Clock

	// Logger receives wait and timeout events. If nil, nothing is logged.
	Logger *log.Logger
}

// DefaultConfig returns a configuration suitable for a typical third-party API:
// 10 requests per second with a burst of 10 and a 30 second wait budget.
func DefaultConfig() Config {
	return Config{
		Capacity:    10,
		RefillRate:  10,
		Enabled:     true,
		WaitTimeout: 30 * time.Second,
		Clock:       SystemClock{},
	}
}

// Validate checks that capacity, refill rate and wait timeout are positive.
func (c Config) Validate() error {
	if err := validation.ValidatePositive("bucket", "capacity", c.Capacity); err != nil {
		return err
	}
	if int64(c.Capacity) > maxCapacity {
		return errors.NewValidationError("bucket", "capacity", c.Capacity, "too large").
			WithHint(fmt.Sprintf("capacity must not exceed %d", maxCapacity))
	}
	if err := validation.ValidatePositive("bucket", "refill_rate", c.RefillRate); err != nil {
		return err
	}
	return validation.ValidatePositiveDuration("bucket", "wait_timeout", c.WaitTimeout)
}

// tokenUnit is the fixed-point scale of the token count. With one token
// worth one second of units, a refill adds exactly elapsed nanoseconds times
// RefillRate units, so many short refills never lose fractional tokens.
const tokenUnit = int64(time.Second)

// maxCapacity keeps the fixed-point token count inside int64.
const maxCapacity = math.MaxInt64 / tokenUnit

// logInterval caps how often a single limiter logs waits and timeouts.
const logInterval = 5 * time.Second

// tokenBucket implements the Limiter interface using a token bucket algorithm.
type tokenBucket struct {
	config Config
	clock  Clock
	logger *log.Logger

	// waitClock measures the wait budget; timer is nil when waits use real timers.
	waitClock Clock
	timer     Timer

	mu         sync.Mutex
	tokens     int64 // fixed point, tokenUnit per token
	lastRefill time.Time

	waitLog    rate.Sometimes
	timeoutLog rate.Sometimes
}

// New creates a token bucket limiter from config. The bucket starts full.
// It returns an *errors.ValidationError when the config is invalid.
func New(config Config) (Limiter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Clock == nil {
		config.Clock = SystemClock{}
	}

	tb := &tokenBucket{
		config:     config,
		clock:      config.Clock,
		logger:     config.Logger,
		waitClock:  SystemClock{},
		tokens:     int64(config.Capacity) * tokenUnit,
		lastRefill: config.Clock.Now(),
		waitLog:    rate.Sometimes{Interval: logInterval},
		timeoutLog: rate.Sometimes{Interval: logInterval},
	}
	if timer, ok := config.Clock.(Timer); ok {
		tb.waitClock = config.Clock
		tb.timer = timer
	}
	return tb, nil
}
