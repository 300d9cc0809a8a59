package report

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/lixenwraith/log"
	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/finflow/pkg/common/errors"
	"github.com/vnykmshr/finflow/pkg/ratelimit/bucket"
)

// StatusSource provides a status snapshot of named limiters.
// *registry.Registry satisfies it.
type StatusSource interface {
	Snapshot() map[string]bucket.Status
}

// Snapshot is one reporting round.
type Snapshot struct {
	At      time.Time
	Sources map[string]bucket.Status
}

// Sink receives status snapshots.
type Sink interface {
	// Name identifies the sink in errors and logs.
	Name() string

	// Report publishes the snapshot.
	Report(ctx context.Context, snapshot Snapshot) error
}

// DefaultSchedule reports every 30 seconds.
const DefaultSchedule = "@every 30s"

// DefaultTimeout bounds a single scheduled reporting round.
const DefaultTimeout = 5 * time.Second

// Reporter periodically publishes limiter status to a set of sinks.
type Reporter struct {
	source   StatusSource
	schedule string
	sinks    []Sink
	timeout  time.Duration
	clock    bucket.Clock
	logger   *log.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithSinks adds sinks to the reporter.
func WithSinks(sinks ...Sink) Option {
	return func(r *Reporter) {
		r.sinks = append(r.sinks, sinks...)
	}
}

// WithTimeout bounds each scheduled reporting round.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Reporter) {
		r.timeout = timeout
	}
}

// WithClock sets the clock used to timestamp snapshots.
func WithClock(clock bucket.Clock) Option {
	return func(r *Reporter) {
		r.clock = clock
	}
}

// WithLogger sets the logger used for scheduling and sink failures.
func WithLogger(logger *log.Logger) Option {
	return func(r *Reporter) {
		r.logger = logger
	}
}

// New creates a reporter for source. schedule accepts standard five-field cron
// expressions and descriptors such as "@hourly" or "@every 30s"; an empty
// schedule uses DefaultSchedule.
func New(source StatusSource, schedule string, opts ...Option) (*Reporter, error) {
	if source == nil {
		return nil, errors.NewValidationError("report", "source", nil, "cannot be nil")
	}
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, errors.NewValidationError("report", "schedule", schedule, err.Error()).
			WithHint("use a cron expression like \"*/5 * * * *\" or a descriptor like \"@every 30s\"")
	}

	r := &Reporter{
		source:   source,
		schedule: schedule,
		timeout:  DefaultTimeout,
		clock:    bucket.SystemClock{},
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.timeout <= 0 {
		return nil, errors.NewValidationError("report", "timeout", r.timeout, "must be positive")
	}
	for i, sink := range r.sinks {
		if sink == nil {
			return nil, errors.NewValidationError("report", "sinks", i, "sink cannot be nil")
		}
	}
	return r, nil
}

// Start begins scheduled reporting. Calling Start on a running reporter is a no-op.
func (r *Reporter) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cron != nil {
		return nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(r.schedule, r.run); err != nil {
		return fmt.Errorf("%w: schedule %q: %v", errors.ErrInvalidConfiguration, r.schedule, err)
	}
	c.Start()
	r.cron = c

	if r.logger != nil {
		r.logger.Info("msg", "Status reporter started",
			"component", "status_reporter",
			"schedule", r.schedule,
			"sinks", len(r.sinks))
	}
	return nil
}

// Stop halts scheduled reporting. The returned context is done once any
// in-flight round has finished.
func (r *Reporter) Stop() context.Context {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cron == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}

	ctx := r.cron.Stop()
	r.cron = nil

	if r.logger != nil {
		r.logger.Debug("msg", "Status reporter stopped",
			"component", "status_reporter")
	}
	return ctx
}

// ReportNow takes a snapshot and publishes it to every sink. All sinks are
// attempted; their failures are joined into the returned error.
func (r *Reporter) ReportNow(ctx context.Context) error {
	snapshot := Snapshot{
		At:      r.clock.Now(),
		Sources: r.source.Snapshot(),
	}

	var errs []error
	for _, sink := range r.sinks {
		if err := sink.Report(ctx, snapshot); err != nil {
			errs = append(errs, fmt.Errorf("sink %s: %w", sink.Name(), err))
		}
	}
	return stderrors.Join(errs...)
}

func (r *Reporter) run() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.ReportNow(ctx); err != nil && r.logger != nil {
		r.logger.Warn("msg", "Status report failed",
			"component", "status_reporter",
			"error", err)
	}
}
