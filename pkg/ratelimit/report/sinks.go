package report

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/lixenwraith/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/finflow/pkg/metrics"
)

func sortedSources(snapshot Snapshot) []string {
	names := make([]string, 0, len(snapshot.Sources))
	for name := range snapshot.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LogSink writes one structured log line per source.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a sink logging to logger. A nil logger discards reports.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Name implements Sink.
func (s *LogSink) Name() string { return "log" }

// Report implements Sink.
func (s *LogSink) Report(_ context.Context, snapshot Snapshot) error {
	if s.logger == nil {
		return nil
	}

	if len(snapshot.Sources) == 0 {
		s.logger.Warn("msg", "No rate limiters in status report",
			"component", "status_reporter")
		return nil
	}

	for _, name := range sortedSources(snapshot) {
		status := snapshot.Sources[name]
		s.logger.Info("msg", "Rate limiter status",
			"component", "status_reporter",
			"source", name,
			"available_tokens", status.AvailableTokens,
			"capacity", status.Capacity,
			"refill_rate", status.RefillRate,
			"enabled", status.Enabled,
			"estimated_wait_ms", status.EstimatedWaitTimeMs())
	}
	return nil
}

// RedisSink publishes each source's status as a Redis hash so other processes
// can observe limiter state. It only writes; limiter state is never restored
// from Redis.
type RedisSink struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// RedisOption configures a RedisSink.
type RedisOption func(*RedisSink)

// WithKeyPrefix sets the key prefix. Keys are "<prefix>:<source>".
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisSink) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

// WithTTL sets how long a published status survives without a refresh.
// Zero keeps keys forever.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisSink) {
		s.ttl = ttl
	}
}

// NewRedisSink creates a sink writing through client.
func NewRedisSink(client redis.UniversalClient, opts ...RedisOption) *RedisSink {
	s := &RedisSink{
		client: client,
		prefix: "finflow:ratelimit:status",
		ttl:    5 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Sink.
func (s *RedisSink) Name() string { return "redis" }

// Key returns the hash key used for source.
func (s *RedisSink) Key(source string) string {
	return s.prefix + ":" + source
}

// Report implements Sink.
func (s *RedisSink) Report(ctx context.Context, snapshot Snapshot) error {
	if s.client == nil || len(snapshot.Sources) == 0 {
		return nil
	}

	reportedAt := snapshot.At.UTC().Format(time.RFC3339Nano)

	pipe := s.client.Pipeline()
	for _, name := range sortedSources(snapshot) {
		status := snapshot.Sources[name]
		key := s.Key(name)
		pipe.HSet(ctx, key, map[string]any{
			"available_tokens":  status.AvailableTokens,
			"capacity":          status.Capacity,
			"refill_rate":       status.RefillRate,
			"enabled":           status.Enabled,
			"estimated_wait_ms": status.EstimatedWaitTimeMs(),
			"reported_at":       reportedAt,
		})
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
	}

	_, err := pipe.Exec(ctx)
	return err
}

// GaugeSink exports the reported refill estimate and fill ratio as Prometheus gauges.
type GaugeSink struct {
	refillSeconds *prometheus.GaugeVec
	fillRatio     *prometheus.GaugeVec
}

// NewGaugeSink registers the sink's gauges with reg. A nil reg uses
// prometheus.DefaultRegisterer.
func NewGaugeSink(reg prometheus.Registerer) *GaugeSink {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	labels := []string{"limiter_name"}

	return &GaugeSink{
		refillSeconds: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metrics.Namespace,
				Subsystem: "ratelimit",
				Name:      "refill_seconds",
				Help:      "Estimated seconds until the limiter is back at capacity",
			},
			labels,
		),
		fillRatio: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metrics.Namespace,
				Subsystem: "ratelimit",
				Name:      "fill_ratio",
				Help:      "Available tokens as a fraction of capacity",
			},
			labels,
		),
	}
}

// Name implements Sink.
func (s *GaugeSink) Name() string { return "prometheus" }

// Report implements Sink.
func (s *GaugeSink) Report(_ context.Context, snapshot Snapshot) error {
	for name, status := range snapshot.Sources {
		s.refillSeconds.WithLabelValues(name).Set(status.EstimatedWaitTime.Seconds())

		ratio := 1.0
		if status.Capacity > 0 {
			ratio = float64(status.AvailableTokens) / float64(status.Capacity)
		}
		s.fillRatio.WithLabelValues(name).Set(ratio)
	}
	return nil
}
