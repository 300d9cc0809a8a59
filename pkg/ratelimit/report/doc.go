// Package report periodically publishes rate limiter status.
//
// A Reporter polls a StatusSource, usually a *registry.Registry, on a cron
// schedule and hands every snapshot to its sinks: LogSink writes structured
// log lines, RedisSink mirrors each source into a Redis hash for dashboards in
// other processes, and GaugeSink exports refill estimates to Prometheus.
//
//	r, err := report.New(reg, "@every 30s",
//		report.WithSinks(report.NewLogSink(logger), report.NewRedisSink(rdb)),
//		report.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	_ = r.Start()
//	defer func() { <-r.Stop().Done() }()
package report
