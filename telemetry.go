package wastar

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/pdrpinto/wastar"

var (
	runLatency      metric.Float64Histogram
	runsTotal       metric.Int64Counter
	expansionsTotal metric.Int64Counter
	bookmarksTotal  metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		meter := otel.Meter(instrumentationName)
		var err error

		runLatency, err = meter.Float64Histogram(
			"wastar_run_duration_seconds",
			metric.WithDescription("Duration of planner runs"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		runsTotal, err = meter.Int64Counter(
			"wastar_runs_total",
			metric.WithDescription("Total number of planner runs"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		expansionsTotal, err = meter.Int64Counter(
			"wastar_expansions_total",
			metric.WithDescription("Total number of expanded states"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		bookmarksTotal, err = meter.Int64Counter(
			"wastar_bookmarks_total",
			metric.WithDescription("Total number of recorded bookmarks"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordRunMetrics adds one run to the counters. recorded is the number of
// bookmarks appended by this run; stats.Bookmarks also counts earlier runs.
func recordRunMetrics(ctx context.Context, stats Stats, recorded int) {
	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("status", stats.Status.String()))

	runLatency.Record(ctx, stats.Elapsed.Seconds(), attrs)
	runsTotal.Add(ctx, 1, attrs)
	expansionsTotal.Add(ctx, int64(stats.Expansions))
	bookmarksTotal.Add(ctx, int64(recorded))
}

// startRunSpan is evaluated per run so a provider installed after import
// is picked up.
func startRunSpan(ctx context.Context, seeds int, epsilon float64) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, "Planner.Run",
		trace.WithAttributes(
			attribute.Int("wastar.seed_count", seeds),
			attribute.Float64("wastar.epsilon", epsilon),
		),
	)
}

func setRunSpanResult(span trace.Span, stats Stats, err error) {
	span.SetAttributes(
		attribute.String("wastar.status", stats.Status.String()),
		attribute.Int("wastar.expansions", stats.Expansions),
		attribute.Int("wastar.bookmarks", stats.Bookmarks),
		attribute.Int("wastar.open_size", stats.OpenSize),
		attribute.Int64("wastar.elapsed_ms", stats.Elapsed.Milliseconds()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}

func elapsedSince(clock func() time.Time, start time.Time) time.Duration {
	if start.IsZero() {
		return 0
	}
	return clock().Sub(start)
}
