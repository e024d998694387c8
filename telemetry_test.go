package wastar_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/pdrpinto/wastar"
)

func TestRun_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = provider.Shutdown(context.Background())
	})

	planner := newPlanner[P, int](t, wastar.WithEpsilon(1.5))
	plan(t, planner, openGrid(4, 4, P{0, 0}, P{3, 3}))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "Planner.Run", span.Name())
	assert.Equal(t, codes.Ok, span.Status().Code)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "stopped", attrs["wastar.status"].AsString())
	assert.Equal(t, int64(1), attrs["wastar.seed_count"].AsInt64())
	assert.Equal(t, 1.5, attrs["wastar.epsilon"].AsFloat64())
	assert.Equal(t, int64(1), attrs["wastar.bookmarks"].AsInt64())
	assert.Positive(t, attrs["wastar.expansions"].AsInt64())
}

func TestRun_SpanRecordsCancellation(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = provider.Shutdown(context.Background())
	})

	planner := newPlanner[P, int](t)
	require.NoError(t, planner.Init(openGrid(4, 4, P{0, 0}, P{3, 3}), true))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := planner.Run(ctx)
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

type runTotals struct {
	runs, expansions, bookmarks int64
	latencyCount                uint64
}

func collectTotals(t *testing.T, reader *sdkmetric.ManualReader) runTotals {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var totals runTotals
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				var sum int64
				for _, dp := range data.DataPoints {
					sum += dp.Value
				}
				switch m.Name {
				case "wastar_runs_total":
					totals.runs += sum
				case "wastar_expansions_total":
					totals.expansions += sum
				case "wastar_bookmarks_total":
					totals.bookmarks += sum
				}
			case metricdata.Histogram[float64]:
				if m.Name == "wastar_run_duration_seconds" {
					for _, dp := range data.DataPoints {
						totals.latencyCount += dp.Count
					}
				}
			}
		}
	}
	return totals
}

func TestRun_CountersAcrossResumedRuns(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	before := collectTotals(t, reader)

	edges := map[int][]wastar.Edge[int, int]{
		0: {{To: 1, Cost: 1}, {To: 3, Cost: 2}},
		1: {{To: 2, Cost: 1}},
	}
	planner := newPlanner[int, int](t)
	require.NoError(t, planner.Init(chain([]int{0}, edges, func(s int) bool { return s%2 == 1 }), true))

	// stop, resumed stop, then exhausted
	statuses := make([]wastar.Status, 0, 3)
	for i := 0; i < 3; i++ {
		stats, err := planner.Run(context.Background())
		require.NoError(t, err)
		statuses = append(statuses, stats.Status)
	}
	require.Equal(t, []wastar.Status{wastar.Stopped, wastar.Stopped, wastar.Exhausted}, statuses)
	require.Len(t, planner.Bookmarks(), 2)

	after := collectTotals(t, reader)
	assert.Equal(t, int64(3), after.runs-before.runs)
	assert.Equal(t, int64(3), after.expansions-before.expansions)
	assert.Equal(t, int64(2), after.bookmarks-before.bookmarks, "resumed runs count only their own bookmarks")
	assert.Equal(t, uint64(3), after.latencyCount-before.latencyCount)
}
