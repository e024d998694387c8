package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/wastar"
)

func TestPromObserver_RecordsProgress(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := NewPromObserver(reg, "test")
	require.NoError(t, err)

	o.Observe(wastar.Progress{Event: wastar.EventInterval, Expansions: 10, OpenSize: 4, Elapsed: 2 * time.Second})
	o.Observe(wastar.Progress{Event: wastar.EventStopped, Expansions: 12, OpenSize: 3, Elapsed: 3 * time.Second})

	assert.Equal(t, 12.0, testutil.ToFloat64(o.Expansions))
	assert.Equal(t, 3.0, testutil.ToFloat64(o.OpenSize))
	assert.Equal(t, 3.0, testutil.ToFloat64(o.Elapsed))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.Events.WithLabelValues("interval")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.Events.WithLabelValues("stopped")))
}

func TestPromObserver_DuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromObserver(reg, "a")
	require.NoError(t, err)
	_, err = NewPromObserver(reg, "a")
	assert.Error(t, err)
}

func TestPromObserver_WiredIntoPlanner(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := NewPromObserver(reg, "planner")
	require.NoError(t, err)

	planner, err := wastar.New[int, int](wastar.WithObserver(o), wastar.WithProgressInterval(1))
	require.NoError(t, err)
	d := wastar.Funcs[int, int]{
		Sources: []int{0},
		SuccessorsFunc: func(s int) []wastar.Edge[int, int] {
			if s >= 4 {
				return nil
			}
			return []wastar.Edge[int, int]{{To: s + 1, Cost: 1}}
		},
	}
	require.NoError(t, planner.Init(d, true))
	stats, err := planner.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, wastar.Exhausted, stats.Status)

	assert.Equal(t, 5.0, testutil.ToFloat64(o.Events.WithLabelValues("interval")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.Events.WithLabelValues("exhausted")))
	assert.Equal(t, 5.0, testutil.ToFloat64(o.Expansions))
	assert.Equal(t, 0.0, testutil.ToFloat64(o.OpenSize))
}

func TestLogObserver_WritesStructuredLines(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	o := NewLogObserver(logger)

	o.Observe(wastar.Progress{Event: wastar.EventInterval, Expansions: 100, OpenSize: 7, Elapsed: time.Second})
	o.Observe(wastar.Progress{Event: wastar.EventStored, Expansions: 120, OpenSize: 9})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

	assert.Equal(t, "debug", first["level"])
	assert.Equal(t, "interval", first["event"])
	assert.Equal(t, 100.0, first["expanded"])
	assert.Equal(t, 7.0, first["open"])

	assert.Equal(t, "info", second["level"])
	assert.Equal(t, "stored a path", second["message"])
}

func TestMulti_FansOut(t *testing.T) {
	var a, b int
	m := Multi{
		wastar.ObserverFunc(func(wastar.Progress) { a++ }),
		nil,
		wastar.ObserverFunc(func(wastar.Progress) { b++ }),
	}
	m.Observe(wastar.Progress{})
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}
