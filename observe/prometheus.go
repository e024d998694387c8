package observe

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdrpinto/wastar"
)

const metricsNamespace = "wastar"

// PromObserver exports progress reports as Prometheus metrics.
type PromObserver struct {
	Expansions prometheus.Gauge
	OpenSize   prometheus.Gauge
	Elapsed    prometheus.Gauge
	// Events counts reports by event label.
	Events *prometheus.CounterVec
}

// NewPromObserver creates the metrics and registers them with reg. The
// planner label distinguishes several planners sharing a registry.
func NewPromObserver(reg prometheus.Registerer, planner string) (*PromObserver, error) {
	labels := prometheus.Labels{"planner": planner}
	o := &PromObserver{
		Expansions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Subsystem:   "progress",
			Name:        "expansions",
			Help:        "States expanded in the current run.",
			ConstLabels: labels,
		}),
		OpenSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Subsystem:   "progress",
			Name:        "open_size",
			Help:        "Number of states in the open list.",
			ConstLabels: labels,
		}),
		Elapsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Subsystem:   "progress",
			Name:        "elapsed_seconds",
			Help:        "Time since the current run started.",
			ConstLabels: labels,
		}),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Subsystem:   "progress",
			Name:        "events_total",
			Help:        "Progress reports by event.",
			ConstLabels: labels,
		}, []string{"event"}),
	}
	for _, collector := range []prometheus.Collector{o.Expansions, o.OpenSize, o.Elapsed, o.Events} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Observe sets the gauges from progress and counts its event.
func (o *PromObserver) Observe(progress wastar.Progress) {
	o.Expansions.Set(float64(progress.Expansions))
	o.OpenSize.Set(float64(progress.OpenSize))
	o.Elapsed.Set(progress.Elapsed.Seconds())
	o.Events.WithLabelValues(progress.Event.String()).Inc()
}
