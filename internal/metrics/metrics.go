package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSuccess labels renders that produced a frame.
	OutcomeSuccess = "success"
	// OutcomeError labels renders that failed to acquire a drawable or draw into it.
	OutcomeError = "error"
)

var (
	ticksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "logistics_pulse",
			Name:      "stream_ticks_total",
			Help:      "Total number of simulated stream ticks that replaced the snapshot.",
		},
	)

	tickDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "logistics_pulse",
			Name:      "stream_tick_seconds",
			Help:      "Time spent computing and fanning out one snapshot replacement.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	alertFiring = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "logistics_pulse",
			Name:      "alert_firing",
			Help:      "Whether a threshold rule fires on the current snapshot (1) or not (0).",
		},
		[]string{"rule"},
	)

	feedbackLogSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "logistics_pulse",
			Name:      "feedback_log_entries",
			Help:      "Number of entries in the current feedback log.",
		},
	)

	chartRendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "logistics_pulse",
			Name:      "chart_renders_total",
			Help:      "Chart renderer constructions, partitioned by chart and outcome.",
		},
		[]string{"chart", "outcome"},
	)

	chartDisposalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "logistics_pulse",
			Name:      "chart_disposals_total",
			Help:      "Chart renderer disposals, partitioned by chart.",
		},
		[]string{"chart"},
	)

	liveRenderers = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "logistics_pulse",
			Name:      "chart_live_renderers",
			Help:      "Renderer resources currently holding a drawable, per chart.",
		},
		[]string{"chart"},
	)

	watchStreams = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "logistics_pulse",
			Name:      "watch_streams",
			Help:      "Open WatchDashboard streams.",
		},
	)
)

// Register attaches the collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		ticksTotal,
		tickDurationSeconds,
		alertFiring,
		feedbackLogSize,
		chartRendersTotal,
		chartDisposalsTotal,
		liveRenderers,
		watchStreams,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveTick records one snapshot replacement driven by the simulator.
func ObserveTick(duration time.Duration, feedbackEntries int) {
	ticksTotal.Inc()
	if duration < 0 {
		duration = 0
	}
	tickDurationSeconds.Observe(duration.Seconds())
	feedbackLogSize.Set(float64(feedbackEntries))
}

// SetAlertFiring publishes the state of one threshold rule.
func SetAlertFiring(rule string, firing bool) {
	v := 0.0
	if firing {
		v = 1
	}
	alertFiring.WithLabelValues(rule).Set(v)
}

// ObserveRender counts a renderer construction attempt.
func ObserveRender(chart, outcome string) {
	label := outcome
	if label != OutcomeError {
		label = OutcomeSuccess
	}
	chartRendersTotal.WithLabelValues(chart, label).Inc()
	if label == OutcomeSuccess {
		liveRenderers.WithLabelValues(chart).Inc()
	}
}

// ObserveDispose counts a renderer disposal.
func ObserveDispose(chart string) {
	chartDisposalsTotal.WithLabelValues(chart).Inc()
	liveRenderers.WithLabelValues(chart).Dec()
}

// WatchOpened and WatchClosed track open watch streams.
func WatchOpened() { watchStreams.Inc() }

func WatchClosed() { watchStreams.Dec() }
