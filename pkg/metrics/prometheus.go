package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	evaluations  *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	clampFlags   *prometheus.CounterVec
	scenarioProb *prometheus.GaugeVec
	issuersRanked prometheus.Gauge
	latency      *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		evaluations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yenmetrics_evaluations_total",
				Help: "Total evaluation cycles by result",
			},
			[]string{"result"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yenmetrics_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"kind"},
		),
		clampFlags: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yenmetrics_clamp_flags_total",
				Help: "Evaluations where a model clamped an out-of-range value",
			},
			[]string{"model"},
		),
		scenarioProb: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "yenmetrics_scenario_probability",
				Help: "Latest implied probability per policy scenario",
			},
			[]string{"scenario"},
		),
		issuersRanked: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "yenmetrics_issuers_ranked",
				Help: "Issuers ranked in the latest snapshot",
			},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "yenmetrics_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordEvaluation records the outcome of one evaluation cycle.
func (r *Recorder) RecordEvaluation(result string) {
	r.evaluations.WithLabelValues(result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordClampFlag records a boundary clamp in the named model.
func (r *Recorder) RecordClampFlag(model string) {
	r.clampFlags.WithLabelValues(model).Inc()
}

// RecordScenarioProbability records the latest implied probability.
func (r *Recorder) RecordScenarioProbability(scenario string, p float64) {
	r.scenarioProb.WithLabelValues(scenario).Set(p)
}

// RecordIssuersRanked records the issuer count in the latest snapshot.
func (r *Recorder) RecordIssuersRanked(n int) {
	r.issuersRanked.Set(float64(n))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
