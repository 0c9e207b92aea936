package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	requestsTotal   *prometheus.CounterVec
	connectorErrors *prometheus.CounterVec
	cacheEvents     *prometheus.CounterVec
	answerLatency   *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		requestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aurora_chat_requests_total",
				Help: "Total chat requests by response status",
			},
			[]string{"status"},
		),
		connectorErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aurora_connector_errors_total",
				Help: "Upstream connector failures absorbed into defaults",
			},
			[]string{"connector"},
		),
		cacheEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aurora_cache_events_total",
				Help: "Cache hits and misses by cache name",
			},
			[]string{"cache", "event"},
		),
		answerLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aurora_answer_duration_seconds",
				Help:    "Answer generation duration by mode (model, heuristic, fallback)",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"mode"},
		),
	}
}

// RecordRequest records one chat request outcome.
func (r *Recorder) RecordRequest(status string) {
	r.requestsTotal.WithLabelValues(status).Inc()
}

// RecordConnectorError records an absorbed connector failure.
func (r *Recorder) RecordConnectorError(connector string) {
	r.connectorErrors.WithLabelValues(connector).Inc()
}

// RecordCacheEvent records a cache hit or miss.
func (r *Recorder) RecordCacheEvent(cache, event string) {
	r.cacheEvents.WithLabelValues(cache, event).Inc()
}

// RecordAnswerLatency records answer generation latency in seconds.
func (r *Recorder) RecordAnswerLatency(mode string, seconds float64) {
	r.answerLatency.WithLabelValues(mode).Observe(seconds)
}
