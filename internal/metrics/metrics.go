// Package metrics exposes Prometheus collectors for the detection
// pipeline and the replay service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordsLoaded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sentinel_records_loaded_total",
		Help: "Total records decoded from dataset files, labelled by stream.",
	}, []string{"stream"})

	EventsDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sentinel_events_detected_total",
		Help: "Total anomaly events emitted, labelled by event ID.",
	}, []string{"event_id"})

	RuleFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sentinel_rule_failures_total",
		Help: "Total rule evaluations that failed, labelled by event ID.",
	}, []string{"event_id"})

	RuleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sentinel_rule_duration_ms",
		Help:    "Per-rule evaluation latency in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	}, []string{"event_id"})

	ReplayClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sentinel_replay_clients",
		Help: "Currently connected replay clients.",
	})

	ReplayRecordsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sentinel_replay_records_sent_total",
		Help: "Total records streamed to replay clients.",
	})
)
