package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsExported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opsdash_calendar_events_exported_total",
			Help: "Total number of events written to calendar documents",
		},
		[]string{"category"}, // MEETING, TASK
	)

	EventsDecoded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opsdash_calendar_events_decoded_total",
			Help: "Total number of events read from uploaded calendar documents",
		},
		[]string{"date"}, // parsed, missing
	)

	ImportCommits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opsdash_import_commits_total",
			Help: "Total number of imported events persisted as meetings or tasks",
		},
		[]string{"kind", "result"}, // result: success, failed
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "opsdash_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "status"},
	)
)

func IncrementEventsExported(category string) {
	EventsExported.WithLabelValues(category).Inc()
}

// IncrementEventsDecoded counts one decoded event, split by whether its
// start date could be read.
func IncrementEventsDecoded(hasDate bool) {
	label := "missing"
	if hasDate {
		label = "parsed"
	}
	EventsDecoded.WithLabelValues(label).Inc()
}

func IncrementImportCommit(kind string, ok bool) {
	result := "failed"
	if ok {
		result = "success"
	}
	ImportCommits.WithLabelValues(kind, result).Inc()
}

func RecordHTTPRequestDuration(method, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, status).Observe(duration.Seconds())
}
