package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the event signing pipeline. Everything is
// registered on the default registry via promauto at package init.
var (
	EventsBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_events_built_total",
		Help: "Signed events produced, by kind",
	}, []string{"kind"})

	BuildFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_build_failures_total",
		Help: "Event builds aborted by an error, by kind",
	}, []string{"kind"})

	BuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quill_build_duration_seconds",
		Help:    "Time to serialize, hash and sign one event",
		Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
	})

	VerifyResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_verify_results_total",
		Help: "Self-verification outcomes",
	}, []string{"result"})

	CodecOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_nip04_ops_total",
		Help: "NIP-04 encrypt/decrypt operations, by outcome",
	}, []string{"op", "result"})
)

// Local counters for cheap end-of-run summaries without scraping.
var (
	eventsBuiltCount  int64
	buildFailureCount int64
)

// RecordEventBuilt increments both the prometheus counter and the local
// counter.
func RecordEventBuilt(kind string) {
	EventsBuilt.WithLabelValues(kind).Inc()
	atomic.AddInt64(&eventsBuiltCount, 1)
}

// RecordBuildFailure increments both the prometheus counter and the local
// counter.
func RecordBuildFailure(kind string) {
	BuildFailures.WithLabelValues(kind).Inc()
	atomic.AddInt64(&buildFailureCount, 1)
}

// GetEventsBuiltCount returns the events produced since process start.
func GetEventsBuiltCount() int64 { return atomic.LoadInt64(&eventsBuiltCount) }

// GetBuildFailureCount returns the builds aborted since process start.
func GetBuildFailureCount() int64 { return atomic.LoadInt64(&buildFailureCount) }

// RegisterMetrics pre-registers the common label combinations so the
// series exist with a zero value before the first event is processed.
// promauto already registers the collectors themselves at init.
func RegisterMetrics() {
	for _, kind := range []string{"short_note", "direct_message", "iot", "auth"} {
		EventsBuilt.WithLabelValues(kind)
		BuildFailures.WithLabelValues(kind)
	}
	for _, op := range []string{"encrypt", "decrypt"} {
		for _, result := range []string{"ok", "error"} {
			CodecOps.WithLabelValues(op, result)
		}
	}
	for _, result := range []string{"ok", "fail"} {
		VerifyResults.WithLabelValues(result)
	}
}
