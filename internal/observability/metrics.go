package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for feed retrieval and context resolution.
type Metrics struct {
	FeedFetchDuration *prometheus.HistogramVec // labels: feed, outcome={success,error}
	FeedFetchErrors   *prometheus.CounterVec   // labels: feed
	ResolveDuration   prometheus.Histogram
	Resolutions       *prometheus.CounterVec // labels: outcome={success,error}
}

const namespace = "marine_context"

var (
	fetchBuckets   = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8}
	resolveBuckets = []float64{0.1, 0.25, 0.5, 1, 2, 4, 8}
)

func newMetrics() *Metrics {
	return &Metrics{
		FeedFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "feed_fetch_duration_seconds",
			Help:      "Duration of one upstream feed request including decoding.",
			Buckets:   fetchBuckets,
		}, []string{"feed", "outcome"}),
		FeedFetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_fetch_errors_total",
			Help:      "Feed requests that failed in transport, status or decoding.",
		}, []string{"feed"}),
		ResolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolve_duration_seconds",
			Help:      "Duration of a full context resolution across all feeds.",
			Buckets:   resolveBuckets,
		}),
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Context resolutions by outcome.",
		}, []string{"outcome"}),
	}
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// means the default Prometheus registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := newMetrics()
	reg.MustRegister(
		m.FeedFetchDuration,
		m.FeedFetchErrors,
		m.ResolveDuration,
		m.Resolutions,
	)
	return m
}

// NewMetricsForTesting creates Metrics on a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
