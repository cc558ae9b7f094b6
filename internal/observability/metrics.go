package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for weather search.
type Metrics struct {
	// Transport metrics.
	FetchRequests *prometheus.CounterVec // labels: outcome={success,<error kind>}
	FetchDuration prometheus.Histogram

	// Search controller metrics.
	StateTransitions  *prometheus.CounterVec // labels: phase={idle,loading,success,failure}
	SupersededFetches prometheus.Counter
	DuplicateQueries  prometheus.Counter
	ControllerRunning prometheus.Gauge

	// Recent searches metrics.
	RecentSearchWrites *prometheus.CounterVec // labels: sink={memory,redis,kafka}, outcome={success,error,dropped}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_search",
			Name:      "fetch_requests_total",
			Help:      "Weather API requests by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_search",
			Name:      "fetch_duration_seconds",
			Help:      "Weather API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StateTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_search",
			Name:      "state_transitions_total",
			Help:      "Search state transitions by target phase.",
		}, []string{"phase"}),
		SupersededFetches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_search",
			Name:      "superseded_fetches_total",
			Help:      "Fetch results discarded because a newer query was issued.",
		}),
		DuplicateQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_search",
			Name:      "duplicate_queries_total",
			Help:      "Debounced queries skipped because they matched the previous one.",
		}),
		ControllerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_search",
			Name:      "controller_running",
			Help:      "1 when the search controller loop is active, 0 when shut down.",
		}),
		RecentSearchWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_search",
			Name:      "recent_search_writes_total",
			Help:      "Recent search writes by sink and outcome.",
		}, []string{"sink", "outcome"}),
	}

	prometheus.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.StateTransitions,
		m.SupersededFetches,
		m.DuplicateQueries,
		m.ControllerRunning,
		m.RecentSearchWrites,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FetchRequests:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_search", Name: "fetch_requests_total"}, []string{"outcome"}),
		FetchDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "weather_search", Name: "fetch_duration_seconds"}),
		StateTransitions:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_search", Name: "state_transitions_total"}, []string{"phase"}),
		SupersededFetches:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_search", Name: "superseded_fetches_total"}),
		DuplicateQueries:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_search", Name: "duplicate_queries_total"}),
		ControllerRunning:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_search", Name: "controller_running"}),
		RecentSearchWrites: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_search", Name: "recent_search_writes_total"}, []string{"sink", "outcome"}),
	}
}
