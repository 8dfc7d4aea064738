package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	ErrorTotal      *prometheus.CounterVec

	// Scoring metrics
	Analyses     *prometheus.CounterVec
	ScoreSummary prometheus.Histogram
	BreachHits   prometheus.Counter
	Suggestions  *prometheus.CounterVec

	// History storage metrics
	HistoryOperations *prometheus.CounterVec
	HistoryLatency    *prometheus.HistogramVec
	HistoryPruned     prometheus.Counter
}

// New creates all application metrics and registers them with reg. A nil
// reg leaves them unregistered.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "path", "status"}),
		RequestTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		ErrorTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "errors_total",
			Help:      "Total number of HTTP responses with status >= 400",
		}, []string{"method", "path", "status"}),

		Analyses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "strength",
			Name:      "analyses_total",
			Help:      "Total number of password analyses by account type",
		}, []string{"account_type", "meets_requirements"}),
		ScoreSummary: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "strength",
			Name:      "score",
			Help:      "Distribution of composite strength scores",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}),
		BreachHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "strength",
			Name:      "breached_total",
			Help:      "Total number of analyzed passwords found on the known-weak list",
		}),
		Suggestions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "strength",
			Name:      "suggestions_total",
			Help:      "Total number of suggestions by strategy",
		}, []string{"strategy"}),

		HistoryOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "operations_total",
			Help:      "Total number of history store operations",
		}, []string{"operation", "status"}),
		HistoryLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "operation_duration_seconds",
			Help:      "Duration of history store operations",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5},
		}, []string{"operation"}),
		HistoryPruned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "pruned_total",
			Help:      "Total number of history entries removed by retention",
		}),
	}
}

// ObserveHistory records the outcome and latency of one history operation.
func (m *Metrics) ObserveHistory(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.HistoryOperations.WithLabelValues(operation, status).Inc()
	m.HistoryLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
