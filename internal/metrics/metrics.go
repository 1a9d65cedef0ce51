// Package metrics exposes Prometheus collectors for the agent service.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	runsTotal                 *prometheus.CounterVec
	pagesFetchedTotal         *prometheus.CounterVec
	extractTotal              *prometheus.CounterVec
	completionRequestsTotal   *prometheus.CounterVec
	completionDurationSeconds prometheus.Histogram
	repliesDeliveredTotal     *prometheus.CounterVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		runsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shadowbot_runs_total",
				Help: "Total pipeline runs, labeled by event kind and outcome.",
			},
			[]string{"kind", "outcome"},
		)

		pagesFetchedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shadowbot_pages_fetched_total",
				Help: "Total pages fetched during scans and crawls, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		extractTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shadowbot_extract_total",
				Help: "Total document extractions, labeled by format and outcome.",
			},
			[]string{"format", "outcome"},
		)

		completionRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shadowbot_completion_requests_total",
				Help: "Total completion calls, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		completionDurationSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "shadowbot_completion_duration_seconds",
				Help:    "Latency of completion calls.",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
			},
		)

		repliesDeliveredTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shadowbot_replies_delivered_total",
				Help: "Total replies handed to the delivery collaborator, labeled by outcome.",
			},
			[]string{"outcome"},
		)
	})
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRun records the outcome of one pipeline run.
func ObserveRun(kind, outcome string) {
	if runsTotal == nil {
		return
	}
	runsTotal.WithLabelValues(kind, outcome).Inc()
}

// ObservePageFetch records one page fetch attempt.
func ObservePageFetch(outcome string) {
	if pagesFetchedTotal == nil {
		return
	}
	pagesFetchedTotal.WithLabelValues(outcome).Inc()
}

// ObserveExtract records one document extraction.
func ObserveExtract(format, outcome string) {
	if extractTotal == nil {
		return
	}
	extractTotal.WithLabelValues(format, outcome).Inc()
}

// ObserveCompletion records one completion call and its latency.
func ObserveCompletion(outcome string, elapsed time.Duration) {
	if completionRequestsTotal == nil {
		return
	}
	completionRequestsTotal.WithLabelValues(outcome).Inc()
	completionDurationSeconds.Observe(elapsed.Seconds())
}

// ObserveDelivery records one reply delivery attempt.
func ObserveDelivery(outcome string) {
	if repliesDeliveredTotal == nil {
		return
	}
	repliesDeliveredTotal.WithLabelValues(outcome).Inc()
}
