// Package metrics holds prometheus collectors for the HTTP surface and the
// upstream Notion calls.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// NotionRequestsTotal counts upstream Notion API calls by operation and outcome.
	NotionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scangate",
			Name:      "notion_requests_total",
			Help:      "Total number of Notion API requests",
		},
		[]string{"operation", "outcome"},
	)

	// NotionRequestDuration observes successful upstream call latency.
	NotionRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "scangate",
			Name:      "notion_request_duration_seconds",
			Help:      "Notion API request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"operation"},
	)

	// ScanOutcomesTotal counts scan flow resolutions.
	ScanOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scangate",
			Name:      "scan_outcomes_total",
			Help:      "Total number of scan resolutions by outcome",
		},
		[]string{"outcome"},
	)
)

// RegisterUpstreamMetrics registers the Notion and scan collectors. Called
// explicitly from the composition root, no init().
func RegisterUpstreamMetrics() {
	prometheus.MustRegister(NotionRequestsTotal)
	prometheus.MustRegister(NotionRequestDuration)
	prometheus.MustRegister(ScanOutcomesTotal)
}
