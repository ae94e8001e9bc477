package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ExtractionsTotal    *prometheus.CounterVec
	ExtractionDuration  *prometheus.HistogramVec
	ItemsPersistedTotal prometheus.Counter
	ExternalCrawlsTotal *prometheus.CounterVec
)

func Init() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extractions_total",
			Help: "Total number of content extraction attempts.",
		},
		[]string{"method", "status"}, // status: success, failure
	)

	ExtractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "extraction_duration_seconds",
			Help:    "Duration of content extraction operations.",
			Buckets: []float64{0.5, 1, 5, 10, 15, 30, 60},
		},
		[]string{"method"},
	)

	ItemsPersistedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "items_persisted_total",
			Help: "Total number of content items written to the knowledge base.",
		},
	)

	ExternalCrawlsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "external_crawls_total",
			Help: "Total number of external crawler invocations.",
		},
		[]string{"status"},
	)
}
