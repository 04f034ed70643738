package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	turnsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agribot_turns_total",
		Help: "Chat turns answered, by intent and source",
	}, []string{"intent", "source"})

	replyConfidence = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "agribot_reply_confidence",
		Help:    "Confidence of the composed replies",
		Buckets: []float64{0.5, 0.6, 0.7, 0.8, 0.85, 0.88, 0.9, 0.92, 0.95, 0.97, 1.0},
	})

	composeLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "agribot_compose_latency_ms",
		Help:    "Latency of one message handling in milliseconds",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})

	storeErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agribot_store_errors_total",
		Help: "Knowledge store failures treated as no data",
	}, []string{"operation"})

	weatherRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agribot_weather_requests_total",
		Help: "Weather API calls by outcome (ok/error)",
	}, []string{"endpoint", "outcome"})
)

func ensureRegistered() {
	once.Do(func() {
		prometheus.MustRegister(collectors()...)
	})
}

// ObserveTurn records one answered turn.
func ObserveTurn(intent, source string, confidence float64, start time.Time) {
	ensureRegistered()
	turnsTotal.WithLabelValues(intent, source).Inc()
	replyConfidence.Observe(confidence)
	composeLatency.Observe(float64(time.Since(start).Milliseconds()))
}

// IncStoreError counts a store failure for the given lookup.
func IncStoreError(operation string) {
	ensureRegistered()
	storeErrors.WithLabelValues(operation).Inc()
}

// IncWeatherRequest counts a weather API call.
func IncWeatherRequest(endpoint string, ok bool) {
	ensureRegistered()
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	weatherRequests.WithLabelValues(endpoint, outcome).Inc()
}

// Register makes sure the collectors are exported by the default registry.
func Register() {
	ensureRegistered()
}

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		turnsTotal, replyConfidence, composeLatency, storeErrors, weatherRequests,
	}
}
