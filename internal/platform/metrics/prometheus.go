package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsManager holds custom Prometheus metrics.
type MetricsManager struct {
	Registry       *prometheus.Registry
	AdViewsTotal   prometheus.Counter
	APIErrorsTotal *prometheus.CounterVec
	APILatency     *prometheus.HistogramVec
}

// NewMetricsManager initializes and registers custom Prometheus metrics.
func NewMetricsManager(serviceName string) *MetricsManager {
	registry := prometheus.NewRegistry()

	adViewsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "ad_views_total",
		Help:      "Total number of single-ad retrievals served.",
	})
	apiErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "api_errors_total",
		Help:      "Total number of API errors by handler.",
	}, []string{"handler", "error_type"})
	apiLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "api_request_latency_seconds",
		Help:      "Latency of API requests by handler.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"handler"})

	registry.MustRegister(
		adViewsTotal,
		apiErrorsTotal,
		apiLatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:       registry,
		AdViewsTotal:   adViewsTotal,
		APIErrorsTotal: apiErrorsTotal,
		APILatency:     apiLatency,
	}
}

// ObserveLatency records the elapsed time since start for one handler.
// Meant to be deferred at the top of a handler.
func (m *MetricsManager) ObserveLatency(handler string, start time.Time) {
	m.APILatency.WithLabelValues(handler).Observe(time.Since(start).Seconds())
}

// StartMetricsServer starts an HTTP server exposing the registry on a side
// port. An empty port disables the server.
func StartMetricsServer(port string, logger *zap.Logger, registry *prometheus.Registry) error {
	if port == "" {
		logger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	logger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	return server.ListenAndServe()
}
