package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dkhalturin/docforge/internal/core/domain"
)

// ConversionMetrics instruments the conversion orchestrator. The handler
// is served only in long-running (mcp) mode; one-shot CLI runs still
// record values for tests and debugging.
type ConversionMetrics struct {
	registry *prometheus.Registry
	service  string

	conversionsTotal    *prometheus.CounterVec
	conversionDuration  *prometheus.HistogramVec
	conversionsInFlight prometheus.Gauge
	itemsIngested       *prometheus.CounterVec
}

func NewConversionMetrics(service string) *ConversionMetrics {
	registry := prometheus.NewRegistry()

	conversionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docforge",
			Subsystem: "convert",
			Name:      "conversions_total",
			Help:      "Total conversion runs by output format and status.",
		},
		[]string{"service", "format", "status"},
	)
	conversionDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docforge",
			Subsystem: "convert",
			Name:      "conversion_duration_seconds",
			Help:      "Conversion run duration in seconds by output format.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "format"},
	)
	conversionsInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docforge",
			Subsystem: "convert",
			Name:      "conversions_in_flight",
			Help:      "Number of conversion runs currently executing.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	itemsIngested := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docforge",
			Subsystem: "ingest",
			Name:      "items_total",
			Help:      "Total ingested items by category (rejected counts as its own category).",
		},
		[]string{"service", "category"},
	)

	registry.MustRegister(conversionsTotal, conversionDuration, conversionsInFlight, itemsIngested)

	return &ConversionMetrics{
		registry:            registry,
		service:             service,
		conversionsTotal:    conversionsTotal,
		conversionDuration:  conversionDuration,
		conversionsInFlight: conversionsInFlight,
		itemsIngested:       itemsIngested,
	}
}

func (m *ConversionMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *ConversionMetrics) ConversionStarted() {
	m.conversionsInFlight.Inc()
}

func (m *ConversionMetrics) ConversionFinished(format domain.OutputFormat, duration time.Duration, err error) {
	m.conversionsInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}
	m.conversionsTotal.WithLabelValues(m.service, string(format), status).Inc()
	m.conversionDuration.WithLabelValues(m.service, string(format)).Observe(duration.Seconds())
}

func (m *ConversionMetrics) ObserveIngest(result domain.IngestResult) {
	for _, it := range result.Accepted {
		m.itemsIngested.WithLabelValues(m.service, string(it.Category)).Inc()
	}
	for range result.Rejected {
		m.itemsIngested.WithLabelValues(m.service, "rejected").Inc()
	}
}
