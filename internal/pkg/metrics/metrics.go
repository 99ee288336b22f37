package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus collectors exposed by the service.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	conflictsTotal  prometheus.Counter
	fallbackQuotes  prometheus.Counter
}

// New registers the collectors on the default registry. Call once per
// process.
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Number of HTTP requests by method, route and status code.",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by method and route.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		conflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Number of booking attempts rejected because of a time conflict.",
			ConstLabels: labels,
		}),

		fallbackQuotes: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "pricing_fallback_quotes_total",
			Help:        "Number of price quotes that fell back to the standard rate.",
			ConstLabels: labels,
		}),
	}
}

// ObserveConflict counts one rejected booking attempt.
func (m *Metrics) ObserveConflict() {
	m.conflictsTotal.Inc()
}

// ObserveFallbackQuote counts one quote priced at the fallback rate.
func (m *Metrics) ObserveFallbackQuote() {
	m.fallbackQuotes.Inc()
}

// Middleware records request counts and latencies per route. The route
// template (not the raw path) is used as the label so IDs do not blow up
// cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.requestsTotal.WithLabelValues(
			c.Request.Method, route, strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.requestDuration.WithLabelValues(
			c.Request.Method, route,
		).Observe(time.Since(start).Seconds())
	}
}

// Handler returns the scrape endpoint handler.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
