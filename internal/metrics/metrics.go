// Package metrics holds the Prometheus collectors for the referral service.
// Every method on *Metrics is safe to call on a nil receiver so that tests and
// callers without a registry can pass nil.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "referrals"

type Metrics struct {
	registry *prometheus.Registry

	LinksCreated     *prometheus.CounterVec
	LinksRejected    *prometheus.CounterVec
	IdempotentReplay prometheus.Counter
	VendorEvents     *prometheus.CounterVec
	Resolutions      *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		LinksCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "links_created_total",
			Help:      "Referral links issued, by channel",
		}, []string{"channel"}),
		LinksRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "links_rejected_total",
			Help:      "Link creation requests refused, by reason",
		}, []string{"reason"}),
		IdempotentReplay: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "idempotent_replays_total",
			Help:      "Link creation responses served from the idempotency guard",
		}),
		VendorEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vendor_events_total",
			Help:      "Vendor events received, by event type and outcome",
		}, []string{"event", "outcome"}),
		Resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Deep link resolutions, by outcome",
		}, []string{"outcome"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) LinkCreated(channel string) {
	if m == nil {
		return
	}
	m.LinksCreated.WithLabelValues(channel).Inc()
}

func (m *Metrics) LinkRejected(reason string) {
	if m == nil {
		return
	}
	m.LinksRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) Replayed() {
	if m == nil {
		return
	}
	m.IdempotentReplay.Inc()
}

func (m *Metrics) VendorEvent(event, outcome string) {
	if m == nil {
		return
	}
	m.VendorEvents.WithLabelValues(event, outcome).Inc()
}

func (m *Metrics) Resolution(outcome string) {
	if m == nil {
		return
	}
	m.Resolutions.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request latency labelled by the matched route template,
// so path parameters do not explode label cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
