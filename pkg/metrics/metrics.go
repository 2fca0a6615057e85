package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bllokusync/bllokusync/internal/common/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry    *prometheus.Registry
	namespace   string
	httpReqCnt  *prometheus.CounterVec
	httpDur     *prometheus.HistogramVec
	httpInfl    *prometheus.GaugeVec
	ensureCnt   *prometheus.CounterVec
	ensureDur   prometheus.Histogram
	recordsNew  prometheus.Counter
	sweepCnt    prometheus.Counter
	sweepMarked prometheus.Counter
}

func New(cfg config.MetricsConfig) *Metrics {
	ns := cfg.Namespace
	r := prometheus.NewRegistry()
	// Register standard process and Go collectors
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r.MustRegister(collectors.NewGoCollector())

	// Register basic HTTP metrics
	httpReqCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "http_requests_total"}, []string{"method", "route", "status"})
	httpDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "http_request_duration_seconds", Buckets: cfg.Buckets}, []string{"method", "route", "status"})
	httpInfl := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: ns, Name: "http_requests_inflight"}, []string{"route"})
	r.MustRegister(httpReqCnt, httpDur, httpInfl)

	// Reconciliation metrics
	ensureCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "ensure_batches_total"}, []string{"outcome"})
	ensureDur := prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: ns, Name: "ensure_batch_duration_seconds", Buckets: cfg.Buckets})
	recordsNew := prometheus.NewCounter(prometheus.CounterOpts{Namespace: ns, Name: "payment_records_created_total"})
	r.MustRegister(ensureCnt, ensureDur, recordsNew)

	// Overdue sweep metrics
	sweepCnt := prometheus.NewCounter(prometheus.CounterOpts{Namespace: ns, Name: "overdue_sweeps_total"})
	sweepMarked := prometheus.NewCounter(prometheus.CounterOpts{Namespace: ns, Name: "overdue_records_marked_total"})
	r.MustRegister(sweepCnt, sweepMarked)

	return &Metrics{
		registry:    r,
		namespace:   ns,
		httpReqCnt:  httpReqCnt,
		httpDur:     httpDur,
		httpInfl:    httpInfl,
		ensureCnt:   ensureCnt,
		ensureDur:   ensureDur,
		recordsNew:  recordsNew,
		sweepCnt:    sweepCnt,
		sweepMarked: sweepMarked,
	}
}

// EnsureBatchDone records one completed reconciliation batch
func (m *Metrics) EnsureBatchDone(since time.Time, created int, failed bool) {
	outcome := "success"
	if failed {
		outcome = "failure"
	}
	m.ensureCnt.WithLabelValues(outcome).Inc()
	m.ensureDur.Observe(time.Since(since).Seconds())
	if created > 0 {
		m.recordsNew.Add(float64(created))
	}
}

// SweepDone records one overdue sweep and how many records it marked
func (m *Metrics) SweepDone(marked int) {
	m.sweepCnt.Inc()
	if marked > 0 {
		m.sweepMarked.Add(float64(marked))
	}
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		m.httpInfl.WithLabelValues(route).Inc()
		start := time.Now()
		c.Next()
		status := httpStatus(c.Writer.Status())
		m.httpReqCnt.WithLabelValues(c.Request.Method, route, status).Inc()
		m.httpDur.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		m.httpInfl.WithLabelValues(route).Dec()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func httpStatus(code int) string { return strconv.Itoa(code) }
