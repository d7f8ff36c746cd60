// Package metrics implements the observability hook interfaces on top of
// Prometheus collectors.
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(reg)
//	m.Install()
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/observability"
)

const namespace = "sankey"

// Metrics holds the collectors. It implements every hook interface of the
// observability package.
type Metrics struct {
	stageTotal    *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	ribbons       prometheus.Histogram
	cacheOps      *prometheus.CounterVec
	cacheBytes    *prometheus.CounterVec
	marks         *prometheus.CounterVec
	clears        prometheus.Counter
	tooltips      *prometheus.CounterVec
	commits       *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

var (
	_ observability.PipelineHooks    = (*Metrics)(nil)
	_ observability.CacheHooks       = (*Metrics)(nil)
	_ observability.InteractionHooks = (*Metrics)(nil)
	_ observability.HTTPHooks        = (*Metrics)(nil)
)

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		stageTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_total",
			Help:      "Pipeline stage executions by stage and outcome.",
		}, []string{"stage", "outcome"}),
		stageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage duration.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"stage"}),
		ribbons: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_ribbons",
			Help:      "Ribbons per computed frame.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		cacheOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Cache lookups and writes by key type and result.",
		}, []string{"key_type", "result"}),
		cacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache by key type.",
		}, []string{"key_type"}),
		marks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mark_requests_total",
			Help:      "Marking requests sent to the host by mode.",
		}, []string{"mode"}),
		clears: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clear_marking_total",
			Help:      "Clear marking requests sent to the host.",
		}),
		tooltips: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tooltips_total",
			Help:      "Tooltips shown by element kind.",
		}, []string{"kind"}),
		commits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frame_updates_total",
			Help:      "Controller updates by outcome code.",
		}, []string{"outcome"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Install registers m as the global hooks for every category.
func (m *Metrics) Install() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetInteractionHooks(m)
	observability.SetHTTPHooks(m)
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if code := errors.GetCode(err); code != "" {
		return string(code)
	}
	return "error"
}

func (m *Metrics) OnLayoutStart(context.Context, int) {}

func (m *Metrics) OnLayoutComplete(_ context.Context, ribbons int, d time.Duration, err error) {
	m.stageTotal.WithLabelValues("layout", outcome(err)).Inc()
	m.stageDuration.WithLabelValues("layout").Observe(d.Seconds())
	if err == nil {
		m.ribbons.Observe(float64(ribbons))
	}
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	m.stageTotal.WithLabelValues("render", outcome(err)).Inc()
	m.stageDuration.WithLabelValues("render").Observe(d.Seconds())
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheOps.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *Metrics) OnMark(_ context.Context, mode string, _ int) {
	m.marks.WithLabelValues(mode).Inc()
}

func (m *Metrics) OnClearMarking(context.Context) { m.clears.Inc() }

func (m *Metrics) OnTooltip(_ context.Context, kind string) {
	m.tooltips.WithLabelValues(kind).Inc()
}

func (m *Metrics) OnFrameCommitted(_ context.Context, _ time.Duration, err error) {
	m.commits.WithLabelValues(outcome(err)).Inc()
}

func (m *Metrics) OnRequest(context.Context, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
