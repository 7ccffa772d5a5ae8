// Package metrics owns the Prometheus collectors of the careers service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "careers"

// Metrics groups every collector so components receive them explicitly.
type Metrics struct {
	registry *prometheus.Registry

	SearchRequests  *prometheus.CounterVec // outcome: ok|error
	SearchLatency   prometheus.Histogram   // upstream search call duration
	CacheLookups    *prometheus.CounterVec // result: hit|miss
	Applications    *prometheus.CounterVec // outcome: success|failed|invalid
	ApplyLatency    prometheus.Histogram   // upstream apply call duration
	AnalyticsEvents *prometheus.CounterVec // kind
	StaleResponses  prometheus.Counter     // pager responses dropped by the generation guard
}

// New builds a private registry with process and Go runtime collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		SearchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "search_requests_total",
			Help: "Job search calls to the ATS, by outcome.",
		}, []string{"outcome"}),
		SearchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "search_duration_seconds",
			Help:    "Latency of job search calls to the ATS.",
			Buckets: prometheus.DefBuckets,
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "search_cache_lookups_total",
			Help: "Search page cache lookups, by result.",
		}, []string{"result"}),
		Applications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "applications_total",
			Help: "Job applications handled, by outcome.",
		}, []string{"outcome"}),
		ApplyLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "apply_duration_seconds",
			Help:    "Latency of apply calls to the ATS.",
			Buckets: prometheus.DefBuckets,
		}),
		AnalyticsEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "analytics_events_total",
			Help: "Analytics events tracked, by event kind.",
		}, []string{"kind"}),
		StaleResponses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "joblist_stale_responses_total",
			Help: "Job list responses discarded because a newer request was issued.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.SearchRequests, m.SearchLatency, m.CacheLookups,
		m.Applications, m.ApplyLatency, m.AnalyticsEvents, m.StaleResponses,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
