// Package metrics exposes prometheus instrumentation for the explorer:
// backend fetches, layout passes, and rendered view-model sizes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all explorer metrics.
type Registry struct {
	FetchesTotal  *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec

	LayoutPassesTotal  prometheus.Counter
	LayoutReheatsTotal prometheus.Counter

	RenderedNodes prometheus.Gauge
	RenderedLinks prometheus.Gauge
}

// NewRegistry creates and registers all metrics with the given
// registerer. Pass prometheus.NewRegistry() in tests to isolate state.
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{
		FetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "explorer_fetches_total",
			Help: "Backend requests by endpoint and status",
		}, []string{"endpoint", "status"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "explorer_fetch_duration_seconds",
			Help:    "Backend request latency by endpoint",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		LayoutPassesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "explorer_layout_passes_total",
			Help: "Physics simulation passes applied",
		}),
		LayoutReheatsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "explorer_layout_reheats_total",
			Help: "Layout reheats triggered by structural changes",
		}),
		RenderedNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "explorer_rendered_nodes",
			Help: "Nodes in the current view model",
		}),
		RenderedLinks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "explorer_rendered_links",
			Help: "Links in the current view model",
		}),
	}

	reg.MustRegister(
		r.FetchesTotal,
		r.FetchDuration,
		r.LayoutPassesTotal,
		r.LayoutReheatsTotal,
		r.RenderedNodes,
		r.RenderedLinks,
	)
	return r
}

// RecordFetch records one backend request with its outcome and duration.
func (r *Registry) RecordFetch(endpoint, status string, duration time.Duration) {
	r.FetchesTotal.WithLabelValues(endpoint, status).Inc()
	r.FetchDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordLayoutPass records one simulation pass and whether it reheated.
func (r *Registry) RecordLayoutPass(reheated bool) {
	r.LayoutPassesTotal.Inc()
	if reheated {
		r.LayoutReheatsTotal.Inc()
	}
}

// SetRendered records the current view-model size.
func (r *Registry) SetRendered(nodes, links int) {
	r.RenderedNodes.Set(float64(nodes))
	r.RenderedLinks.Set(float64(links))
}
