package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Render outcomes recorded by Metrics.PageRendered.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics holds the page rendering collectors on a private registry.
type Metrics struct {
	registry   *prometheus.Registry
	pages      *prometheus.CounterVec
	documents  *prometheus.CounterVec
	emptyHeads prometheus.Counter
}

// NewMetrics registers the collectors plus the Go runtime collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "worldvoice",
			Name:      "pages_rendered_total",
			Help:      "Pages rendered, by content kind and outcome.",
		}, []string{"kind", "outcome"}),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "worldvoice",
			Name:      "structured_data_documents_total",
			Help:      "Structured-data documents emitted, by schema type.",
		}, []string{"type"}),
		emptyHeads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "worldvoice",
			Name:      "empty_metadata_total",
			Help:      "Renders whose metadata builder produced no output.",
		}),
	}
	reg.MustRegister(
		m.pages,
		m.documents,
		m.emptyHeads,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// PageRendered counts one render attempt.
func (m *Metrics) PageRendered(kind, outcome string) {
	if m == nil {
		return
	}
	m.pages.WithLabelValues(kind, outcome).Inc()
}

// DocumentsEmitted counts structured-data documents by schema type.
func (m *Metrics) DocumentsEmitted(types ...string) {
	if m == nil {
		return
	}
	for _, t := range types {
		m.documents.WithLabelValues(t).Inc()
	}
}

// MetadataEmpty counts a render whose metadata was suppressed.
func (m *Metrics) MetadataEmpty() {
	if m == nil {
		return
	}
	m.emptyHeads.Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
