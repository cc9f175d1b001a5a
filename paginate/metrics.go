package paginate

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for catalog traversals. One
// bundle is shared across traversals; series are split by catalog.
type Metrics struct {
	Registry          *prometheus.Registry
	PagesTotal        *prometheus.CounterVec
	EntriesTotal      *prometheus.CounterVec
	DuplicatesTotal   *prometheus.CounterVec
	NavFailuresTotal  *prometheus.CounterVec
	ProbeHitsTotal    *prometheus.CounterVec
	TraversalDuration *prometheus.HistogramVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	pages := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalogsync_pages_total",
			Help: "Total listing pages visited per catalog.",
		},
		[]string{"catalog"},
	)
	entries := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalogsync_entries_total",
			Help: "Total unique entries collected per catalog.",
		},
		[]string{"catalog"},
	)
	duplicates := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalogsync_duplicates_total",
			Help: "Entries discarded because their identity key was already seen.",
		},
		[]string{"catalog"},
	)
	navFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalogsync_navigation_failures_total",
			Help: "Navigation attempts that ended a traversal early, by reason.",
		},
		[]string{"catalog", "reason"},
	)
	probeHits := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalogsync_probe_hits_total",
			Help: "Total-count probe matches by probe name.",
		},
		[]string{"probe"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalogsync_traversal_duration_seconds",
			Help:    "Wall time of a full catalog traversal.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
		[]string{"catalog"},
	)

	registry.MustRegister(pages, entries, duplicates, navFailures, probeHits, duration)

	return &Metrics{
		Registry:          registry,
		PagesTotal:        pages,
		EntriesTotal:      entries,
		DuplicatesTotal:   duplicates,
		NavFailuresTotal:  navFailures,
		ProbeHitsTotal:    probeHits,
		TraversalDuration: duration,
	}
}

// IncPage counts a visited page.
func (m *Metrics) IncPage(catalog string) {
	if m == nil {
		return
	}
	m.PagesTotal.WithLabelValues(catalog).Inc()
}

// IncEntries counts unique entries appended to a traversal.
func (m *Metrics) IncEntries(catalog string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.EntriesTotal.WithLabelValues(catalog).Add(float64(n))
}

// IncDuplicate counts an entry dropped by the dedup check.
func (m *Metrics) IncDuplicate(catalog string) {
	if m == nil {
		return
	}
	m.DuplicatesTotal.WithLabelValues(catalog).Inc()
}

// IncNavFailure counts a navigation step that ended the traversal.
func (m *Metrics) IncNavFailure(catalog, reason string) {
	if m == nil {
		return
	}
	m.NavFailuresTotal.WithLabelValues(catalog, reason).Inc()
}

// IncProbeHit counts a total-count probe match.
func (m *Metrics) IncProbeHit(probe string) {
	if m == nil {
		return
	}
	m.ProbeHitsTotal.WithLabelValues(probe).Inc()
}

// ObserveTraversal records a traversal's wall time.
func (m *Metrics) ObserveTraversal(catalog string, d time.Duration) {
	if m == nil {
		return
	}
	m.TraversalDuration.WithLabelValues(catalog).Observe(d.Seconds())
}
