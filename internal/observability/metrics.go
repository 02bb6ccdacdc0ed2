package observability

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics holds the Prometheus counters and histograms for a bundle
// generation run.
type Metrics struct {
	RowsLoaded          *prometheus.CounterVec // label: dataset={model,station}
	RegionsProcessed    prometheus.Counter
	StationFallbacks    prometheus.Counter
	BundlesWritten      prometheus.Counter
	RegionBuildDuration prometheus.Histogram
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bundlegen",
			Name:      "rows_loaded_total",
			Help:      "Rows surviving all load filters, by dataset.",
		}, []string{"dataset"}),
		RegionsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bundlegen",
			Name:      "regions_processed_total",
			Help:      "Regions fully processed.",
		}),
		StationFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bundlegen",
			Name:      "station_fallbacks_total",
			Help:      "Regions that proceeded with an empty station payload.",
		}),
		BundlesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bundlegen",
			Name:      "bundle_documents_written_total",
			Help:      "Output JSON documents written.",
		}),
		RegionBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bundlegen",
			Name:      "region_build_duration_seconds",
			Help:      "Duration of one region's load-build-write cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// NewMetrics creates run metrics and registers them with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsLoaded,
		m.RegionsProcessed,
		m.StationFallbacks,
		m.BundlesWritten,
		m.RegionBuildDuration,
	)
	return m
}

// NewMetricsForTesting creates unregistered metrics to avoid "already
// registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// WriteTextfile dumps every metric family from the gatherer to path in the
// Prometheus exposition format, for pickup by a textfile collector. Batch
// jobs have no scrape endpoint, so this is the export path.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(f, mf); err != nil {
			f.Close()
			return fmt.Errorf("write metrics file: %w", err)
		}
	}
	return f.Close()
}
