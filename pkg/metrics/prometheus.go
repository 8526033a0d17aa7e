// Package metrics provides Prometheus metrics for the table service
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sheet_atlas_reloads_total",
			Help: "Total number of table map reloads",
		},
		[]string{"status"},
	)

	ReloadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sheet_atlas_reload_duration_seconds",
			Help:    "Time taken to load the grid and rebuild the table map",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	TablesLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sheet_atlas_tables_loaded",
			Help: "Number of tables in the current table map",
		},
	)

	RowSumsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sheet_atlas_row_sums_total",
			Help: "Total number of row sum requests",
		},
		[]string{"outcome"},
	)

	UnparseableValues = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sheet_atlas_unparseable_values_total",
			Help: "Values that could not be parsed as numbers and were summed as zero",
		},
		[]string{"table"},
	)
)

func RecordReload(status string, tables int, duration time.Duration) {
	ReloadsTotal.WithLabelValues(status).Inc()
	ReloadDuration.Observe(duration.Seconds())
	TablesLoaded.Set(float64(tables))
}

func RecordRowSum(outcome string) {
	RowSumsTotal.WithLabelValues(outcome).Inc()
}

func RecordUnparseable(table string) {
	UnparseableValues.WithLabelValues(table).Inc()
}
