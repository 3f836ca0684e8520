package collision

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scanDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ipcollide_scan_duration_seconds",
			Help:    "Time taken to run a collision scan",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"mode"}, // global, namespace or file
	)

	scanTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ipcollide_scan_total",
			Help: "Total number of collision scans",
		},
		[]string{"mode"},
	)

	scanCollisions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ipcollide_scan_collisions",
			Help: "Number of colliding networks found by the last scan",
		},
		[]string{"mode"},
	)

	invalidEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ipcollide_invalid_entries_total",
			Help: "Total number of entries skipped because they could not be parsed",
		},
		[]string{"mode"},
	)
)

// WriteMetrics writes the default registry to path in the text exposition
// format, for the node_exporter textfile collector.
func WriteMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
