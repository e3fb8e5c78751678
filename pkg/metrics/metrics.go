// Package metrics provides Prometheus instrumentation for sparse columns.
//
// # Overview
//
// A Collector owns the metric families and registers them on a registry of its
// own, so several tables (or tests) can each carry an isolated collector:
//
//	collector := metrics.NewCollector(nil)
//	col := column.NewIntColumn(column.WithMetrics(collector))
//	...
//	families, _ := collector.Registry().Gather()
//
// Every method is safe on a nil *Collector and does nothing, which is how
// columns built without WithMetrics run.
//
// # Metric Types
//
// Counter: coercions rejected by a setter, by column type and target.
// Histogram: rows materialized by dense conversion, and rows displaced by a
// single insert.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sparsetable"

// Collector groups the column metrics.
type Collector struct {
	registry         *prometheus.Registry
	coercionFailures *prometheus.CounterVec   // setter inputs that could not be converted
	materializedRows *prometheus.HistogramVec // dense span produced by Internal
	displacementRows *prometheus.HistogramVec // chain length moved by InsertRow
}

// NewCollector creates a collector registered on reg. A nil reg gets a fresh
// registry.
func NewCollector(reg *prometheus.Registry) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		coercionFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "coercion_failures_total",
				Help:      "Values rejected because they could not be converted to the column type",
			},
			[]string{"column_type", "target"},
		),
		materializedRows: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "materialized_rows",
				Help:      "Length of dense arrays produced from sparse columns",
				Buckets:   prometheus.ExponentialBuckets(16, 8, 8), // 16 .. ~33M rows
			},
			[]string{"column_type"},
		),
		displacementRows: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "insert_displacement_rows",
				Help:      "Rows shifted up by a single insert",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"column_type"},
		),
	}
}

// Registry returns the registry the collector's families live on.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// CoercionFailed counts one rejected value.
func (c *Collector) CoercionFailed(columnType, target string) {
	if c == nil {
		return
	}
	c.coercionFailures.WithLabelValues(columnType, target).Inc()
}

// Materialized records the length of a dense array.
func (c *Collector) Materialized(columnType string, rows int) {
	if c == nil {
		return
	}
	c.materializedRows.WithLabelValues(columnType).Observe(float64(rows))
}

// Displaced records how many rows an insert moved.
func (c *Collector) Displaced(columnType string, rows int) {
	if c == nil {
		return
	}
	c.displacementRows.WithLabelValues(columnType).Observe(float64(rows))
}
