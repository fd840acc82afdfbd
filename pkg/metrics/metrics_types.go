package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the module
type Registry struct {
	// Batching Metrics
	ChangesAddedTotal      prometheus.Counter
	OperationsEmittedTotal *prometheus.CounterVec
	BatchSize              *prometheus.HistogramVec

	// Executor Metrics
	StatementsTotal       *prometheus.CounterVec
	StatementDuration     *prometheus.HistogramVec
	RowsDeletedTotal      prometheus.Counter
	VersionConflictsTotal prometheus.Counter

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initBatchingMetrics()
	r.initExecutorMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
