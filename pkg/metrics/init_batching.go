package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initBatchingMetrics() {
	r.ChangesAddedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "relstore_changes_added_total",
			Help: "Total number of aggregate change sequences added to delete batches",
		},
	)

	r.OperationsEmittedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "relstore_operations_emitted_total",
			Help: "Total number of operations emitted by batch replay",
		},
		[]string{"kind"},
	)

	r.BatchSize = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relstore_batch_size",
			Help:    "Number of operations wrapped into one batched operation",
			Buckets: []float64{2, 5, 10, 25, 50, 100, 250, 500},
		},
		[]string{"kind"},
	)
}
