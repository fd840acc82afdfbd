package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initExecutorMetrics() {
	r.StatementsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "relstore_statements_total",
			Help: "Total number of SQL statements executed",
		},
		[]string{"kind", "status"},
	)

	r.StatementDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relstore_statement_duration_seconds",
			Help:    "SQL statement duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"kind"},
	)

	r.RowsDeletedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "relstore_rows_deleted_total",
			Help: "Total number of rows removed by delete statements",
		},
	)

	r.VersionConflictsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "relstore_version_conflicts_total",
			Help: "Total number of optimistic-concurrency conflicts detected on root deletes",
		},
	)
}
