package metrics

import (
	"time"

	"github.com/dd0wney/cluso-relstore/pkg/change"
)

// RecordChangeAdded records one aggregate change sequence entering a batch
func (r *Registry) RecordChangeAdded() {
	r.ChangesAddedTotal.Inc()
}

// RecordOperationEmitted records one replayed operation, tracking the size
// of batched variants
func (r *Registry) RecordOperationEmitted(op change.Operation) {
	kind := op.Kind().String()
	r.OperationsEmittedTotal.WithLabelValues(kind).Inc()

	switch op := op.(type) {
	case change.BatchDelete:
		r.BatchSize.WithLabelValues(kind).Observe(float64(len(op.Deletes)))
	case change.BatchDeleteRoot:
		r.BatchSize.WithLabelValues(kind).Observe(float64(len(op.Roots)))
	case change.BatchDeleteRootWithVersion:
		r.BatchSize.WithLabelValues(kind).Observe(float64(len(op.Roots)))
	}
}

// RecordStatement records an executed SQL statement with its outcome
func (r *Registry) RecordStatement(kind change.Kind, status string, duration time.Duration, rows int64) {
	r.StatementsTotal.WithLabelValues(kind.String(), status).Inc()
	r.StatementDuration.WithLabelValues(kind.String()).Observe(duration.Seconds())
	if rows > 0 {
		r.RowsDeletedTotal.Add(float64(rows))
	}
}

// RecordVersionConflict records an optimistic-concurrency mismatch
func (r *Registry) RecordVersionConflict() {
	r.VersionConflictsTotal.Inc()
}
