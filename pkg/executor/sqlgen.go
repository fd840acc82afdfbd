package executor

import (
	"fmt"

	"github.com/dd0wney/cluso-relstore/pkg/change"
)

// Statement is one parameterized SQL statement.
type Statement struct {
	SQL  string
	Args []any
}

// BuildStatement translates one operation into a single parameterized
// statement. Batched variants become one multi-row statement: the wrapped
// identifiers collapse into an array parameter, and the with-version
// variant adds the group's shared version predicate.
func BuildStatement(op change.Operation) (Statement, error) {
	switch op := op.(type) {
	case change.AcquireLock:
		return Statement{
			SQL:  fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 FOR UPDATE", op.IDColumn, op.Table, op.IDColumn),
			Args: []any{op.ID},
		}, nil

	case change.Delete:
		return Statement{
			SQL:  fmt.Sprintf("DELETE FROM %s WHERE %s = $1", op.Table, op.Column),
			Args: []any{op.Value},
		}, nil

	case change.BatchDelete:
		values := make([]any, len(op.Deletes))
		for i, d := range op.Deletes {
			values[i] = d.Value
		}
		first := op.Deletes[0]
		return Statement{
			SQL:  fmt.Sprintf("DELETE FROM %s WHERE %s = ANY($1)", first.Table, first.Column),
			Args: []any{values},
		}, nil

	case change.DeleteRoot:
		if op.PreviousVersion != nil {
			return Statement{
				SQL:  fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = $2", op.Table, op.IDColumn, op.VersionColumn),
				Args: []any{op.ID, *op.PreviousVersion},
			}, nil
		}
		return Statement{
			SQL:  fmt.Sprintf("DELETE FROM %s WHERE %s = $1", op.Table, op.IDColumn),
			Args: []any{op.ID},
		}, nil

	case change.BatchDeleteRoot:
		ids := make([]any, len(op.Roots))
		for i, r := range op.Roots {
			ids[i] = r.ID
		}
		first := op.Roots[0]
		return Statement{
			SQL:  fmt.Sprintf("DELETE FROM %s WHERE %s = ANY($1)", first.Table, first.IDColumn),
			Args: []any{ids},
		}, nil

	case change.BatchDeleteRootWithVersion:
		// the bucket shares one version key, so the predicate stays scalar
		ids := make([]any, len(op.Roots))
		for i, r := range op.Roots {
			ids[i] = r.ID
		}
		first := op.Roots[0]
		return Statement{
			SQL:  fmt.Sprintf("DELETE FROM %s WHERE %s = ANY($1) AND %s = $2", first.Table, first.IDColumn, first.VersionColumn),
			Args: []any{ids, *first.PreviousVersion},
		}, nil

	default:
		return Statement{}, fmt.Errorf("%w: %T", ErrUnsupportedOperation, op)
	}
}

// tableOf returns the target table of an operation, for error context.
func tableOf(op change.Operation) string {
	switch op := op.(type) {
	case change.AcquireLock:
		return op.Table
	case change.Delete:
		return op.Table
	case change.BatchDelete:
		return op.Deletes[0].Table
	case change.DeleteRoot:
		return op.Table
	case change.BatchDeleteRoot:
		return op.Roots[0].Table
	case change.BatchDeleteRootWithVersion:
		return op.Roots[0].Table
	default:
		return ""
	}
}

// versionedRows returns the number of rows a versioned root delete is
// expected to remove, and whether the operation carries a version check.
func versionedRows(op change.Operation) (int64, bool) {
	switch op := op.(type) {
	case change.DeleteRoot:
		if op.PreviousVersion != nil {
			return 1, true
		}
	case change.BatchDeleteRootWithVersion:
		return int64(len(op.Roots)), true
	}
	return 0, false
}
