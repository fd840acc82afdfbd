package e2e

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-relstore/pkg/change"
	"github.com/dd0wney/cluso-relstore/pkg/executor"
	"github.com/dd0wney/cluso-relstore/pkg/schema"
	"github.com/dd0wney/cluso-relstore/pkg/writer"
)

func orderAggregate() *schema.Aggregate {
	return &schema.Aggregate{
		Entity: "order",
		Root:   schema.Table{Name: "orders", IDColumn: "id", VersionColumn: "version"},
		Paths: []schema.Path{
			{Path: change.NewPropertyPath("lineItems"), Table: "line_item", RootColumn: "order_id"},
			{Path: change.NewPropertyPath("lineItems", "discounts"), Table: "discount", RootColumn: "order_id"},
			{Path: change.NewPropertyPath("payments"), Table: "payment", RootColumn: "order_id"},
		},
	}
}

// TestDeleteCascadePipeline drives the whole pipeline for several
// aggregates: mapping -> change writer -> batching accumulator -> sink
func TestDeleteCascadePipeline(t *testing.T) {
	agg := orderAggregate()
	require.NoError(t, agg.Validate())

	first, second, third := uuid.New(), uuid.New(), uuid.New()

	batch := change.NewDeleteBatch(agg.Entity)

	c1, err := writer.Delete(agg, first, writer.WithLock(), writer.WithVersion(5))
	require.NoError(t, err)
	batch.Add(c1)

	c2, err := writer.Delete(agg, second, writer.WithLock(), writer.WithVersion(5))
	require.NoError(t, err)
	batch.Add(c2)

	c3, err := writer.Delete(agg, third)
	require.NoError(t, err)
	batch.Add(c3)

	var ops []change.Operation
	require.NoError(t, batch.Replay(func(op change.Operation) error {
		ops = append(ops, op)
		return nil
	}))

	// 2 locks, 3 merged non-root buckets, 1 versioned root batch, 1 plain root
	require.Len(t, ops, 7)

	// Locks first, in add order
	lock1, ok := ops[0].(change.AcquireLock)
	require.True(t, ok, "expected lock first, got %T", ops[0])
	assert.Equal(t, first, lock1.ID)

	lock2, ok := ops[1].(change.AcquireLock)
	require.True(t, ok, "expected lock second, got %T", ops[1])
	assert.Equal(t, second, lock2.ID)

	// Non-root buckets deepest first, each merged across all three aggregates
	deepest, ok := ops[2].(change.BatchDelete)
	require.True(t, ok, "expected batch delete, got %T", ops[2])
	assert.Equal(t, "discount", deepest.Deletes[0].Table)
	assert.Len(t, deepest.Deletes, 3)

	for _, op := range ops[3:5] {
		batchDelete, ok := op.(change.BatchDelete)
		require.True(t, ok, "expected batch delete, got %T", op)
		assert.Equal(t, 1, batchDelete.Path().Depth())
		assert.Len(t, batchDelete.Deletes, 3)
	}

	// Versioned roots merged, versionless root alone, after everything else
	versioned, ok := ops[5].(change.BatchDeleteRootWithVersion)
	require.True(t, ok, "expected versioned root batch, got %T", ops[5])
	require.Len(t, versioned.Roots, 2)
	assert.Equal(t, first, versioned.Roots[0].ID)
	assert.Equal(t, second, versioned.Roots[1].ID)

	plain, ok := ops[6].(change.DeleteRoot)
	require.True(t, ok, "expected unwrapped root, got %T", ops[6])
	assert.Equal(t, third, plain.ID)
	assert.Nil(t, plain.PreviousVersion)

	// Every emitted operation translates into exactly one SQL statement
	for _, op := range ops {
		stmt, err := executor.BuildStatement(op)
		require.NoError(t, err)
		assert.NotEmpty(t, stmt.SQL)
		assert.NotEmpty(t, stmt.Args)
	}
}

// TestPipelineSurvivesReplayTwice verifies the accumulator can be drained
// again, e.g. for a retry after a serialization failure
func TestPipelineSurvivesReplayTwice(t *testing.T) {
	agg := orderAggregate()
	batch := change.NewDeleteBatch(agg.Entity)

	c, err := writer.Delete(agg, uuid.New(), writer.WithLock())
	require.NoError(t, err)
	batch.Add(c)

	var first, second []string
	require.NoError(t, batch.Replay(func(op change.Operation) error {
		first = append(first, op.Kind().String())
		return nil
	}))
	require.NoError(t, batch.Replay(func(op change.Operation) error {
		second = append(second, op.Kind().String())
		return nil
	}))

	assert.Equal(t, first, second)
}
