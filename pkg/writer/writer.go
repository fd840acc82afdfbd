// Package writer produces the per-aggregate change sequences consumed by a
// change.DeleteBatch: given an aggregate mapping and one root identifier it
// emits an optional lock, one delete per nested path from the leaves
// upward, and the root delete.
package writer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-relstore/pkg/change"
	"github.com/dd0wney/cluso-relstore/pkg/schema"
)

// ErrNoVersionColumn is returned when a version check is requested for an
// aggregate whose root table has no version column.
var ErrNoVersionColumn = errors.New("aggregate has no version column")

type options struct {
	lock    bool
	version *int64
}

// Option adjusts how a delete change is written.
type Option func(*options)

// WithLock requests a protective lock on the root row before the cascade.
func WithLock() Option {
	return func(o *options) {
		o.lock = true
	}
}

// WithVersion requests an optimistic-concurrency check of the root row
// against the given expected version.
func WithVersion(v int64) Option {
	return func(o *options) {
		o.version = &v
	}
}

// Delete writes the ordered operation sequence that removes one aggregate
// instance. Nested paths are emitted deepest first so the sequence is
// executable as-is, though the batching accumulator re-establishes that
// order across aggregates anyway.
func Delete(agg *schema.Aggregate, rootID uuid.UUID, opts ...Option) (*change.AggregateChange, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.version != nil && !agg.HasVersion() {
		return nil, fmt.Errorf("aggregate %q: %w", agg.Entity, ErrNoVersionColumn)
	}

	c := change.NewAggregateChange()

	if o.lock {
		c.Append(change.AcquireLock{
			Table:    agg.Root.Name,
			IDColumn: agg.Root.IDColumn,
			ID:       rootID,
		})
	}

	paths := make([]schema.Path, len(agg.Paths))
	copy(paths, agg.Paths)
	sort.SliceStable(paths, func(i, j int) bool {
		return paths[i].Path.Depth() > paths[j].Path.Depth()
	})
	for _, p := range paths {
		c.Append(change.Delete{
			Path:   p.Path,
			Table:  p.Table,
			Column: p.RootColumn,
			Value:  rootID,
		})
	}

	root := change.DeleteRoot{
		Table:    agg.Root.Name,
		IDColumn: agg.Root.IDColumn,
		ID:       rootID,
	}
	if o.version != nil {
		root.VersionColumn = agg.Root.VersionColumn
		root.PreviousVersion = o.version
	}
	c.Append(root)

	return c, nil
}
