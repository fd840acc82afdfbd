// Package schema describes how a tree-shaped aggregate maps onto relational
// tables: the root table, and one table per nested property path, each
// holding a column that references the aggregate root's identifier.
package schema

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-relstore/pkg/change"
)

// Common validation errors
var (
	ErrNoEntity      = errors.New("aggregate has no entity name")
	ErrNoRootTable   = errors.New("aggregate has no root table")
	ErrEmptyPath     = errors.New("path has no traversal segments")
	ErrDuplicatePath = errors.New("duplicate property path")
	ErrNoTable       = errors.New("path has no table")
	ErrNoColumn      = errors.New("path has no root reference column")
)

// Table identifies the root table of an aggregate. VersionColumn is empty
// when the root carries no optimistic-concurrency version.
type Table struct {
	Name          string
	IDColumn      string
	VersionColumn string
}

// Path maps one nested property path to the table holding its rows.
// RootColumn is the column referencing the aggregate root's identifier.
type Path struct {
	Path       change.PropertyPath
	Table      string
	RootColumn string
}

// Aggregate is the delete-relevant mapping of one aggregate type.
type Aggregate struct {
	Entity string
	Root   Table
	Paths  []Path
}

// HasVersion reports whether the root table carries a version column.
func (a *Aggregate) HasVersion() bool {
	return a.Root.VersionColumn != ""
}

// Validate checks the mapping is complete enough to drive a cascading
// delete. It does not verify the tables exist; that is the store's concern.
func (a *Aggregate) Validate() error {
	if a.Entity == "" {
		return ErrNoEntity
	}
	if a.Root.Name == "" || a.Root.IDColumn == "" {
		return fmt.Errorf("aggregate %q: %w", a.Entity, ErrNoRootTable)
	}

	seen := make(map[string]struct{}, len(a.Paths))
	for _, p := range a.Paths {
		if p.Path.Depth() == 0 {
			return fmt.Errorf("aggregate %q: %w", a.Entity, ErrEmptyPath)
		}
		if p.Table == "" {
			return fmt.Errorf("aggregate %q, path %q: %w", a.Entity, p.Path, ErrNoTable)
		}
		if p.RootColumn == "" {
			return fmt.Errorf("aggregate %q, path %q: %w", a.Entity, p.Path, ErrNoColumn)
		}
		key := p.Path.String()
		if _, ok := seen[key]; ok {
			return fmt.Errorf("aggregate %q, path %q: %w", a.Entity, p.Path, ErrDuplicatePath)
		}
		seen[key] = struct{}{}
	}
	return nil
}
