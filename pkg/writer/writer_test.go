package writer

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-relstore/pkg/change"
	"github.com/dd0wney/cluso-relstore/pkg/schema"
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

func TestDeleteEmitsLeafToRoot(t *testing.T) {
	rootID := uuid.New()

	c, err := Delete(orderAggregate(), rootID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	ops := c.Operations()
	if len(ops) != 4 {
		t.Fatalf("Expected 4 operations, got %d", len(ops))
	}

	first, ok := ops[0].(change.Delete)
	if !ok {
		t.Fatalf("Expected Delete first, got %T", ops[0])
	}
	if first.Table != "discount" {
		t.Errorf("Expected deepest table first, got %q", first.Table)
	}
	if first.Value != rootID {
		t.Errorf("Expected root id as identity value, got %v", first.Value)
	}

	lastDepth := first.Path.Depth()
	for _, op := range ops[1:3] {
		d, ok := op.(change.Delete)
		if !ok {
			t.Fatalf("Expected Delete, got %T", op)
		}
		if d.Path.Depth() > lastDepth {
			t.Errorf("Path %q emitted after a shallower path", d.Path)
		}
		lastDepth = d.Path.Depth()
	}

	root, ok := ops[3].(change.DeleteRoot)
	if !ok {
		t.Fatalf("Expected DeleteRoot last, got %T", ops[3])
	}
	if root.Table != "orders" || root.ID != rootID {
		t.Errorf("Unexpected root delete: %+v", root)
	}
	if root.PreviousVersion != nil {
		t.Error("Expected no version check without WithVersion")
	}
}

func TestDeleteWithLock(t *testing.T) {
	rootID := uuid.New()

	c, err := Delete(orderAggregate(), rootID, WithLock())
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	ops := c.Operations()
	lock, ok := ops[0].(change.AcquireLock)
	if !ok {
		t.Fatalf("Expected AcquireLock first, got %T", ops[0])
	}
	if lock.Table != "orders" || lock.ID != rootID {
		t.Errorf("Unexpected lock: %+v", lock)
	}
}

func TestDeleteWithVersion(t *testing.T) {
	c, err := Delete(orderAggregate(), uuid.New(), WithVersion(9))
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	ops := c.Operations()
	root, ok := ops[len(ops)-1].(change.DeleteRoot)
	if !ok {
		t.Fatalf("Expected DeleteRoot last, got %T", ops[len(ops)-1])
	}
	if root.PreviousVersion == nil || *root.PreviousVersion != 9 {
		t.Errorf("Expected version 9, got %v", root.PreviousVersion)
	}
	if root.VersionColumn != "version" {
		t.Errorf("Expected version column from schema, got %q", root.VersionColumn)
	}
}

func TestDeleteWithVersionRequiresVersionColumn(t *testing.T) {
	agg := orderAggregate()
	agg.Root.VersionColumn = ""

	_, err := Delete(agg, uuid.New(), WithVersion(1))
	if !errors.Is(err, ErrNoVersionColumn) {
		t.Fatalf("Expected ErrNoVersionColumn, got %v", err)
	}
}
