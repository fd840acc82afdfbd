package change

import "sort"

// versionKey is the comparable grouping key for root deletes. The zero
// value stands for "no version check".
type versionKey struct {
	present bool
	value   int64
}

func versionKeyOf(v *int64) versionKey {
	if v == nil {
		return versionKey{}
	}
	return versionKey{present: true, value: *v}
}

// buckets is an insertion-ordered grouping map. Replay walks order, so the
// emitted sequence is deterministic within one process run.
type buckets[K comparable, V any] struct {
	order []K
	items map[K][]V
}

func newBuckets[K comparable, V any]() *buckets[K, V] {
	return &buckets[K, V]{items: make(map[K][]V)}
}

func (b *buckets[K, V]) add(key K, v V) {
	if _, ok := b.items[key]; !ok {
		b.order = append(b.order, key)
	}
	b.items[key] = append(b.items[key], v)
}

// DeleteBatch accumulates the delete operations of many aggregate instances
// and replays them in an order that is safe for a relational store: locks
// first, then non-root deletes from the leaves towards the root, then root
// deletes grouped by their optimistic-concurrency version. Groups with two
// or more operations are merged into a single batched operation.
//
// A DeleteBatch is a single-writer builder: construct one per unit of work,
// feed it through Add, consume it once through Replay. It is not safe for
// concurrent use.
type DeleteBatch struct {
	entity  string
	locks   []AcquireLock
	deletes *buckets[string, Delete]
	roots   *buckets[versionKey, DeleteRoot]
}

// NewDeleteBatch starts an empty batch for the named root entity.
func NewDeleteBatch(entity string) *DeleteBatch {
	return &DeleteBatch{
		entity:  entity,
		deletes: newBuckets[string, Delete](),
		roots:   newBuckets[versionKey, DeleteRoot](),
	}
}

// Entity returns the root entity name the batch was created for.
func (b *DeleteBatch) Entity() string {
	return b.entity
}

// Size returns the number of operations accumulated so far.
func (b *DeleteBatch) Size() int {
	n := len(b.locks)
	for _, ops := range b.deletes.items {
		n += len(ops)
	}
	for _, ops := range b.roots.items {
		n += len(ops)
	}
	return n
}

// Add classifies every operation of one aggregate's change sequence and
// routes it into the matching bucket. Lock operations keep their arrival
// order, root deletes group by version, non-root deletes group by tree
// position. Batched variants fed back in are not this engine's input and
// are ignored.
func (b *DeleteBatch) Add(change *AggregateChange) {
	change.forEach(func(op Operation) {
		switch op := op.(type) {
		case AcquireLock:
			b.locks = append(b.locks, op)
		case DeleteRoot:
			b.roots.add(versionKeyOf(op.PreviousVersion), op)
		case Delete:
			b.deletes.add(op.Path.String(), op)
		}
	})
}

// Replay emits the accumulated operations to sink in dependency-safe order:
//
//  1. every lock, in add order;
//  2. every non-root bucket, deepest path first, so child rows are gone
//     before the rows they reference;
//  3. every root bucket, one per distinct version key.
//
// A bucket holding a single operation is emitted unwrapped; a bucket
// holding two or more is emitted as one batched operation preserving
// insertion order. Replay stops at the first sink error and returns it.
// Replay does not consume the batch: a second call yields the same
// sequence.
func (b *DeleteBatch) Replay(sink func(Operation) error) error {
	for _, lock := range b.locks {
		if err := sink(lock); err != nil {
			return err
		}
	}

	keys := make([]string, len(b.deletes.order))
	copy(keys, b.deletes.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return b.deletes.items[keys[i]][0].Path.Depth() > b.deletes.items[keys[j]][0].Path.Depth()
	})
	for _, key := range keys {
		ops := b.deletes.items[key]
		if len(ops) > 1 {
			if err := sink(BatchDelete{Deletes: ops}); err != nil {
				return err
			}
			continue
		}
		if err := sink(ops[0]); err != nil {
			return err
		}
	}

	for _, key := range b.roots.order {
		roots := b.roots.items[key]
		if len(roots) > 1 {
			var batched Operation
			if key.present {
				batched = BatchDeleteRootWithVersion{Roots: roots}
			} else {
				batched = BatchDeleteRoot{Roots: roots}
			}
			if err := sink(batched); err != nil {
				return err
			}
			continue
		}
		if err := sink(roots[0]); err != nil {
			return err
		}
	}

	return nil
}
