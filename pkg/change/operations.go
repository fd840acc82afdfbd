package change

// Kind discriminates the closed set of operation variants.
type Kind int

const (
	KindAcquireLock Kind = iota
	KindDelete
	KindDeleteRoot
	KindBatchDelete
	KindBatchDeleteRoot
	KindBatchDeleteRootWithVersion
)

// String returns the name of the operation kind.
func (k Kind) String() string {
	switch k {
	case KindAcquireLock:
		return "acquire_lock"
	case KindDelete:
		return "delete"
	case KindDeleteRoot:
		return "delete_root"
	case KindBatchDelete:
		return "batch_delete"
	case KindBatchDeleteRoot:
		return "batch_delete_root"
	case KindBatchDeleteRootWithVersion:
		return "batch_delete_root_with_version"
	default:
		return "unknown"
	}
}

// Operation describes one unit of work produced while cascading a delete
// through an aggregate. Operations are immutable once handed to a
// DeleteBatch; executors dispatch on Kind.
type Operation interface {
	Kind() Kind
}

// Delete removes the non-root rows at one tree position that belong to a
// single aggregate instance. The identity triple (Table, Column, Value) is
// opaque to the batching engine; only Path participates in grouping.
type Delete struct {
	Path   PropertyPath
	Table  string
	Column string
	Value  any
}

// Kind implements Operation.
func (Delete) Kind() Kind { return KindDelete }

// DeleteRoot removes one aggregate root row. PreviousVersion, when set,
// requests an optimistic-concurrency check against VersionColumn.
type DeleteRoot struct {
	Table           string
	IDColumn        string
	ID              any
	VersionColumn   string
	PreviousVersion *int64
}

// Kind implements Operation.
func (DeleteRoot) Kind() Kind { return KindDeleteRoot }

// AcquireLock requests a protective lock on a root row before its cascade
// runs, so concurrent writers cannot race the multi-statement delete.
type AcquireLock struct {
	Table    string
	IDColumn string
	ID       any
}

// Kind implements Operation.
func (AcquireLock) Kind() Kind { return KindAcquireLock }

// BatchDelete wraps two or more Delete operations sharing one tree
// position, in their original insertion order.
type BatchDelete struct {
	Deletes []Delete
}

// Kind implements Operation.
func (BatchDelete) Kind() Kind { return KindBatchDelete }

// Path returns the tree position shared by the wrapped deletes.
func (b BatchDelete) Path() PropertyPath {
	return b.Deletes[0].Path
}

// BatchDeleteRoot wraps two or more DeleteRoot operations whose version key
// is absent, in their original insertion order.
type BatchDeleteRoot struct {
	Roots []DeleteRoot
}

// Kind implements Operation.
func (BatchDeleteRoot) Kind() Kind { return KindBatchDeleteRoot }

// BatchDeleteRootWithVersion wraps two or more DeleteRoot operations that
// share one non-absent version key. It is a distinct variant because the
// generated statement must carry a version-equality predicate.
type BatchDeleteRootWithVersion struct {
	Roots []DeleteRoot
}

// Kind implements Operation.
func (BatchDeleteRootWithVersion) Kind() Kind { return KindBatchDeleteRootWithVersion }
