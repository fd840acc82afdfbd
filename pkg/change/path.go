package change

import "strings"

// PropertyPath locates a nested entity within an aggregate as the ordered
// sequence of property traversals from the root.
type PropertyPath struct {
	segments []string
}

// NewPropertyPath builds a path from its traversal segments. An empty
// segment list is the root position itself.
func NewPropertyPath(segments ...string) PropertyPath {
	copied := make([]string, len(segments))
	copy(copied, segments)
	return PropertyPath{segments: copied}
}

// Depth returns the number of traversals in the path.
func (p PropertyPath) Depth() int {
	return len(p.segments)
}

// Segments returns a copy of the traversal sequence.
func (p PropertyPath) Segments() []string {
	copied := make([]string, len(p.segments))
	copy(copied, p.segments)
	return copied
}

// String returns the dotted form of the path, e.g. "orders.lineItems".
func (p PropertyPath) String() string {
	return strings.Join(p.segments, ".")
}

// Equal reports whether both paths have the same traversal sequence.
func (p PropertyPath) Equal(other PropertyPath) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i, segment := range p.segments {
		if other.segments[i] != segment {
			return false
		}
	}
	return true
}
