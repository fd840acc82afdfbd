package change

// AggregateChange is the ordered sequence of operations required to delete
// one aggregate instance: an optional protective lock, the nested entities,
// and the root. It is produced by a collaborator that understands the
// aggregate's mapping; this package treats the sequence as opaque input.
type AggregateChange struct {
	ops []Operation
}

// NewAggregateChange returns an empty change sequence.
func NewAggregateChange() *AggregateChange {
	return &AggregateChange{}
}

// Append adds operations to the end of the sequence.
func (c *AggregateChange) Append(ops ...Operation) {
	c.ops = append(c.ops, ops...)
}

// Len returns the number of operations in the sequence.
func (c *AggregateChange) Len() int {
	return len(c.ops)
}

// Operations returns a copy of the sequence.
func (c *AggregateChange) Operations() []Operation {
	copied := make([]Operation, len(c.ops))
	copy(copied, c.ops)
	return copied
}

func (c *AggregateChange) forEach(fn func(Operation)) {
	for _, op := range c.ops {
		fn(op)
	}
}
