package builder

// Depth is a shared nesting counter threaded through every Object/Array
// builder opened while building one document. Each builder records the
// depth value at the moment it was created (its "current depth") and
// compares it against the live counter before every push and at Finish;
// a mismatch means a nested builder obtained earlier was never finished,
// which is the only way the counter could have moved on without this
// builder's knowledge.
//
// Grounded on the Depth<'a> borrow-counter in
// _examples/original_source/src/builder/{mod,object,array}.rs.
type Depth struct {
	total *int
}

// NewDepth creates a fresh counter starting at zero, for a new top-level
// document.
func NewDepth() Depth {
	return Depth{total: new(int)}
}

// Value returns the live nesting depth.
func (d Depth) Value() int { return *d.total }

// Increase is called when a new Object/Array builder is opened.
func (d Depth) Increase() { *d.total++ }

// Decrease is called when a builder finishes successfully.
func (d Depth) Decrease() { *d.total-- }
