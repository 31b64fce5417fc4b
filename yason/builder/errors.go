// Package builder implements the reserve-then-backpatch YASON encoder:
// ObjectBuilder/ArrayBuilder for top-level documents and
// ObjectRefBuilder/ArrayRefBuilder for values nested inside them.
//
// Grounded on _examples/original_source/src/builder/{mod,object,array,scalar}.rs.
package builder

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// InnerUncompletedError is returned when a builder operation is attempted
// while a nested Object/Array builder obtained from it has not yet been
// finished. The shared depth counter (see Depth) makes this detectable
// without tracking parent/child pointers.
type InnerUncompletedError struct{}

func (InnerUncompletedError) Error() string { return "inner builder is not finished" }

// InconsistentElementCountError is returned by Finish when the number of
// values actually pushed does not match the element count the builder was
// created with.
type InconsistentElementCountError struct {
	Expected uint16
	Actual   uint16
}

func (e InconsistentElementCountError) Error() string {
	return fmt.Sprintf("inconsistent element count, expected %d, actual %d", e.Expected, e.Actual)
}

// StringTooLongError is returned when a string payload exceeds
// yason.MaxStringSize.
type StringTooLongError struct {
	Length int
}

func (e StringTooLongError) Error() string {
	return fmt.Sprintf("string too long: %s", humanize.Bytes(uint64(e.Length)))
}

// NestedTooDeeplyError is returned when opening a new Object/Array builder
// would exceed yason.MaxNestedDepth.
type NestedTooDeeplyError struct{}

func (NestedTooDeeplyError) Error() string { return "nested too deeply" }

// NumberErrorWrap adapts a yason.NumberError into the build error
// taxonomy.
type NumberErrorWrap struct {
	Err error
}

func (e NumberErrorWrap) Error() string { return e.Err.Error() }
func (e NumberErrorWrap) Unwrap() error { return e.Err }

// JSONError adapts an external JSON parser error into the build error
// taxonomy, used when converting JSON text to YASON.
type JSONError struct {
	Err error
}

func (e JSONError) Error() string { return fmt.Sprintf("invalid json: %s", e.Err) }
func (e JSONError) Unwrap() error { return e.Err }
