package yason

import "fmt"

// errorType mirrors the simple string-backed error idiom used for fixed,
// parameterless error values: a named string implementing error.Error.
type errorType string

func (e errorType) Error() string { return string(e) }

// Read/query errors. These are returned while navigating an already-built
// document: random access lookups, typed accessors, and path queries.
const (
	// ErrMultiValuesWithoutWrapper names the condition where a path
	// expression can yield more than one value but WITH WRAPPER was not
	// requested. path.Query reports it as a *path.QueryError with Kind
	// MultiValuesWithoutWrapper, not as this value.
	ErrMultiValuesWithoutWrapper = errorType("path expression may return multiple values but wrapper was not requested")
	// ErrInvalidPathExpression names the condition where Exists is called
	// with a path expression ending in an item method, which only makes
	// sense under Query. path.Exists reports it as a *path.QueryError with
	// Kind InvalidPathExpression, not as this value.
	ErrInvalidPathExpression = errorType("path expression is not valid in this context")
)

// IndexOutOfBoundsError reports an out-of-range access against the
// document's backing bytes or one of its containers.
type IndexOutOfBoundsError struct {
	Len   int
	Index int
}

func (e IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("index out of bounds: the len is %d but the index is %d", e.Len, e.Index)
}

// UnexpectedTypeError reports that a typed accessor (Object, Array,
// String, Number, Bool) was called against a value of a different type.
type UnexpectedTypeError struct {
	Expected DataType
	Actual   DataType
}

func (e UnexpectedTypeError) Error() string {
	return fmt.Sprintf("unexpected data type: expected %s, actual %s", e.Expected, e.Actual)
}

// InvalidDataTypeError reports a tag byte that does not correspond to any
// of the six closed data types; it can only occur against corrupted or
// foreign input bytes.
type InvalidDataTypeError struct {
	Byte byte
}

func (e InvalidDataTypeError) Error() string {
	return fmt.Sprintf("invalid data type byte: %d", e.Byte)
}

// TryReserveError reports that growing a buffer to the requested capacity
// failed, surfaced the same way Rust's try_reserve is surfaced: as a
// typed, recoverable error rather than a panic.
type TryReserveError struct {
	Requested int
}

func (e TryReserveError) Error() string {
	return fmt.Sprintf("failed to reserve %d bytes", e.Requested)
}
