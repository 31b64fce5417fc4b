package builder

import (
	"github.com/yashan-technologies/yason-go/internal/yasonbuf"
	"github.com/yashan-technologies/yason-go/yason"
)

// innerArray is the shared implementation behind ArrayBuilder and
// ArrayRefBuilder, mirroring innerObject's buffer-pointer + Depth design.
//
// Grounded on InnerArrayBuilder in
// _examples/original_source/src/builder/array.rs.
type innerArray struct {
	bytes         *[]byte
	elementCount  uint16
	startPos      int // absolute position of the element-count field
	valueEntryPos int // next value-entry slot to fill
	valueCount    uint16
	initLen       int
	currentDepth  int
	depth         Depth
}

func newInnerArray(bytes *[]byte, elementCount uint16, depth Depth) (*innerArray, error) {
	if depth.Value() >= yason.MaxNestedDepth {
		return nil, NestedTooDeeplyError{}
	}

	initLen := len(*bytes)
	*bytes = append(*bytes, byte(yason.TypeArray))
	*bytes = yasonbuf.SkipZero(*bytes, arraySize)
	startPos := len(*bytes)
	*bytes = yasonbuf.PutUint16LE(*bytes, elementCount)
	valueEntryPos := len(*bytes)
	*bytes = yasonbuf.SkipZero(*bytes, int(elementCount)*valueEntrySize)

	depth.Increase()

	return &innerArray{
		bytes:         bytes,
		elementCount:  elementCount,
		startPos:      startPos,
		valueEntryPos: valueEntryPos,
		initLen:       initLen,
		currentDepth:  depth.Value(),
		depth:         depth,
	}, nil
}

// writeEntry backpatches the current value-entry slot with the given tag
// and 4-byte field, then advances to the next slot.
func (b *innerArray) writeEntry(tag yason.DataType, field uint32) {
	bytes := *b.bytes
	bytes[b.valueEntryPos] = byte(tag)
	yasonbuf.WriteUint32LEAt(bytes, field, b.valueEntryPos+dataTypeSize)
	b.valueEntryPos += valueEntrySize
}

func (b *innerArray) pushValueBy(tag yason.DataType, inlineField uint32, outlined bool, f func()) error {
	if b.currentDepth != b.depth.Value() {
		return InnerUncompletedError{}
	}

	if outlined {
		offset := len(*b.bytes) - b.startPos
		b.writeEntry(tag, uint32(offset))
		f()
	} else {
		b.writeEntry(tag, inlineField)
	}

	b.valueCount++
	return nil
}

func (b *innerArray) finish() (int, error) {
	if b.currentDepth != b.depth.Value() {
		return 0, InnerUncompletedError{}
	}
	if b.valueCount != b.elementCount {
		return 0, InconsistentElementCountError{Expected: b.elementCount, Actual: b.valueCount}
	}

	totalSize := len(*b.bytes) - b.startPos
	yasonbuf.WriteInt32LEAt(*b.bytes, int32(totalSize), b.startPos-arraySize)

	b.depth.Decrease()
	return b.initLen, nil
}

func (b *innerArray) pushObject(elementCount uint16, keySorted bool) (*innerObject, error) {
	if b.currentDepth != b.depth.Value() {
		return nil, InnerUncompletedError{}
	}
	offset := len(*b.bytes) - b.startPos
	b.writeEntry(yason.TypeObject, uint32(offset))
	inner, err := newInnerObject(b.bytes, elementCount, keySorted, b.depth)
	if err != nil {
		return nil, err
	}
	b.valueCount++
	return inner, nil
}

func (b *innerArray) pushArray(elementCount uint16) (*innerArray, error) {
	if b.currentDepth != b.depth.Value() {
		return nil, InnerUncompletedError{}
	}
	offset := len(*b.bytes) - b.startPos
	b.writeEntry(yason.TypeArray, uint32(offset))
	inner, err := newInnerArray(b.bytes, elementCount, b.depth)
	if err != nil {
		return nil, err
	}
	b.valueCount++
	return inner, nil
}

func (b *innerArray) pushString(value string) error {
	var appendErr error
	err := b.pushValueBy(yason.TypeString, 0, true, func() {
		*b.bytes, appendErr = appendString(*b.bytes, value)
	})
	if err != nil {
		return err
	}
	return appendErr
}

func (b *innerArray) pushNumber(value yason.Number) error {
	var appendErr error
	err := b.pushValueBy(yason.TypeNumber, 0, true, func() {
		*b.bytes, appendErr = appendNumber(*b.bytes, value)
	})
	if err != nil {
		return err
	}
	return appendErr
}

// pushBool inlines the bool directly into the value entry's 4-byte field,
// the one array-entry type that is never outlined.
func (b *innerArray) pushBool(value bool) error {
	field := uint32(0)
	if value {
		field = 1
	}
	return b.pushValueBy(yason.TypeBool, field, false, nil)
}

func (b *innerArray) pushNull() error {
	return b.pushValueBy(yason.TypeNull, 0, false, nil)
}

// ArrayBuilder builds a top-level array document.
type ArrayBuilder struct {
	inner *innerArray
}

// NewArrayBuilder creates a builder for an array with the given element
// count.
func NewArrayBuilder(elementCount uint16) (*ArrayBuilder, error) {
	bytes := make([]byte, 0, 128)
	inner, err := newInnerArray(&bytes, elementCount, NewDepth())
	if err != nil {
		return nil, err
	}
	return &ArrayBuilder{inner: inner}, nil
}

// Finish completes the array and returns the finished document.
func (b *ArrayBuilder) Finish() (*yason.YasonBuf, error) {
	initLen, err := b.inner.finish()
	if err != nil {
		return nil, err
	}
	return yason.NewBufUnchecked((*b.inner.bytes)[initLen:]), nil
}

// PushObject opens a nested object builder for the next element.
func (b *ArrayBuilder) PushObject(elementCount uint16, keySorted bool) (*ObjectRefBuilder, error) {
	inner, err := b.inner.pushObject(elementCount, keySorted)
	if err != nil {
		return nil, err
	}
	return &ObjectRefBuilder{inner: inner}, nil
}

// PushArray opens a nested array builder for the next element.
func (b *ArrayBuilder) PushArray(elementCount uint16) (*ArrayRefBuilder, error) {
	inner, err := b.inner.pushArray(elementCount)
	if err != nil {
		return nil, err
	}
	return &ArrayRefBuilder{inner: inner}, nil
}

// PushString pushes the next element as a string.
func (b *ArrayBuilder) PushString(value string) error { return b.inner.pushString(value) }

// PushNumber pushes the next element as a number.
func (b *ArrayBuilder) PushNumber(value yason.Number) error { return b.inner.pushNumber(value) }

// PushBool pushes the next element as a bool.
func (b *ArrayBuilder) PushBool(value bool) error { return b.inner.pushBool(value) }

// PushNull pushes the next element as null.
func (b *ArrayBuilder) PushNull() error { return b.inner.pushNull() }

// ArrayRefBuilder builds an array value nested inside a parent
// Object/Array builder.
type ArrayRefBuilder struct {
	inner *innerArray
}

// Finish completes the nested array and returns a view of it within the
// parent's buffer.
func (b *ArrayRefBuilder) Finish() (*yason.Yason, error) {
	initLen, err := b.inner.finish()
	if err != nil {
		return nil, err
	}
	return yason.NewUnchecked((*b.inner.bytes)[initLen:]), nil
}

// PushObject opens a nested object builder for the next element.
func (b *ArrayRefBuilder) PushObject(elementCount uint16, keySorted bool) (*ObjectRefBuilder, error) {
	inner, err := b.inner.pushObject(elementCount, keySorted)
	if err != nil {
		return nil, err
	}
	return &ObjectRefBuilder{inner: inner}, nil
}

// PushArray opens a nested array builder for the next element.
func (b *ArrayRefBuilder) PushArray(elementCount uint16) (*ArrayRefBuilder, error) {
	inner, err := b.inner.pushArray(elementCount)
	if err != nil {
		return nil, err
	}
	return &ArrayRefBuilder{inner: inner}, nil
}

// PushString pushes the next element as a string.
func (b *ArrayRefBuilder) PushString(value string) error { return b.inner.pushString(value) }

// PushNumber pushes the next element as a number.
func (b *ArrayRefBuilder) PushNumber(value yason.Number) error { return b.inner.pushNumber(value) }

// PushBool pushes the next element as a bool.
func (b *ArrayRefBuilder) PushBool(value bool) error { return b.inner.pushBool(value) }

// PushNull pushes the next element as null.
func (b *ArrayRefBuilder) PushNull() error { return b.inner.pushNull() }
