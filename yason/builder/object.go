package builder

import (
	"github.com/yashan-technologies/yason-go/internal/yasonbuf"
	"github.com/yashan-technologies/yason-go/yason"
)

const (
	dataTypeSize     = 1
	objectSize       = 4
	arraySize        = 4
	boolSize         = 1
	elementCountSize = 2
	keyOffsetSize    = 4
	valueEntrySize   = dataTypeSize + 4
	keyLengthSize    = 2
)

// innerObject is the shared implementation behind ObjectBuilder (owns its
// buffer) and ObjectRefBuilder (appends into a parent's buffer). bytes is
// always a pointer to the slice actually being grown, so appends made by
// a nested builder are visible to the parent once control returns to it.
//
// Grounded on InnerObjectBuilder in
// _examples/original_source/src/builder/object.rs.
type innerObject struct {
	bytes        *[]byte
	elementCount uint16
	startPos     int // absolute position of the element-count field
	keyOffsetPos int // next key-offset slot to fill, when keySorted
	valueCount   uint16
	initLen      int
	keySorted    bool
	currentDepth int
	depth        Depth
}

func newInnerObject(bytes *[]byte, elementCount uint16, keySorted bool, depth Depth) (*innerObject, error) {
	if depth.Value() >= yason.MaxNestedDepth {
		return nil, NestedTooDeeplyError{}
	}

	initLen := len(*bytes)
	*bytes = append(*bytes, byte(yason.TypeObject))
	*bytes = yasonbuf.SkipZero(*bytes, objectSize)
	startPos := len(*bytes)
	*bytes = yasonbuf.PutUint16LE(*bytes, elementCount)
	keyOffsetPos := len(*bytes)
	*bytes = yasonbuf.SkipZero(*bytes, int(elementCount)*keyOffsetSize)

	depth.Increase()

	return &innerObject{
		bytes:        bytes,
		elementCount: elementCount,
		startPos:     startPos,
		keyOffsetPos: keyOffsetPos,
		keySorted:    keySorted,
		initLen:      initLen,
		currentDepth: depth.Value(),
		depth:        depth,
	}, nil
}

func (b *innerObject) readKeyByOffset(keyOffset int) string {
	bytes := *b.bytes
	keyIndex := keyOffset + b.startPos
	keyLen := int(yasonbuf.ReadUint16LE(bytes, keyIndex))
	return string(bytes[keyIndex+keyLengthSize : keyIndex+keyLengthSize+keyLen])
}

func (b *innerObject) binarySearch(target string) int {
	bytes := *b.bytes
	begin := b.startPos + elementCountSize
	lo, hi := 0, int(b.valueCount)
	for lo < hi {
		mid := (lo + hi) / 2
		offPos := begin + mid*keyOffsetSize
		keyOffset := int(yasonbuf.ReadUint32LE(bytes, offPos))
		cur := b.readKeyByOffset(keyOffset)
		switch c := yasonbuf.CompareKeys(cur, target); {
		case c == 0:
			return mid
		case c < 0:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return lo
}

func (b *innerObject) pushKeyValueBy(key string, f func()) error {
	if b.currentDepth != b.depth.Value() {
		return InnerUncompletedError{}
	}

	if !b.keySorted {
		pos := b.binarySearch(key)
		keyOffset := len(*b.bytes) - b.startPos
		offsetPos := b.startPos + elementCountSize + pos*keyOffsetSize

		if pos < int(b.valueCount) {
			count := (int(b.valueCount) - pos) * keyOffsetSize
			bytes := *b.bytes
			shifted := make([]byte, count)
			copy(shifted, bytes[offsetPos:offsetPos+count])
			copy(bytes[offsetPos+keyOffsetSize:offsetPos+keyOffsetSize+count], shifted)
			*b.bytes = bytes
		}
		yasonbuf.WriteUint32LEAt(*b.bytes, uint32(keyOffset), offsetPos)
		*b.bytes = appendKey(*b.bytes, key)
	} else {
		keyOffset := len(*b.bytes) - b.startPos
		yasonbuf.WriteUint32LEAt(*b.bytes, uint32(keyOffset), b.keyOffsetPos)
		*b.bytes = appendKey(*b.bytes, key)
	}

	b.keyOffsetPos += keyOffsetSize

	f()

	b.valueCount++
	return nil
}

func (b *innerObject) keySortedCheck() bool {
	if b.elementCount <= 1 {
		return true
	}
	bytes := *b.bytes
	begin := b.startPos + elementCountSize
	for i := 0; i < int(b.elementCount)-1; i++ {
		curOff := int(yasonbuf.ReadUint32LE(bytes, begin+i*keyOffsetSize))
		nextOff := int(yasonbuf.ReadUint32LE(bytes, begin+(i+1)*keyOffsetSize))
		cur := b.readKeyByOffset(curOff)
		next := b.readKeyByOffset(nextOff)
		if yasonbuf.CompareKeys(cur, next) > 0 {
			return false
		}
	}
	return true
}

func (b *innerObject) finish() (int, error) {
	if b.currentDepth != b.depth.Value() {
		return 0, InnerUncompletedError{}
	}
	if b.valueCount != b.elementCount {
		return 0, InconsistentElementCountError{Expected: b.elementCount, Actual: b.valueCount}
	}

	totalSize := len(*b.bytes) - b.startPos
	yasonbuf.WriteInt32LEAt(*b.bytes, int32(totalSize), b.startPos-objectSize)

	b.depth.Decrease()
	return b.initLen, nil
}

func (b *innerObject) pushObject(key string, elementCount uint16, keySorted bool) (*innerObject, error) {
	if err := b.pushKeyValueBy(key, func() {}); err != nil {
		return nil, err
	}
	return newInnerObject(b.bytes, elementCount, keySorted, b.depth)
}

func (b *innerObject) pushArray(key string, elementCount uint16) (*innerArray, error) {
	if err := b.pushKeyValueBy(key, func() {}); err != nil {
		return nil, err
	}
	return newInnerArray(b.bytes, elementCount, b.depth)
}

func (b *innerObject) pushString(key, value string) error {
	var appendErr error
	err := b.pushKeyValueBy(key, func() {
		*b.bytes, appendErr = appendString(*b.bytes, value)
	})
	if err != nil {
		return err
	}
	return appendErr
}

func (b *innerObject) pushNumber(key string, value yason.Number) error {
	var appendErr error
	err := b.pushKeyValueBy(key, func() {
		*b.bytes, appendErr = appendNumber(*b.bytes, value)
	})
	if err != nil {
		return err
	}
	return appendErr
}

func (b *innerObject) pushBool(key string, value bool) error {
	return b.pushKeyValueBy(key, func() {
		*b.bytes = appendBool(*b.bytes, value)
	})
}

func (b *innerObject) pushNull(key string) error {
	return b.pushKeyValueBy(key, func() {
		*b.bytes = appendTag(*b.bytes, yason.TypeNull)
	})
}

// ObjectBuilder builds a top-level object document.
type ObjectBuilder struct {
	inner *innerObject
}

// NewObjectBuilder creates a builder for an object with the given element
// count. When keySorted is true, the caller promises to push keys in
// already-sorted order (a fast path); otherwise each push binary-searches
// the current key table to keep it sorted incrementally.
func NewObjectBuilder(elementCount uint16, keySorted bool) (*ObjectBuilder, error) {
	bytes := make([]byte, 0, 128)
	inner, err := newInnerObject(&bytes, elementCount, keySorted, NewDepth())
	if err != nil {
		return nil, err
	}
	return &ObjectBuilder{inner: inner}, nil
}

// Finish completes the object and returns the finished document. Finish
// fails if fewer or more values were pushed than the declared element
// count, or if a nested builder obtained from this one was never
// finished.
func (b *ObjectBuilder) Finish() (*yason.YasonBuf, error) {
	initLen, err := b.inner.finish()
	if err != nil {
		return nil, err
	}
	return yason.NewBufUnchecked((*b.inner.bytes)[initLen:]), nil
}

// PushObject opens a nested object builder for key.
func (b *ObjectBuilder) PushObject(key string, elementCount uint16, keySorted bool) (*ObjectRefBuilder, error) {
	inner, err := b.inner.pushObject(key, elementCount, keySorted)
	if err != nil {
		return nil, err
	}
	return &ObjectRefBuilder{inner: inner}, nil
}

// PushArray opens a nested array builder for key.
func (b *ObjectBuilder) PushArray(key string, elementCount uint16) (*ArrayRefBuilder, error) {
	inner, err := b.inner.pushArray(key, elementCount)
	if err != nil {
		return nil, err
	}
	return &ArrayRefBuilder{inner: inner}, nil
}

// PushString pushes a key/string pair.
func (b *ObjectBuilder) PushString(key, value string) error { return b.inner.pushString(key, value) }

// PushNumber pushes a key/number pair.
func (b *ObjectBuilder) PushNumber(key string, value yason.Number) error {
	return b.inner.pushNumber(key, value)
}

// PushBool pushes a key/bool pair.
func (b *ObjectBuilder) PushBool(key string, value bool) error { return b.inner.pushBool(key, value) }

// PushNull pushes a key/null pair.
func (b *ObjectBuilder) PushNull(key string) error { return b.inner.pushNull(key) }

// ObjectRefBuilder builds an object value nested inside a parent
// Object/Array builder.
type ObjectRefBuilder struct {
	inner *innerObject
}

// Finish completes the nested object and returns a view of it within the
// parent's buffer.
func (b *ObjectRefBuilder) Finish() (*yason.Yason, error) {
	initLen, err := b.inner.finish()
	if err != nil {
		return nil, err
	}
	return yason.NewUnchecked((*b.inner.bytes)[initLen:]), nil
}

// PushObject opens a nested object builder for key.
func (b *ObjectRefBuilder) PushObject(key string, elementCount uint16, keySorted bool) (*ObjectRefBuilder, error) {
	inner, err := b.inner.pushObject(key, elementCount, keySorted)
	if err != nil {
		return nil, err
	}
	return &ObjectRefBuilder{inner: inner}, nil
}

// PushArray opens a nested array builder for key.
func (b *ObjectRefBuilder) PushArray(key string, elementCount uint16) (*ArrayRefBuilder, error) {
	inner, err := b.inner.pushArray(key, elementCount)
	if err != nil {
		return nil, err
	}
	return &ArrayRefBuilder{inner: inner}, nil
}

// PushString pushes a key/string pair.
func (b *ObjectRefBuilder) PushString(key, value string) error { return b.inner.pushString(key, value) }

// PushNumber pushes a key/number pair.
func (b *ObjectRefBuilder) PushNumber(key string, value yason.Number) error {
	return b.inner.pushNumber(key, value)
}

// PushBool pushes a key/bool pair.
func (b *ObjectRefBuilder) PushBool(key string, value bool) error {
	return b.inner.pushBool(key, value)
}

// PushNull pushes a key/null pair.
func (b *ObjectRefBuilder) PushNull(key string) error { return b.inner.pushNull(key) }
