package yason

// Byte-layout constants for the YASON binary format. Every multi-byte
// integer is little-endian. Offsets stored in the format are always
// relative to the first byte following a container's own 4-byte size
// field, never relative to the start of the buffer.
const (
	dataTypeSize     = 1 // one tag byte precedes every value
	objectSize       = 4 // i32 total byte size of an object's body
	arraySize        = 4 // i32 total byte size of an array's body
	boolSize         = 1
	elementCountSize = 2 // u16 element/key count
	keyOffsetSize    = 4 // u32 offset into the object body for each key
	valueEntrySize   = dataTypeSize + 4 // tag + u32 field (offset or inlined bool)
	keyLengthSize    = 2                // u16, keys are never varint-length-prefixed
	maxDataLengthSize = 4               // varint string length caps at 4 bytes
	// MaxStringSize is the largest string payload representable by the
	// 4-byte varint length prefix: 2^28 - 1.
	MaxStringSize     = 268435455
	numberLengthSize  = 1 // u8 length prefix before the opaque decimal payload

	// MaxNestedDepth bounds how many Object/Array builders may be open
	// (nested) at once, guarding against unbounded recursion while
	// building a document.
	MaxNestedDepth = 100
)
