package yason

import "github.com/yashan-technologies/yason-go/internal/yasonbuf"

// Object is a read-only, zero-copy view over a YASON object. Keys are kept
// in (length, then lexicographic) order, which lets Get and FindKey use
// binary search instead of a linear scan.
//
// Grounded on _examples/original_source/src/yason/object.rs.
type Object struct {
	y *Yason
}

// NewObjectUnchecked wraps yason as an Object without validating its tag.
func NewObjectUnchecked(y *Yason) Object { return Object{y: y} }

func (o Object) startPos() int { return dataTypeSize + objectSize }

// Len returns the number of key/value pairs.
func (o Object) Len() (int, error) {
	n, err := o.y.readU16(o.startPos())
	return int(n), err
}

// IsEmpty reports whether the object has no entries.
func (o Object) IsEmpty() (bool, error) {
	n, err := o.Len()
	return n == 0, err
}

func (o Object) keyOffsetPos(index int) int {
	return o.startPos() + elementCountSize + index*keyOffsetSize
}

// keyIndex returns the absolute position of the key-length field for the
// entry at index.
func (o Object) keyIndex(index int) (int, error) {
	off, err := o.y.readU32(o.keyOffsetPos(index))
	if err != nil {
		return 0, err
	}
	return o.startPos() + int(off), nil
}

func (o Object) readKeyAt(keyIndex int) (string, error) {
	length, err := o.y.readU16(keyIndex)
	if err != nil {
		return "", err
	}
	b, err := o.y.slice(keyIndex+keyLengthSize, keyIndex+keyLengthSize+int(length))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Key returns the key at the given index, in storage (sorted) order.
func (o Object) Key(index int) (string, error) {
	n, err := o.Len()
	if err != nil {
		return "", err
	}
	if index < 0 || index >= n {
		return "", IndexOutOfBoundsError{Len: n, Index: index}
	}
	ki, err := o.keyIndex(index)
	if err != nil {
		return "", err
	}
	return o.readKeyAt(ki)
}

func (o Object) valuePos(keyIndex int, keyLen int) int {
	return keyIndex + keyLengthSize + keyLen
}

// FindKey performs a binary search for key among the object's sorted keys,
// returning the matching index or found=false.
func (o Object) FindKey(key string) (index int, found bool, err error) {
	n, err := o.Len()
	if err != nil {
		return 0, false, err
	}

	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		ki, kerr := o.keyIndex(mid)
		if kerr != nil {
			return 0, false, kerr
		}
		curKey, kerr := o.readKeyAt(ki)
		if kerr != nil {
			return 0, false, kerr
		}
		switch c := yasonbuf.CompareKeys(curKey, key); {
		case c == 0:
			return mid, true, nil
		case c < 0:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return lo, false, nil
}

// TypeOf returns the data type of the value at the given index.
func (o Object) TypeOf(index int) (DataType, error) {
	ki, err := o.keyIndex(index)
	if err != nil {
		return 0, err
	}
	keyLen, err := o.y.readU16(ki)
	if err != nil {
		return 0, err
	}
	return o.y.readType(o.valuePos(ki, int(keyLen)))
}

// IsType reports whether the value at index has the given type.
func (o Object) IsType(index int, dt DataType) (bool, error) {
	actual, err := o.TypeOf(index)
	if err != nil {
		return false, err
	}
	return actual == dt, nil
}

// IsNull reports whether the value at index is null.
func (o Object) IsNull(index int) (bool, error) { return o.IsType(index, TypeNull) }

func (o Object) valuePosFor(index int) (pos int, err error) {
	ki, err := o.keyIndex(index)
	if err != nil {
		return 0, err
	}
	keyLen, err := o.y.readU16(ki)
	if err != nil {
		return 0, err
	}
	return o.valuePos(ki, int(keyLen)), nil
}

// checkedValuePos validates the type at index and returns its value
// position (the position of the value's own tag byte).
func (o Object) checkedValuePos(index int, dt DataType) (int, error) {
	pos, err := o.valuePosFor(index)
	if err != nil {
		return 0, err
	}
	if err := o.y.checkType(pos, dt); err != nil {
		return 0, err
	}
	return pos, nil
}

func (o Object) readNestedObject(valuePos int) (Object, error) {
	size, err := o.y.readI32(valuePos + dataTypeSize)
	if err != nil {
		return Object{}, err
	}
	end := valuePos + dataTypeSize + objectSize + int(size)
	b, err := o.y.slice(valuePos, end)
	if err != nil {
		return Object{}, err
	}
	return Object{y: NewUnchecked(b)}, nil
}

func (o Object) readNestedArray(valuePos int) (Array, error) {
	size, err := o.y.readI32(valuePos + dataTypeSize)
	if err != nil {
		return Array{}, err
	}
	end := valuePos + dataTypeSize + arraySize + int(size)
	b, err := o.y.slice(valuePos, end)
	if err != nil {
		return Array{}, err
	}
	return Array{y: NewUnchecked(b)}, nil
}

// boolAt reads an object-context bool: a single byte immediately after the
// tag (objects never inline a bool into a 4-byte field; only array value
// entries do that).
func (o Object) boolAt(valuePos int) (bool, error) {
	pos := valuePos + dataTypeSize
	if pos >= len(o.y.bytes) {
		return false, IndexOutOfBoundsError{Len: len(o.y.bytes), Index: pos}
	}
	return o.y.bytes[pos] == 1, nil
}

// GetObject returns the object-valued entry at index, or an error if the
// value at that index is not an object.
func (o Object) GetObject(index int) (Object, error) {
	pos, err := o.checkedValuePos(index, TypeObject)
	if err != nil {
		return Object{}, err
	}
	return o.readNestedObject(pos)
}

// GetArray returns the array-valued entry at index.
func (o Object) GetArray(index int) (Array, error) {
	pos, err := o.checkedValuePos(index, TypeArray)
	if err != nil {
		return Array{}, err
	}
	return o.readNestedArray(pos)
}

// GetString returns the string-valued entry at index.
func (o Object) GetString(index int) (string, error) {
	pos, err := o.checkedValuePos(index, TypeString)
	if err != nil {
		return "", err
	}
	return o.y.readString(pos)
}

// GetNumber returns the number-valued entry at index.
func (o Object) GetNumber(index int) (Number, error) {
	pos, err := o.checkedValuePos(index, TypeNumber)
	if err != nil {
		return Number{}, err
	}
	return o.y.readNumber(pos)
}

// GetBool returns the bool-valued entry at index.
func (o Object) GetBool(index int) (bool, error) {
	pos, err := o.checkedValuePos(index, TypeBool)
	if err != nil {
		return false, err
	}
	return o.boolAt(pos)
}

// Value returns the entry at index as a dynamically typed Value.
func (o Object) Value(index int) (Value, error) {
	ki, err := o.keyIndex(index)
	if err != nil {
		return Value{}, err
	}
	keyLen, err := o.y.readU16(ki)
	if err != nil {
		return Value{}, err
	}
	pos := o.valuePos(ki, int(keyLen))
	dt, err := o.y.readType(pos)
	if err != nil {
		return Value{}, err
	}
	return o.readValueAt(pos, dt)
}

func (o Object) readValueAt(pos int, dt DataType) (Value, error) {
	switch dt {
	case TypeObject:
		v, err := o.readNestedObject(pos)
		return Value{Type: TypeObject, Object: &v}, err
	case TypeArray:
		v, err := o.readNestedArray(pos)
		return Value{Type: TypeArray, Array: &v}, err
	case TypeString:
		v, err := o.y.readString(pos)
		return Value{Type: TypeString, String: v}, err
	case TypeNumber:
		v, err := o.y.readNumber(pos)
		return Value{Type: TypeNumber, Number: v}, err
	case TypeBool:
		v, err := o.boolAt(pos)
		return Value{Type: TypeBool, Bool: v}, err
	case TypeNull:
		return Value{Type: TypeNull}, nil
	default:
		return Value{}, InvalidDataTypeError{Byte: byte(dt)}
	}
}

// Get looks up key via binary search and returns its value, or ok=false if
// absent.
func (o Object) Get(key string) (value Value, ok bool, err error) {
	idx, found, err := o.FindKey(key)
	if err != nil || !found {
		return Value{}, false, err
	}
	v, err := o.Value(idx)
	return v, true, err
}

// Entry pairs a key with its value, yielded by Iter in storage order.
type Entry struct {
	Key   string
	Value Value
}

// Iter returns the object's entries in storage (sorted) order.
func (o Object) Iter() ([]Entry, error) {
	n, err := o.Len()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		ki, err := o.keyIndex(i)
		if err != nil {
			return nil, err
		}
		key, err := o.readKeyAt(ki)
		if err != nil {
			return nil, err
		}
		keyLen, err := o.y.readU16(ki)
		if err != nil {
			return nil, err
		}
		pos := o.valuePos(ki, int(keyLen))
		dt, err := o.y.readType(pos)
		if err != nil {
			return nil, err
		}
		val, err := o.readValueAt(pos, dt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: key, Value: val})
	}
	return entries, nil
}

// Yason returns the byte view backing this object.
func (o Object) Yason() *Yason { return o.y }
