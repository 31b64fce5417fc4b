package yason

// Array is a read-only, zero-copy view over a YASON array.
//
// Grounded on _examples/original_source/src/yason/array.rs.
type Array struct {
	y *Yason
}

// NewArrayUnchecked wraps yason as an Array without validating its tag.
func NewArrayUnchecked(y *Yason) Array { return Array{y: y} }

func (a Array) startPos() int { return dataTypeSize + arraySize }

// Len returns the number of elements.
func (a Array) Len() (int, error) {
	n, err := a.y.readU16(a.startPos())
	return int(n), err
}

// IsEmpty reports whether the array has no elements.
func (a Array) IsEmpty() (bool, error) {
	n, err := a.Len()
	return n == 0, err
}

func (a Array) valueEntryPos(index int) int {
	return a.startPos() + elementCountSize + index*valueEntrySize
}

// TypeOf returns the element's data type at index.
func (a Array) TypeOf(index int) (DataType, error) {
	return a.y.readType(a.valueEntryPos(index))
}

// IsType reports whether the element at index has the given type.
func (a Array) IsType(index int, dt DataType) (bool, error) {
	return a.y.isType(a.valueEntryPos(index), dt)
}

// IsNull reports whether the element at index is null.
func (a Array) IsNull(index int) (bool, error) { return a.IsType(index, TypeNull) }

func (a Array) readValuePos(valueEntryPos int) (int, error) {
	offset, err := a.y.readU32(valueEntryPos + dataTypeSize)
	if err != nil {
		return 0, err
	}
	return int(offset) + dataTypeSize + arraySize, nil
}

func (a Array) readObject(valueEntryPos int) (Object, error) {
	valuePos, err := a.readValuePos(valueEntryPos)
	if err != nil {
		return Object{}, err
	}
	size, err := a.y.readI32(valuePos + dataTypeSize)
	if err != nil {
		return Object{}, err
	}
	end := valuePos + dataTypeSize + objectSize + int(size)
	b, err := a.y.slice(valuePos, end)
	if err != nil {
		return Object{}, err
	}
	return Object{y: NewUnchecked(b)}, nil
}

func (a Array) readArray(valueEntryPos int) (Array, error) {
	valuePos, err := a.readValuePos(valueEntryPos)
	if err != nil {
		return Array{}, err
	}
	size, err := a.y.readI32(valuePos + dataTypeSize)
	if err != nil {
		return Array{}, err
	}
	end := valuePos + dataTypeSize + arraySize + int(size)
	b, err := a.y.slice(valuePos, end)
	if err != nil {
		return Array{}, err
	}
	return Array{y: NewUnchecked(b)}, nil
}

func (a Array) readString(valueEntryPos int) (string, error) {
	valuePos, err := a.readValuePos(valueEntryPos)
	if err != nil {
		return "", err
	}
	return a.y.readString(valuePos)
}

func (a Array) readNumber(valueEntryPos int) (Number, error) {
	valuePos, err := a.readValuePos(valueEntryPos)
	if err != nil {
		return Number{}, err
	}
	return a.y.readNumber(valuePos)
}

// readBool reads a bool inlined directly into the value entry's 4-byte
// field, rather than outlined like every other non-null type.
func (a Array) readBool(valueEntryPos int) (bool, error) {
	return a.y.readBool(valueEntryPos + dataTypeSize)
}

func (a Array) checkedEntry(index int, dt DataType) (int, error) {
	n, err := a.Len()
	if err != nil {
		return 0, err
	}
	if index < 0 || index >= n {
		return 0, IndexOutOfBoundsError{Len: n, Index: index}
	}
	pos := a.valueEntryPos(index)
	if err := a.y.checkType(pos, dt); err != nil {
		return 0, err
	}
	return pos, nil
}

// GetObject returns the object-valued element at index.
func (a Array) GetObject(index int) (Object, error) {
	pos, err := a.checkedEntry(index, TypeObject)
	if err != nil {
		return Object{}, err
	}
	return a.readObject(pos)
}

// GetArray returns the array-valued element at index.
func (a Array) GetArray(index int) (Array, error) {
	pos, err := a.checkedEntry(index, TypeArray)
	if err != nil {
		return Array{}, err
	}
	return a.readArray(pos)
}

// GetString returns the string-valued element at index.
func (a Array) GetString(index int) (string, error) {
	pos, err := a.checkedEntry(index, TypeString)
	if err != nil {
		return "", err
	}
	return a.readString(pos)
}

// GetNumber returns the number-valued element at index.
func (a Array) GetNumber(index int) (Number, error) {
	pos, err := a.checkedEntry(index, TypeNumber)
	if err != nil {
		return Number{}, err
	}
	return a.readNumber(pos)
}

// GetBool returns the bool-valued element at index.
func (a Array) GetBool(index int) (bool, error) {
	pos, err := a.checkedEntry(index, TypeBool)
	if err != nil {
		return false, err
	}
	return a.readBool(pos)
}

func (a Array) valueAt(index int) (Value, error) {
	n, err := a.Len()
	if err != nil {
		return Value{}, err
	}
	if index < 0 || index >= n {
		return Value{}, IndexOutOfBoundsError{Len: n, Index: index}
	}

	pos := a.valueEntryPos(index)
	dt, err := a.y.readType(pos)
	if err != nil {
		return Value{}, err
	}

	switch dt {
	case TypeObject:
		v, err := a.readObject(pos)
		return Value{Type: TypeObject, Object: &v}, err
	case TypeArray:
		v, err := a.readArray(pos)
		return Value{Type: TypeArray, Array: &v}, err
	case TypeString:
		v, err := a.readString(pos)
		return Value{Type: TypeString, String: v}, err
	case TypeNumber:
		v, err := a.readNumber(pos)
		return Value{Type: TypeNumber, Number: v}, err
	case TypeBool:
		v, err := a.readBool(pos)
		return Value{Type: TypeBool, Bool: v}, err
	case TypeNull:
		return Value{Type: TypeNull}, nil
	default:
		return Value{}, InvalidDataTypeError{Byte: byte(dt)}
	}
}

// Get returns the element at index as a dynamically typed Value.
func (a Array) Get(index int) (Value, error) { return a.valueAt(index) }

// Iter returns all elements of the array in order.
func (a Array) Iter() ([]Value, error) {
	n, err := a.Len()
	if err != nil {
		return nil, err
	}
	values := make([]Value, 0, n)
	for i := 0; i < n; i++ {
		v, err := a.valueAt(i)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// Yason returns the byte view backing this array.
func (a Array) Yason() *Yason { return a.y }
