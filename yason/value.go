package yason

// Value is an eagerly-typed snapshot of a single YASON value: exactly one
// of the fields below is meaningful, selected by Type. Object and Array
// still alias the original document bytes; only the Go struct itself is a
// fresh allocation.
type Value struct {
	Type   DataType
	Object *Object
	Array  *Array
	String string
	Number Number
	Bool   bool
}

// IsNull reports whether the value holds the Null data type.
func (v Value) IsNull() bool { return v.Type == TypeNull }

// LazyValue defers materializing a Value until its type or contents are
// actually needed. The path query engine walks large documents step by
// step and would otherwise allocate an eager Value at every step it
// merely passes through.
//
// Grounded on the const-generic LazyValue<'a, const IN_ARRAY: bool> in
// _examples/original_source/src/yason/mod.rs: a lazy handle is either a
// position inside an Array (inArray=true, arr+index) or anywhere else
// (inArray=false, obj+index, or the bare root document).
type LazyValue struct {
	inArray bool
	arr     Array
	obj     Object
	index   int
	root    *Yason // set only for the top-level document handle
}

// LazyFromYason creates the root LazyValue for a document.
func LazyFromYason(y *Yason) (LazyValue, error) {
	if _, err := y.DataType(); err != nil {
		return LazyValue{}, err
	}
	return LazyValue{root: y}, nil
}

func lazyFromArray(a Array, index int) LazyValue {
	return LazyValue{inArray: true, arr: a, index: index}
}

func lazyFromObject(o Object, index int) LazyValue {
	return LazyValue{obj: o, index: index}
}

// DataType returns the type of the referenced value without forcing a
// full materialization of containers.
func (v LazyValue) DataType() (DataType, error) {
	switch {
	case v.root != nil:
		return v.root.DataType()
	case v.inArray:
		return v.arr.TypeOf(v.index)
	default:
		return v.obj.TypeOf(v.index)
	}
}

// Object materializes the referenced value as an Object, erroring if it is
// not one.
func (v LazyValue) Object() (Object, error) {
	switch {
	case v.root != nil:
		if err := v.root.checkType(0, TypeObject); err != nil {
			return Object{}, err
		}
		return NewObjectUnchecked(v.root), nil
	case v.inArray:
		return v.arr.GetObject(v.index)
	default:
		return v.obj.GetObject(v.index)
	}
}

// Array materializes the referenced value as an Array, erroring if it is
// not one.
func (v LazyValue) Array() (Array, error) {
	switch {
	case v.root != nil:
		if err := v.root.checkType(0, TypeArray); err != nil {
			return Array{}, err
		}
		return NewArrayUnchecked(v.root), nil
	case v.inArray:
		return v.arr.GetArray(v.index)
	default:
		return v.obj.GetArray(v.index)
	}
}

// Value fully materializes the referenced value, recursing into nested
// containers as needed.
func (v LazyValue) Value() (Value, error) {
	switch {
	case v.root != nil:
		dt, err := v.root.DataType()
		if err != nil {
			return Value{}, err
		}
		switch dt {
		case TypeObject:
			o := NewObjectUnchecked(v.root)
			return Value{Type: TypeObject, Object: &o}, nil
		case TypeArray:
			a := NewArrayUnchecked(v.root)
			return Value{Type: TypeArray, Array: &a}, nil
		case TypeString:
			s, err := v.root.stringUnchecked()
			return Value{Type: TypeString, String: s}, err
		case TypeNumber:
			n, err := v.root.numberUnchecked()
			return Value{Type: TypeNumber, Number: n}, err
		case TypeBool:
			b, err := v.root.boolUnchecked()
			return Value{Type: TypeBool, Bool: b}, err
		default:
			return Value{Type: TypeNull}, nil
		}
	case v.inArray:
		return v.arr.Get(v.index)
	default:
		return v.obj.Value(v.index)
	}
}

// LazyIterArray returns lazy handles for every element of a.
func LazyIterArray(a Array) ([]LazyValue, error) {
	n, err := a.Len()
	if err != nil {
		return nil, err
	}
	out := make([]LazyValue, n)
	for i := 0; i < n; i++ {
		out[i] = lazyFromArray(a, i)
	}
	return out, nil
}

// LazyIterObjectValues returns lazy handles for every value of o, in
// storage order.
func LazyIterObjectValues(o Object) ([]LazyValue, error) {
	n, err := o.Len()
	if err != nil {
		return nil, err
	}
	out := make([]LazyValue, n)
	for i := 0; i < n; i++ {
		out[i] = lazyFromObject(o, i)
	}
	return out, nil
}

// LazyGet looks up key in o and returns its lazy handle, or ok=false.
func LazyGet(o Object, key string) (lv LazyValue, ok bool, err error) {
	idx, found, err := o.FindKey(key)
	if err != nil || !found {
		return LazyValue{}, false, err
	}
	return lazyFromObject(o, idx), true, nil
}

// LazyGetUnchecked returns the lazy handle for the element at index
// without bounds checking; callers must have already validated index.
func LazyGetUnchecked(a Array, index int) LazyValue {
	return lazyFromArray(a, index)
}
