package yason

// Decode wraps raw bytes as a YasonBuf. It validates only that the tag
// byte names one of the six known data types; it does not walk the whole
// document, preserving the format's zero-copy random-access design.
func Decode(bytes []byte) (*YasonBuf, error) {
	buf := NewBufUnchecked(bytes)
	if _, err := buf.DataType(); err != nil {
		return nil, err
	}
	return buf, nil
}

// Object returns the root value as an Object.
func (y *Yason) Object() (Object, error) {
	if err := y.checkType(0, TypeObject); err != nil {
		return Object{}, err
	}
	return NewObjectUnchecked(y), nil
}

// Array returns the root value as an Array.
func (y *Yason) Array() (Array, error) {
	if err := y.checkType(0, TypeArray); err != nil {
		return Array{}, err
	}
	return NewArrayUnchecked(y), nil
}

// String returns the root value as a string.
func (y *Yason) String() (string, error) {
	if err := y.checkType(0, TypeString); err != nil {
		return "", err
	}
	return y.stringUnchecked()
}

// NumberValue returns the root value as a Number.
func (y *Yason) NumberValue() (Number, error) {
	if err := y.checkType(0, TypeNumber); err != nil {
		return Number{}, err
	}
	return y.numberUnchecked()
}

// Bool returns the root value as a bool.
func (y *Yason) Bool() (bool, error) {
	if err := y.checkType(0, TypeBool); err != nil {
		return false, err
	}
	return y.boolUnchecked()
}

// IsNull reports whether the root value is null.
func (y *Yason) IsNull() (bool, error) {
	dt, err := y.DataType()
	if err != nil {
		return false, err
	}
	return dt == TypeNull, nil
}

// Value materializes the root value as a dynamically typed Value.
func (y *Yason) Value() (Value, error) {
	lv, err := LazyFromYason(y)
	if err != nil {
		return Value{}, err
	}
	return lv.Value()
}

// Equal reports whether two documents are structurally equal: same data
// type, and for containers, the same set of keys/elements holding equal
// values. Object key order does not affect equality since storage order
// is a sort-order artifact, not semantic content.
func Equal(a, b *Yason) (bool, error) {
	at, err := a.DataType()
	if err != nil {
		return false, err
	}
	bt, err := b.DataType()
	if err != nil {
		return false, err
	}
	if at != bt {
		return false, nil
	}

	switch at {
	case TypeObject:
		ao, _ := a.Object()
		bo, _ := b.Object()
		an, err := ao.Len()
		if err != nil {
			return false, err
		}
		bn, err := bo.Len()
		if err != nil {
			return false, err
		}
		if an != bn {
			return false, nil
		}
		for i := 0; i < an; i++ {
			key, err := ao.Key(i)
			if err != nil {
				return false, err
			}
			av, err := ao.Value(i)
			if err != nil {
				return false, err
			}
			bv, ok, err := bo.Get(key)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
			eq, err := equalValue(av, bv)
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	case TypeArray:
		aa, _ := a.Array()
		ba, _ := b.Array()
		an, err := aa.Len()
		if err != nil {
			return false, err
		}
		bn, err := ba.Len()
		if err != nil {
			return false, err
		}
		if an != bn {
			return false, nil
		}
		for i := 0; i < an; i++ {
			av, err := aa.Get(i)
			if err != nil {
				return false, err
			}
			bv, err := ba.Get(i)
			if err != nil {
				return false, err
			}
			eq, err := equalValue(av, bv)
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	case TypeString:
		as, _ := a.String()
		bs, _ := b.String()
		return as == bs, nil
	case TypeNumber:
		an, _ := a.NumberValue()
		bn, _ := b.NumberValue()
		return an.Compare(bn) == 0, nil
	case TypeBool:
		ab, _ := a.Bool()
		bb, _ := b.Bool()
		return ab == bb, nil
	default: // TypeNull
		return true, nil
	}
}

func equalValue(a, b Value) (bool, error) {
	if a.Type != b.Type {
		return false, nil
	}
	switch a.Type {
	case TypeObject:
		return Equal(a.Object.Yason(), b.Object.Yason())
	case TypeArray:
		return Equal(a.Array.Yason(), b.Array.Yason())
	case TypeString:
		return a.String == b.String, nil
	case TypeNumber:
		return a.Number.Compare(b.Number) == 0, nil
	case TypeBool:
		return a.Bool == b.Bool, nil
	default:
		return true, nil
	}
}
