package path

import (
	"github.com/yashan-technologies/yason-go/yason"
	"github.com/yashan-technologies/yason-go/yason/builder"
)

// Result is the outcome of Query: the matched values in the order they
// were visited. It replaces the buffer-ownership variants of QueriedValue in
// _examples/original_source/src/path/mod.rs, collapsed to what an
// idiomatic Go caller needs (a caller-owned result slice, reused across
// calls when the caller supplies one).
type Result struct {
	Values []yason.Value
}

// IsEmpty reports whether the query produced no matches.
func (r Result) IsEmpty() bool { return len(r.Values) == 0 }

// Query evaluates expr against root. When withWrapper is false, more than
// one match is an error (MultiValuesWithoutWrapper); when buf is non-nil
// it is cleared and reused to hold the results instead of allocating a
// fresh slice.
func Query(expr *Expression, root *yason.Yason, withWrapper bool, buf *[]yason.Value) (Result, error) {
	if expr.HasMethod() && !withWrapper {
		return Result{}, &QueryError{Kind: MultiValuesWithoutWrapper}
	}

	var owned []yason.Value
	target := buf
	if target == nil {
		target = &owned
	}
	*target = (*target)[:0]

	sel := newSelector(expr.Steps(), withWrapper, target, false)
	if _, err := sel.query(root, 1); err != nil {
		return Result{}, err
	}

	if expr.HasMethodCount() {
		count := len(*target)
		*target = (*target)[:0]
		*target = append(*target, yason.Value{Type: yason.TypeNumber, Number: yason.NumberFromInt(count)})
	}

	return Result{Values: *target}, nil
}

// Exists reports whether expr matches at least one value in root. It
// rejects paths whose last step is an item method (count/size/type),
// which only make sense under Query's wrapper semantics.
func Exists(expr *Expression, root *yason.Yason) (bool, error) {
	if expr.HasMethod() {
		return false, &QueryError{Kind: InvalidPathExpression}
	}

	var buf []yason.Value
	sel := newSelector(expr.Steps(), true, &buf, true)
	return sel.query(root, 1)
}

// ValuesToYason re-encodes a result set as a fresh top-level array
// document, the Go analogue of values_to_yason in
// _examples/original_source/src/path/mod.rs.
func ValuesToYason(values []yason.Value) (*yason.YasonBuf, error) {
	b, err := builder.NewArrayBuilder(uint16(len(values)))
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if err := pushValue(b, v); err != nil {
			return nil, err
		}
	}
	return b.Finish()
}

func pushValue(b *builder.ArrayBuilder, v yason.Value) error {
	switch v.Type {
	case yason.TypeString:
		return b.PushString(v.String)
	case yason.TypeNumber:
		return b.PushNumber(v.Number)
	case yason.TypeBool:
		return b.PushBool(v.Bool)
	case yason.TypeNull:
		return b.PushNull()
	case yason.TypeObject:
		return copyObjectInto(b, v.Object)
	default:
		return copyArrayInto(b, v.Array)
	}
}

func copyObjectInto(parent *builder.ArrayBuilder, o *yason.Object) error {
	n, err := o.Len()
	if err != nil {
		return err
	}
	nested, err := parent.PushObject(uint16(n), true)
	if err != nil {
		return err
	}
	entries, err := o.Iter()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := pushEntryInto(nested, e); err != nil {
			return err
		}
	}
	_, err = nested.Finish()
	return err
}

func copyArrayInto(parent *builder.ArrayBuilder, a *yason.Array) error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	nested, err := parent.PushArray(uint16(n))
	if err != nil {
		return err
	}
	vals, err := a.Iter()
	if err != nil {
		return err
	}
	for _, v := range vals {
		if err := pushValueIntoArrayRef(nested, v); err != nil {
			return err
		}
	}
	_, err = nested.Finish()
	return err
}

func pushEntryInto(nested *builder.ObjectRefBuilder, e yason.Entry) error {
	switch e.Value.Type {
	case yason.TypeString:
		return nested.PushString(e.Key, e.Value.String)
	case yason.TypeNumber:
		return nested.PushNumber(e.Key, e.Value.Number)
	case yason.TypeBool:
		return nested.PushBool(e.Key, e.Value.Bool)
	case yason.TypeNull:
		return nested.PushNull(e.Key)
	case yason.TypeObject:
		n, err := e.Value.Object.Len()
		if err != nil {
			return err
		}
		child, err := nested.PushObject(e.Key, uint16(n), true)
		if err != nil {
			return err
		}
		entries, err := e.Value.Object.Iter()
		if err != nil {
			return err
		}
		for _, ce := range entries {
			if err := pushEntryInto(child, ce); err != nil {
				return err
			}
		}
		_, err = child.Finish()
		return err
	default:
		n, err := e.Value.Array.Len()
		if err != nil {
			return err
		}
		child, err := nested.PushArray(e.Key, uint16(n))
		if err != nil {
			return err
		}
		vals, err := e.Value.Array.Iter()
		if err != nil {
			return err
		}
		for _, v := range vals {
			if err := pushValueIntoArrayRef(child, v); err != nil {
				return err
			}
		}
		_, err = child.Finish()
		return err
	}
}

func pushValueIntoArrayRef(nested *builder.ArrayRefBuilder, v yason.Value) error {
	switch v.Type {
	case yason.TypeString:
		return nested.PushString(v.String)
	case yason.TypeNumber:
		return nested.PushNumber(v.Number)
	case yason.TypeBool:
		return nested.PushBool(v.Bool)
	case yason.TypeNull:
		return nested.PushNull()
	case yason.TypeObject:
		n, err := v.Object.Len()
		if err != nil {
			return err
		}
		child, err := nested.PushObject(uint16(n), true)
		if err != nil {
			return err
		}
		entries, err := v.Object.Iter()
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := pushEntryInto(child, e); err != nil {
				return err
			}
		}
		_, err = child.Finish()
		return err
	default:
		n, err := v.Array.Len()
		if err != nil {
			return err
		}
		child, err := nested.PushArray(uint16(n))
		if err != nil {
			return err
		}
		vals, err := v.Array.Iter()
		if err != nil {
			return err
		}
		for _, cv := range vals {
			if err := pushValueIntoArrayRef(child, cv); err != nil {
				return err
			}
		}
		_, err = child.Finish()
		return err
	}
}
