package path

import (
	"github.com/yashan-technologies/yason-go/yason"
)

// selector walks a document against a parsed step sequence, grounded on
// Selector in _examples/original_source/src/path/query.rs.
type selector struct {
	steps       []Step
	withWrapper bool
	queryBuf    *[]yason.Value
	forExists   bool
}

func newSelector(steps []Step, withWrapper bool, buf *[]yason.Value, forExists bool) *selector {
	return &selector{steps: steps, withWrapper: withWrapper, queryBuf: buf, forExists: forExists}
}

func (s *selector) query(root *yason.Yason, stepIndex int) (bool, error) {
	lv, err := yason.LazyFromYason(root)
	if err != nil {
		return false, err
	}
	return s.queryInternal(lv, stepIndex)
}

func (s *selector) queryInternal(value yason.LazyValue, stepIndex int) (bool, error) {
	if stepIndex == len(s.steps) {
		if !s.forExists {
			if !s.withWrapper && len(*s.queryBuf) != 0 {
				return false, &QueryError{Kind: MultiValuesWithoutWrapper}
			}
			v, err := value.Value()
			if err != nil {
				return false, err
			}
			*s.queryBuf = append(*s.queryBuf, v)
		}
		return true, nil
	}

	step := s.steps[stepIndex]
	switch step.Kind {
	case StepRoot:
		return false, nil // never reached; Root only ever occupies index 0
	case StepObject:
		switch step.Object.Kind {
		case ObjectKey:
			return s.objectKeyMatch(value, stepIndex, step.Object.Key)
		default:
			return s.objectWildcardMatch(value, stepIndex)
		}
	case StepArray:
		switch step.Array.Kind {
		case ArrayIndex:
			return s.arrayIndexMatch(value, stepIndex, step.Array.Index)
		case ArrayLast:
			return s.arrayLastMatch(value, stepIndex, step.Array.Last)
		case ArrayRange:
			return s.arrayRangeMatch(value, stepIndex, step.Array.Begin, step.Array.End)
		case ArrayMultiple:
			return s.arrayMultiStepsMatch(value, stepIndex, step.Array.Multiple)
		default:
			return s.arrayWildcardMatch(value, stepIndex)
		}
	case StepDescendent:
		return s.descendentStepMatch(value, stepIndex, step.Descendent)
	default: // StepFunc
		return s.funcStepMatch(value, stepIndex, step.Func)
	}
}

func (s *selector) objectKeyMatch(value yason.LazyValue, stepIndex int, key string) (bool, error) {
	dt, err := value.DataType()
	if err != nil {
		return false, err
	}
	switch dt {
	case yason.TypeObject:
		obj, err := value.Object()
		if err != nil {
			return false, err
		}
		lv, ok, err := yason.LazyGet(obj, key)
		if err != nil {
			return false, err
		}
		if ok {
			return s.queryInternal(lv, stepIndex+1)
		}
	case yason.TypeArray:
		arr, err := value.Array()
		if err != nil {
			return false, err
		}
		vals, err := yason.LazyIterArray(arr)
		if err != nil {
			return false, err
		}
		for _, v := range vals {
			found, err := s.queryInternal(v, stepIndex)
			if err != nil {
				return false, err
			}
			if s.forExists && found {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *selector) objectWildcardMatch(value yason.LazyValue, stepIndex int) (bool, error) {
	dt, err := value.DataType()
	if err != nil {
		return false, err
	}
	switch dt {
	case yason.TypeObject:
		obj, err := value.Object()
		if err != nil {
			return false, err
		}
		vals, err := yason.LazyIterObjectValues(obj)
		if err != nil {
			return false, err
		}
		for _, v := range vals {
			found, err := s.queryInternal(v, stepIndex+1)
			if err != nil {
				return false, err
			}
			if s.forExists && found {
				return true, nil
			}
		}
	case yason.TypeArray:
		arr, err := value.Array()
		if err != nil {
			return false, err
		}
		vals, err := yason.LazyIterArray(arr)
		if err != nil {
			return false, err
		}
		for _, v := range vals {
			found, err := s.queryInternal(v, stepIndex)
			if err != nil {
				return false, err
			}
			if s.forExists && found {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *selector) arrayIndexMatch(value yason.LazyValue, stepIndex int, index int) (bool, error) {
	dt, err := value.DataType()
	if err != nil {
		return false, err
	}
	if dt == yason.TypeArray {
		arr, err := value.Array()
		if err != nil {
			return false, err
		}
		n, err := arr.Len()
		if err != nil {
			return false, err
		}
		if index < n {
			return s.queryInternal(yason.LazyGetUnchecked(arr, index), stepIndex+1)
		}
		return false, nil
	}
	if index == 0 {
		return s.queryInternal(value, stepIndex+1)
	}
	return false, nil
}

func (s *selector) arrayLastMatch(value yason.LazyValue, stepIndex int, minus int) (bool, error) {
	dt, err := value.DataType()
	if err != nil {
		return false, err
	}
	if dt == yason.TypeArray {
		arr, err := value.Array()
		if err != nil {
			return false, err
		}
		n, err := arr.Len()
		if err != nil {
			return false, err
		}
		if n > 0 && n-1 >= minus {
			return s.queryInternal(yason.LazyGetUnchecked(arr, n-1-minus), stepIndex+1)
		}
		return false, nil
	}
	if minus == 0 {
		return s.queryInternal(value, stepIndex+1)
	}
	return false, nil
}

func (s *selector) arrayRangeMatch(value yason.LazyValue, stepIndex int, begin, end SingleIndex) (bool, error) {
	dt, err := value.DataType()
	if err != nil {
		return false, err
	}
	if dt == yason.TypeArray {
		arr, err := value.Array()
		if err != nil {
			return false, err
		}
		n, err := arr.Len()
		if err != nil {
			return false, err
		}
		b, e, ok := findRange(begin, end, n)
		if !ok {
			return false, nil
		}
		for i := b; i <= e; i++ {
			found, err := s.queryInternal(yason.LazyGetUnchecked(arr, i), stepIndex+1)
			if err != nil {
				return false, err
			}
			if s.forExists && found {
				return true, nil
			}
		}
		return false, nil
	}
	if _, _, ok := findRange(begin, end, 1); ok {
		return s.queryInternal(value, stepIndex+1)
	}
	return false, nil
}

func (s *selector) arrayMultiStepsMatch(value yason.LazyValue, stepIndex int, steps []SingleStep) (bool, error) {
	dt, err := value.DataType()
	if err != nil {
		return false, err
	}
	if dt != yason.TypeArray {
		if nonArrayRelaxedMatch(steps) {
			return s.queryInternal(value, stepIndex+1)
		}
		return false, nil
	}

	arr, err := value.Array()
	if err != nil {
		return false, err
	}

	for _, cur := range steps {
		n, err := arr.Len()
		if err != nil {
			return false, err
		}
		if cur.IsRange {
			b, e, ok := findRange(cur.Begin, cur.End, n)
			if !ok {
				continue
			}
			for i := b; i <= e; i++ {
				found, err := s.queryInternal(yason.LazyGetUnchecked(arr, i), stepIndex+1)
				if err != nil {
					return false, err
				}
				if s.forExists && found {
					return true, nil
				}
			}
			continue
		}

		si := cur.Single
		if si.Last {
			if n > 0 && n-1 >= si.Value {
				found, err := s.queryInternal(yason.LazyGetUnchecked(arr, n-1-si.Value), stepIndex+1)
				if err != nil {
					return false, err
				}
				if s.forExists && found {
					return true, nil
				}
			}
		} else if si.Value < n {
			found, err := s.queryInternal(yason.LazyGetUnchecked(arr, si.Value), stepIndex+1)
			if err != nil {
				return false, err
			}
			if s.forExists && found {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *selector) arrayWildcardMatch(value yason.LazyValue, stepIndex int) (bool, error) {
	dt, err := value.DataType()
	if err != nil {
		return false, err
	}
	if dt != yason.TypeArray {
		return s.queryInternal(value, stepIndex+1)
	}
	arr, err := value.Array()
	if err != nil {
		return false, err
	}
	vals, err := yason.LazyIterArray(arr)
	if err != nil {
		return false, err
	}
	for _, v := range vals {
		found, err := s.queryInternal(v, stepIndex+1)
		if err != nil {
			return false, err
		}
		if s.forExists && found {
			return true, nil
		}
	}
	return false, nil
}

func (s *selector) descendentStepMatch(value yason.LazyValue, stepIndex int, key string) (bool, error) {
	dt, err := value.DataType()
	if err != nil {
		return false, err
	}
	switch dt {
	case yason.TypeObject:
		obj, err := value.Object()
		if err != nil {
			return false, err
		}
		if lv, ok, err := yason.LazyGet(obj, key); err != nil {
			return false, err
		} else if ok {
			found, err := s.queryInternal(lv, stepIndex+1)
			if err != nil {
				return false, err
			}
			if s.forExists && found {
				return true, nil
			}
		}

		vals, err := yason.LazyIterObjectValues(obj)
		if err != nil {
			return false, err
		}
		for _, v := range vals {
			found, err := s.queryInternal(v, stepIndex)
			if err != nil {
				return false, err
			}
			if s.forExists && found {
				return true, nil
			}
		}
	case yason.TypeArray:
		arr, err := value.Array()
		if err != nil {
			return false, err
		}
		vals, err := yason.LazyIterArray(arr)
		if err != nil {
			return false, err
		}
		for _, v := range vals {
			found, err := s.queryInternal(v, stepIndex)
			if err != nil {
				return false, err
			}
			if s.forExists && found {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *selector) funcStepMatch(value yason.LazyValue, stepIndex int, fn FuncStep) (bool, error) {
	var val yason.Value
	switch fn {
	case FuncCount:
		val = yason.Value{Type: yason.TypeNull}
	case FuncSize:
		size := 1
		dt, err := value.DataType()
		if err != nil {
			return false, err
		}
		if dt == yason.TypeArray {
			arr, err := value.Array()
			if err != nil {
				return false, err
			}
			n, err := arr.Len()
			if err != nil {
				return false, err
			}
			size = n
		}
		val = yason.Value{Type: yason.TypeNumber, Number: yason.NumberFromInt(size)}
	default: // FuncType
		dt, err := value.DataType()
		if err != nil {
			return false, err
		}
		val = yason.Value{Type: yason.TypeString, String: dt.Name()}
	}
	*s.queryBuf = append(*s.queryBuf, val)
	return false, nil
}

func nonArrayRelaxedMatch(steps []SingleStep) bool {
	for _, step := range steps {
		if step.IsRange {
			left := step.Begin.Value
			right := step.End.Value
			if left == 0 || right == 0 {
				return true
			}
			continue
		}
		if step.Single.Value == 0 {
			return true
		}
	}
	return false
}

// findRange resolves a begin/end cell pair against an array of length len,
// returning the inclusive [b, e] range, or ok=false for "no match" (an
// empty array, or two Last indices both past the end).
func findRange(begin, end SingleIndex, length int) (b, e int, ok bool) {
	if length == 0 {
		return 0, 0, false
	}
	last := length - 1

	resolve := func(si SingleIndex) int {
		if !si.Last {
			return si.Value
		}
		m := last
		if si.Value > m {
			m = si.Value
		}
		return m - si.Value
	}

	switch {
	case !begin.Last && !end.Last:
		return clampRange(begin.Value, end.Value, length)
	case !begin.Last && end.Last:
		return clampRange(begin.Value, resolve(end), length)
	case begin.Last && !end.Last:
		return clampRange(resolve(begin), end.Value, length)
	default: // both Last
		b1 := last - begin.Value
		b2 := last - end.Value
		if b1 < 0 && b2 < 0 {
			return 0, 0, false
		}
		if b1 < 0 {
			return clampRange(0, b2, length)
		}
		if b2 < 0 {
			return clampRange(b1, 0, length)
		}
		return clampRange(b1, b2, length)
	}
}

func clampRange(u1, u2, length int) (int, int, bool) {
	b := u1
	if u2 < b {
		b = u2
	}
	e := u1
	if u2 > e {
		e = u2
	}
	if e > length-1 {
		e = length - 1
	}
	if b < 0 {
		b = 0
	}
	return b, e, true
}
