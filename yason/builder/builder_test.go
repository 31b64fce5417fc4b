package builder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/yashan-technologies/yason-go/yason"
)

type BuilderTestSuite struct {
	suite.Suite
}

func TestBuilderSuite(t *testing.T) {
	suite.Run(t, new(BuilderTestSuite))
}

func (s *BuilderTestSuite) TestScalarRoundTrip() {
	buf, err := EncodeString("hello")
	s.Require().NoError(err)
	got, err := buf.AsYason().String()
	s.Require().NoError(err)
	s.Equal("hello", got)

	n, err := yason.ParseNumber("12.50")
	s.Require().NoError(err)
	nbuf, err := EncodeNumber(n)
	s.Require().NoError(err)
	gotN, err := nbuf.AsYason().NumberValue()
	s.Require().NoError(err)
	s.Equal(0, gotN.Compare(n))

	bbuf, err := EncodeBool(true)
	s.Require().NoError(err)
	gotB, err := bbuf.AsYason().Bool()
	s.Require().NoError(err)
	s.True(gotB)

	nullBuf := EncodeNull()
	isNull, err := nullBuf.AsYason().IsNull()
	s.Require().NoError(err)
	s.True(isNull)
}

func (s *BuilderTestSuite) TestLongStringRoundTrip() {
	// 128, 300, and 16384 bytes each force the varint length prefix past
	// one byte (2, 2, and 3 bytes respectively), exercising EncodeVarint's
	// multi-byte path rather than just the single-byte short form.
	for _, n := range []int{127, 128, 300, 16384} {
		value := strings.Repeat("x", n)
		buf, err := EncodeString(value)
		s.Require().NoError(err)
		got, err := buf.AsYason().String()
		s.Require().NoError(err)
		s.Equal(value, got)
	}
}

func (s *BuilderTestSuite) TestObjectInsertionModeSortsKeys() {
	ob, err := NewObjectBuilder(3, false)
	s.Require().NoError(err)
	s.Require().NoError(ob.PushString("zeta", "last"))
	s.Require().NoError(ob.PushString("a", "first"))
	s.Require().NoError(ob.PushString("mid", "middle"))
	buf, err := ob.Finish()
	s.Require().NoError(err)

	obj, err := buf.AsYason().Object()
	s.Require().NoError(err)

	v, ok, err := obj.Get("zeta")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("last", v.String)

	v, ok, err = obj.Get("a")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("first", v.String)

	_, ok, err = obj.Get("missing")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *BuilderTestSuite) TestObjectKeySortedFastPath() {
	// "a"(1) < "id"(2) < "name"(4) under (length, then lexicographic) order.
	ob, err := NewObjectBuilder(3, true)
	s.Require().NoError(err)
	s.Require().NoError(ob.PushString("a", "1"))
	s.Require().NoError(ob.PushString("id", "2"))
	s.Require().NoError(ob.PushString("name", "3"))
	buf, err := ob.Finish()
	s.Require().NoError(err)

	obj, err := buf.AsYason().Object()
	s.Require().NoError(err)
	n, err := obj.Len()
	s.Require().NoError(err)
	s.Equal(3, n)

	v, ok, err := obj.Get("name")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal("3", v.String)
}

func (s *BuilderTestSuite) TestArrayRoundTrip() {
	ab, err := NewArrayBuilder(4)
	s.Require().NoError(err)
	s.Require().NoError(ab.PushString("a"))
	n, err := yason.ParseNumber("7")
	s.Require().NoError(err)
	s.Require().NoError(ab.PushNumber(n))
	s.Require().NoError(ab.PushBool(false))
	s.Require().NoError(ab.PushNull())
	buf, err := ab.Finish()
	s.Require().NoError(err)

	arr, err := buf.AsYason().Array()
	s.Require().NoError(err)
	values, err := arr.Iter()
	s.Require().NoError(err)
	s.Require().Len(values, 4)
	s.Equal("a", values[0].String)
	s.Equal(0, values[1].Number.Compare(n))
	s.False(values[2].Bool)
	s.True(values[3].IsNull())
}

func (s *BuilderTestSuite) TestNestedObjectAndArray() {
	ob, err := NewObjectBuilder(2, false)
	s.Require().NoError(err)

	child, err := ob.PushObject("inner", 1, false)
	s.Require().NoError(err)
	s.Require().NoError(child.PushString("k", "v"))
	_, err = child.Finish()
	s.Require().NoError(err)

	arr, err := ob.PushArray("list", 2)
	s.Require().NoError(err)
	s.Require().NoError(arr.PushString("x"))
	nestedObj, err := arr.PushObject(1, false)
	s.Require().NoError(err)
	s.Require().NoError(nestedObj.PushBool("flag", true))
	_, err = nestedObj.Finish()
	s.Require().NoError(err)
	_, err = arr.Finish()
	s.Require().NoError(err)

	buf, err := ob.Finish()
	s.Require().NoError(err)
	obj, err := buf.AsYason().Object()
	s.Require().NoError(err)

	inner, ok, err := obj.Get("inner")
	s.Require().NoError(err)
	s.Require().True(ok)
	v, ok, err := inner.Object.Get("k")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal("v", v.String)

	listVal, ok, err := obj.Get("list")
	s.Require().NoError(err)
	s.Require().True(ok)
	listVals, err := listVal.Array.Iter()
	s.Require().NoError(err)
	s.Require().Len(listVals, 2)
	s.Equal("x", listVals[0].String)
	flag, ok, err := listVals[1].Object.Get("flag")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.True(flag.Bool)
}

func (s *BuilderTestSuite) TestFinishFailsOnElementCountMismatch() {
	ob, err := NewObjectBuilder(2, false)
	s.Require().NoError(err)
	s.Require().NoError(ob.PushString("only", "one"))
	_, err = ob.Finish()
	s.Require().Error(err)
	_, ok := err.(InconsistentElementCountError)
	s.Require().True(ok)
}

func (s *BuilderTestSuite) TestFinishFailsWhenNestedBuilderUnfinished() {
	ob, err := NewObjectBuilder(1, false)
	s.Require().NoError(err)
	_, err = ob.PushObject("child", 1, false)
	s.Require().NoError(err)
	_, err = ob.Finish()
	s.Require().Error(err)
	_, ok := err.(InnerUncompletedError)
	s.Require().True(ok)
}
