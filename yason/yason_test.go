package yason_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/yashan-technologies/yason-go/yason"
	"github.com/yashan-technologies/yason-go/yason/builder"
)

type ReaderTestSuite struct {
	suite.Suite
}

func TestReaderSuite(t *testing.T) {
	suite.Run(t, new(ReaderTestSuite))
}

func (s *ReaderTestSuite) TestDecodeRejectsInvalidTag() {
	_, err := yason.Decode([]byte{0xff})
	s.Require().Error(err)
	_, ok := err.(yason.InvalidDataTypeError)
	s.Require().True(ok)
}

func (s *ReaderTestSuite) TestGetObjectOnWrongTypeErrors() {
	buf, err := builder.EncodeString("not an object")
	s.Require().NoError(err)
	_, err = buf.AsYason().Object()
	s.Require().Error(err)
	_, ok := err.(yason.UnexpectedTypeError)
	s.Require().True(ok)
}

func (s *ReaderTestSuite) TestEqualIgnoresObjectKeyOrder() {
	a, err := builder.NewObjectBuilder(2, false)
	s.Require().NoError(err)
	s.Require().NoError(a.PushString("x", "1"))
	s.Require().NoError(a.PushString("y", "2"))
	abuf, err := a.Finish()
	s.Require().NoError(err)

	b, err := builder.NewObjectBuilder(2, false)
	s.Require().NoError(err)
	s.Require().NoError(b.PushString("y", "2"))
	s.Require().NoError(b.PushString("x", "1"))
	bbuf, err := b.Finish()
	s.Require().NoError(err)

	eq, err := yason.Equal(abuf.AsYason(), bbuf.AsYason())
	s.Require().NoError(err)
	s.True(eq)
}

func (s *ReaderTestSuite) TestEqualDetectsDifference() {
	a, err := builder.EncodeNumber(yason.NumberFromInt(1))
	s.Require().NoError(err)
	b, err := builder.EncodeNumber(yason.NumberFromInt(2))
	s.Require().NoError(err)

	eq, err := yason.Equal(a.AsYason(), b.AsYason())
	s.Require().NoError(err)
	s.False(eq)
}

func (s *ReaderTestSuite) TestNumberEqualIgnoresScale() {
	a, err := yason.ParseNumber("1")
	s.Require().NoError(err)
	b, err := yason.ParseNumber("1.0")
	s.Require().NoError(err)
	s.Equal(0, a.Compare(b))
}

func (s *ReaderTestSuite) TestLazyValueDataTypeWithoutMaterializing() {
	ob, err := builder.NewObjectBuilder(1, false)
	s.Require().NoError(err)
	nested, err := ob.PushArray("items", 0)
	s.Require().NoError(err)
	_, err = nested.Finish()
	s.Require().NoError(err)
	buf, err := ob.Finish()
	s.Require().NoError(err)

	lv, err := yason.LazyFromYason(buf.AsYason())
	s.Require().NoError(err)
	dt, err := lv.DataType()
	s.Require().NoError(err)
	s.Equal(yason.TypeObject, dt)
}

func (s *ReaderTestSuite) TestObjectIterPreservesStorageOrder() {
	ob, err := builder.NewObjectBuilder(3, true)
	s.Require().NoError(err)
	s.Require().NoError(ob.PushString("a", "1"))
	s.Require().NoError(ob.PushString("id", "2"))
	s.Require().NoError(ob.PushString("name", "3"))
	buf, err := ob.Finish()
	s.Require().NoError(err)

	obj, err := buf.AsYason().Object()
	s.Require().NoError(err)
	entries, err := obj.Iter()
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal("a", entries[0].Key)
	s.Equal("id", entries[1].Key)
	s.Equal("name", entries[2].Key)
}
