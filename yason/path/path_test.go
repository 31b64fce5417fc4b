package path

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/yashan-technologies/yason-go/yason"
	"github.com/yashan-technologies/yason-go/yason/builder"
)

type PathTestSuite struct {
	suite.Suite
}

func TestPathSuite(t *testing.T) {
	suite.Run(t, new(PathTestSuite))
}

// buildDoc constructs:
//
//	{"tags": ["a", "b", "c"], "user": {"name": "Alice", "age": 30}, "empty": []}
func buildDoc(t require.TestingT) *yason.Yason {
	ob, err := builder.NewObjectBuilder(3, false)
	require.NoError(t, err)

	tags, err := ob.PushArray("empty", 0)
	require.NoError(t, err)
	_, err = tags.Finish()
	require.NoError(t, err)

	tagsArr, err := ob.PushArray("tags", 3)
	require.NoError(t, err)
	require.NoError(t, tagsArr.PushString("a"))
	require.NoError(t, tagsArr.PushString("b"))
	require.NoError(t, tagsArr.PushString("c"))
	_, err = tagsArr.Finish()
	require.NoError(t, err)

	user, err := ob.PushObject("user", 2, false)
	require.NoError(t, err)
	require.NoError(t, user.PushString("name", "Alice"))
	n, err := yason.ParseNumber("30")
	require.NoError(t, err)
	require.NoError(t, user.PushNumber("age", n))
	_, err = user.Finish()
	require.NoError(t, err)

	buf, err := ob.Finish()
	require.NoError(t, err)
	return buf.AsYason()
}

func (s *PathTestSuite) query(path string, root *yason.Yason) []yason.Value {
	expr, err := Parse(path)
	s.Require().NoError(err)
	res, err := Query(expr, root, true, nil)
	s.Require().NoError(err)
	return res.Values
}

func (s *PathTestSuite) TestObjectKeyStep() {
	root := buildDoc(s.T())
	vals := s.query("$.user.name", root)
	s.Require().Len(vals, 1)
	s.Equal("Alice", vals[0].String)
}

func (s *PathTestSuite) TestArrayIndexStep() {
	root := buildDoc(s.T())
	vals := s.query("$.tags[1]", root)
	s.Require().Len(vals, 1)
	s.Equal("b", vals[0].String)
}

func (s *PathTestSuite) TestArrayLastStep() {
	root := buildDoc(s.T())
	vals := s.query("$.tags[last]", root)
	s.Require().Len(vals, 1)
	s.Equal("c", vals[0].String)
}

func (s *PathTestSuite) TestArrayRangeStep() {
	root := buildDoc(s.T())
	vals := s.query("$.tags[0 to 1]", root)
	s.Require().Len(vals, 2)
	s.Equal("a", vals[0].String)
	s.Equal("b", vals[1].String)
}

func (s *PathTestSuite) TestArrayWildcard() {
	root := buildDoc(s.T())
	vals := s.query("$.tags[*]", root)
	s.Require().Len(vals, 3)
}

func (s *PathTestSuite) TestObjectWildcardBroadcastsAcrossArray() {
	root := buildDoc(s.T())
	vals := s.query("$.tags.*", root)
	s.Require().Len(vals, 3)
}

func (s *PathTestSuite) TestDescendentStep() {
	root := buildDoc(s.T())
	vals := s.query("$..name", root)
	s.Require().Len(vals, 1)
	s.Equal("Alice", vals[0].String)
}

func (s *PathTestSuite) TestCountMethod() {
	root := buildDoc(s.T())
	vals := s.query("$.tags[*].count()", root)
	s.Require().Len(vals, 1)
	s.Equal(yason.TypeNumber, vals[0].Type)
	s.Equal(0, vals[0].Number.Compare(yason.NumberFromInt(3)))
}

func (s *PathTestSuite) TestSizeMethodOnScalarIsOne() {
	root := buildDoc(s.T())
	vals := s.query("$.user.name.size()", root)
	s.Require().Len(vals, 1)
	s.Equal(0, vals[0].Number.Compare(yason.NumberFromInt(1)))
}

func (s *PathTestSuite) TestTypeMethod() {
	root := buildDoc(s.T())
	vals := s.query("$.user.type()", root)
	s.Require().Len(vals, 1)
	s.Equal("object", vals[0].String)
}

func (s *PathTestSuite) TestEmptyArrayStepYieldsNoMatch() {
	root := buildDoc(s.T())
	vals := s.query("$.empty[0]", root)
	s.Require().Empty(vals)
}

func (s *PathTestSuite) TestMultipleValuesWithoutWrapperErrors() {
	root := buildDoc(s.T())
	expr, err := Parse("$.tags[*]")
	s.Require().NoError(err)
	_, err = Query(expr, root, false, nil)
	s.Require().Error(err)
	qerr, ok := err.(*QueryError)
	s.Require().True(ok)
	s.Equal(MultiValuesWithoutWrapper, qerr.Kind)
}

func (s *PathTestSuite) TestExists() {
	root := buildDoc(s.T())
	expr, err := Parse("$.user.age")
	s.Require().NoError(err)
	ok, err := Exists(expr, root)
	s.Require().NoError(err)
	s.True(ok)

	expr, err = Parse("$.user.missing")
	s.Require().NoError(err)
	ok, err = Exists(expr, root)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *PathTestSuite) TestParseErrors() {
	_, err := Parse("user.name")
	s.Require().Error(err)
	perr, ok := err.(*ParseError)
	s.Require().True(ok)
	s.Equal(NotStartWithDollar, perr.Kind)

	_, err = Parse("$.tags[")
	s.Require().Error(err)
	_, ok = err.(*ParseError)
	s.Require().True(ok)
}

func (s *PathTestSuite) TestValuesToYason() {
	root := buildDoc(s.T())
	vals := s.query("$.tags[*]", root)
	buf, err := ValuesToYason(vals)
	s.Require().NoError(err)
	arr, err := buf.AsYason().Array()
	s.Require().NoError(err)
	n, err := arr.Len()
	s.Require().NoError(err)
	s.Equal(3, n)
}
