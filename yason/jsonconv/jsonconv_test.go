package jsonconv

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type JSONConvTestSuite struct {
	suite.Suite
}

func TestJSONConvSuite(t *testing.T) {
	suite.Run(t, new(JSONConvTestSuite))
}

func (s *JSONConvTestSuite) TestRoundTripObject() {
	in := `{"name":"Alice","age":30,"active":true,"address":null,"tags":["a","b"]}`
	buf, err := ParseString(in)
	s.Require().NoError(err)
	out, err := ToJSON(buf.AsYason())
	s.Require().NoError(err)
	s.JSONEq(in, out)
}

func (s *JSONConvTestSuite) TestRoundTripArray() {
	in := `[1,2.5,"x",false,null,{"k":"v"}]`
	buf, err := ParseString(in)
	s.Require().NoError(err)
	out, err := ToJSON(buf.AsYason())
	s.Require().NoError(err)
	s.JSONEq(in, out)
}

func (s *JSONConvTestSuite) TestScalarDocuments() {
	buf, err := ParseString(`"hello"`)
	s.Require().NoError(err)
	out, err := ToJSON(buf.AsYason())
	s.Require().NoError(err)
	s.Equal(`"hello"`, out)

	buf, err = ParseString("true")
	s.Require().NoError(err)
	out, err = ToJSON(buf.AsYason())
	s.Require().NoError(err)
	s.Equal("true", out)

	buf, err = ParseString("null")
	s.Require().NoError(err)
	out, err = ToJSON(buf.AsYason())
	s.Require().NoError(err)
	s.Equal("null", out)
}

func (s *JSONConvTestSuite) TestLargeIntegerPrecisionPreserved() {
	in := `{"big":9007199254740993}`
	buf, err := ParseString(in)
	s.Require().NoError(err)
	out, err := ToJSON(buf.AsYason())
	s.Require().NoError(err)
	s.Contains(out, "9007199254740993")
}

func (s *JSONConvTestSuite) TestInvalidJSONErrors() {
	_, err := ParseString(`{"a":}`)
	s.Require().Error(err)
}

func (s *JSONConvTestSuite) TestPrettyRendersIndented() {
	buf, err := ParseString(`{"a":1}`)
	s.Require().NoError(err)
	out, err := ToJSONPretty(buf.AsYason())
	s.Require().NoError(err)
	s.Contains(out, "\n  \"a\" : 1")
}
