package format

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/yashan-technologies/yason-go/yason"
	"github.com/yashan-technologies/yason-go/yason/builder"
)

type FormatTestSuite struct {
	suite.Suite
}

func TestFormatSuite(t *testing.T) {
	suite.Run(t, new(FormatTestSuite))
}

func buildSample(t require.TestingT) *yason.YasonBuf {
	ob, err := builder.NewObjectBuilder(3, false)
	require.NoError(t, err)
	require.NoError(t, ob.PushString("name", "Alice"))
	n, err := yason.ParseNumber("30")
	require.NoError(t, err)
	require.NoError(t, ob.PushNumber("age", n))

	hobbies, err := ob.PushArray("hobbies", 2)
	require.NoError(t, err)
	require.NoError(t, hobbies.PushString("reading"))
	require.NoError(t, hobbies.PushString("hiking"))
	_, err = hobbies.Finish()
	require.NoError(t, err)

	buf, err := ob.Finish()
	require.NoError(t, err)
	return buf
}

func (s *FormatTestSuite) TestCompact() {
	buf := buildSample(s.T())
	out, err := Compact(buf.AsYason())
	s.Require().NoError(err)
	s.JSONEq(`{"name":"Alice","age":30,"hobbies":["reading","hiking"]}`, out)
}

func (s *FormatTestSuite) TestPrettyIndentsAndWraps() {
	buf := buildSample(s.T())
	out, err := Pretty(buf.AsYason())
	s.Require().NoError(err)
	s.Contains(out, "\n  \"age\" : 30")
	s.Contains(out, "\n    \"reading\"")
	s.JSONEq(`{"name":"Alice","age":30,"hobbies":["reading","hiking"]}`, out)
}

func (s *FormatTestSuite) TestEmptyContainersGetNewline() {
	ob, err := builder.NewObjectBuilder(0, true)
	s.Require().NoError(err)
	buf, err := ob.Finish()
	s.Require().NoError(err)

	out, err := Pretty(buf.AsYason())
	s.Require().NoError(err)
	s.Equal("{\n}", out)
}

func (s *FormatTestSuite) TestEscapesSpecialCharacters() {
	ob, err := builder.NewObjectBuilder(1, true)
	s.Require().NoError(err)
	s.Require().NoError(ob.PushString("msg", "line\nbreak\tand\"quote\\slash/"))
	buf, err := ob.Finish()
	s.Require().NoError(err)

	out, err := Compact(buf.AsYason())
	s.Require().NoError(err)
	s.Equal(`{"msg":"line\nbreak\tand\"quote\\slash\/"}`, out)
}

func (s *FormatTestSuite) TestEscapesControlBytesAndDEL() {
	ob, err := builder.NewObjectBuilder(1, true)
	s.Require().NoError(err)
	s.Require().NoError(ob.PushString("msg", "a\x00b\x01\x1f\x7f"))
	buf, err := ob.Finish()
	s.Require().NoError(err)

	out, err := Compact(buf.AsYason())
	s.Require().NoError(err)
	s.Equal("{\"msg\":\"a\\u0000b\\u0001\\u001f\\u007f\"}", out)

	var decoded map[string]string
	s.Require().NoError(json.Unmarshal([]byte(out), &decoded))
	s.Equal("a\x00b\x01\x1f\x7f", decoded["msg"])
}

func (s *FormatTestSuite) TestScalarDocuments() {
	sb, err := builder.EncodeString("hello")
	s.Require().NoError(err)
	out, err := Compact(sb.AsYason())
	s.Require().NoError(err)
	s.Equal(`"hello"`, out)

	nb, err := builder.EncodeBool(true)
	s.Require().NoError(err)
	out, err = Compact(nb.AsYason())
	s.Require().NoError(err)
	s.Equal("true", out)

	lb := builder.EncodeNull()
	out, err = Compact(lb.AsYason())
	s.Require().NoError(err)
	s.Equal("null", out)
}
