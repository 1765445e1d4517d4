package parser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcarri/mppd/protocol"
)

// requestBytes builds the literal wire form of §8's scenarios: the
// Content-Length is derived from noun's actual encoded length rather than
// hardcoded, since the noun strings carry their own byte length.
func requestBytes(verb, noun string) []byte {
	return []byte(fmt.Sprintf("MPP/1.3.5 %s \r\nContent-Length: %d\r\n\r\n%s", verb, len(noun), noun))
}

func TestRequestParserWellFormedIsSingular(t *testing.T) {
	noun := "പൂച്ച"
	data := requestBytes("ISSING", noun)

	_, req, outcome := feedRequestAllAtOnce(data)
	require.Equal(t, Accepted, outcome)
	assert.Equal(t, protocol.CmdIsSingular, req.Command)
	assert.Equal(t, noun, string(req.Noun()))

	_, req2, outcome2 := feedRequestByteAtATime(data)
	require.Equal(t, Accepted, outcome2)
	assert.Equal(t, req.Command, req2.Command)
	assert.Equal(t, req.Noun(), req2.Noun())
}

func TestRequestParserWellFormedFindOpposite(t *testing.T) {
	data := requestBytes("FOF", "കുട്ടി")

	_, req, outcome := feedRequestAllAtOnce(data)
	require.Equal(t, Accepted, outcome)
	assert.Equal(t, protocol.CmdFindOpposite, req.Command)
}

func TestRequestParserVersionMajorMismatch(t *testing.T) {
	data := []byte("MPP/2.0.0 ISSING \r\nContent-Length: 0\r\n\r\n")

	p, _, outcome := feedRequestAllAtOnce(data)
	require.Equal(t, Rejected, outcome)
	assert.Equal(t, protocol.StatusBadMajorVersion, p.FailureReason())
}

func TestRequestParserUnknownVerb(t *testing.T) {
	data := []byte("MPP/1.3.5 QUACK \r\nContent-Length: 0\r\n\r\n")

	p, _, outcome := feedRequestAllAtOnce(data)
	require.Equal(t, Rejected, outcome)
	assert.Equal(t, protocol.StatusUnknownVerb, p.FailureReason())
}

func TestRequestParserSplitDeliveryMatchesOneShot(t *testing.T) {
	first := []byte("MPP/1.3.")
	second := []byte("5 ISSING \r\nContent-Length: 3\r\n\r\nabc")
	whole := append(append([]byte(nil), first...), second...)

	_, wantReq, wantOutcome := feedRequestAllAtOnce(whole)

	p := NewRequestParser()
	req := &protocol.Request{}
	outcome, _ := p.Feed(req, first)
	require.Equal(t, NeedMore, outcome)
	outcome, _ = p.Feed(req, second)

	assert.Equal(t, wantOutcome, outcome)
	assert.Equal(t, wantReq.Command, req.Command)
	assert.Equal(t, wantReq.Noun(), req.Noun())
}

func TestRequestParserMalformedMissingColonInHeader(t *testing.T) {
	data := []byte("MPP/1.3.5 ISSING \r\nBadHeaderNoColon\r\n\r\n")

	p, _, outcome := feedRequestAllAtOnce(data)
	require.Equal(t, Rejected, outcome)
	assert.Equal(t, protocol.StatusBadRequest, p.FailureReason())
}

func TestRequestParserEmptyNounZeroContentLength(t *testing.T) {
	data := []byte("MPP/1.3.5 ISSING \r\nContent-Length: 0\r\n\r\n")

	_, req, outcome := feedRequestAllAtOnce(data)
	require.Equal(t, Accepted, outcome)
	assert.Empty(t, req.Noun())
}

func TestRequestParserContentLengthLargerThanAvailableStaysNeedMore(t *testing.T) {
	data := []byte("MPP/1.3.5 ISSING \r\nContent-Length: 10\r\n\r\nab")

	p := NewRequestParser()
	req := &protocol.Request{}
	outcome, consumed := p.Feed(req, data)
	assert.Equal(t, NeedMore, outcome)
	assert.Equal(t, len(data), consumed)
}

func TestRequestParserCaseInsensitiveVerb(t *testing.T) {
	data := []byte("MPP/1.3.5 issing \r\nContent-Length: 0\r\n\r\n")

	_, req, outcome := feedRequestAllAtOnce(data)
	require.Equal(t, Accepted, outcome)
	assert.Equal(t, protocol.CmdIsSingular, req.Command)
}

func TestRequestParserVersionMinorAndPatchMismatch(t *testing.T) {
	p, _, outcome := feedRequestAllAtOnce([]byte("MPP/1.9.5 ISSING \r\nContent-Length: 0\r\n\r\n"))
	require.Equal(t, Rejected, outcome)
	assert.Equal(t, protocol.StatusBadMinorVersion, p.FailureReason())

	p, _, outcome = feedRequestAllAtOnce([]byte("MPP/1.3.9 ISSING \r\nContent-Length: 0\r\n\r\n"))
	require.Equal(t, Rejected, outcome)
	assert.Equal(t, protocol.StatusBadPatchVersion, p.FailureReason())
}

func TestRequestParserResetAllowsReuse(t *testing.T) {
	p := NewRequestParser()
	req1 := &protocol.Request{}
	outcome, _ := p.Feed(req1, []byte("MPP/1.3.5 ISSING \r\nContent-Length: 0\r\n\r\n"))
	require.Equal(t, Accepted, outcome)

	p.Reset()

	req2 := &protocol.Request{}
	outcome, _ = p.Feed(req2, []byte("MPP/1.3.5 FOF \r\nContent-Length: 1\r\n\r\nx"))
	require.Equal(t, Accepted, outcome)
	assert.Equal(t, protocol.CmdFindOpposite, req2.Command)
	assert.Equal(t, "x", string(req2.Noun()))
}
