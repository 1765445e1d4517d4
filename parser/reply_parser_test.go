package parser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcarri/mppd/protocol"
)

func replyBytes(status int, reason, content string) []byte {
	return []byte(fmt.Sprintf(
		"MPP/1.3.5 %03d %s\r\nContent-Length: %d\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		status, reason, len(content), content,
	))
}

func TestReplyParserWellFormedOK(t *testing.T) {
	data := replyBytes(200, "OK", "true")

	_, rep, outcome := feedReplyAllAtOnce(data)
	require.Equal(t, Accepted, outcome)
	assert.Equal(t, protocol.StatusOK, rep.Status)
	assert.Equal(t, "OK", rep.Reason)
	assert.Equal(t, "true", string(rep.Content()))

	ct, ok := rep.GetHeader(protocol.HeaderContentType)
	require.True(t, ok)
	assert.Equal(t, protocol.ContentType, ct.Value())
}

func TestReplyParserByteAtATimeMatchesOneShot(t *testing.T) {
	data := replyBytes(404, "Noun Not Found", "")

	_, wantRep, wantOutcome := feedReplyAllAtOnce(data)
	_, gotRep, gotOutcome := feedReplyByteAtATime(data)

	assert.Equal(t, wantOutcome, gotOutcome)
	assert.Equal(t, wantRep.Status, gotRep.Status)
	assert.Equal(t, wantRep.Reason, gotRep.Reason)
	assert.Equal(t, wantRep.Content(), gotRep.Content())
}

func TestReplyParserStockReplyRoundTrip(t *testing.T) {
	for _, status := range []protocol.Status{
		protocol.StatusOK,
		protocol.StatusBadRequest,
		protocol.StatusNounNotFound,
		protocol.StatusBadMajorVersion,
		protocol.StatusBadMinorVersion,
		protocol.StatusBadPatchVersion,
		protocol.StatusUnknownVerb,
		protocol.StatusInternal,
	} {
		stock := protocol.StockReply(status)
		bufs, err := stock.ToBuffers()
		require.NoError(t, err)

		whole := append(append([]byte(nil), bufs[0]...), bufs[1]...)
		_, rep, outcome := feedReplyAllAtOnce(whole)
		require.Equal(t, Accepted, outcome)
		assert.Equal(t, status, rep.Status)
	}
}

func TestReplyParserMalformedMissingColon(t *testing.T) {
	data := []byte("MPP/1.3.5 400 Bad Request\r\nBadHeaderNoColon\r\n\r\n")

	p, _, outcome := feedReplyAllAtOnce(data)
	require.Equal(t, Rejected, outcome)
	assert.Equal(t, protocol.StatusBadRequest, p.FailureReason())
}

func TestReplyParserVersionMajorMismatch(t *testing.T) {
	data := []byte("MPP/2.0.0 200 OK\r\nContent-Length: 0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")

	p, _, outcome := feedReplyAllAtOnce(data)
	require.Equal(t, Rejected, outcome)
	assert.Equal(t, protocol.StatusBadMajorVersion, p.FailureReason())
}

func TestReplyParserVersionMinorAndPatchMismatch(t *testing.T) {
	p, _, outcome := feedReplyAllAtOnce([]byte("MPP/1.9.5 200 OK\r\nContent-Length: 0\r\n\r\n"))
	require.Equal(t, Rejected, outcome)
	assert.Equal(t, protocol.StatusBadMinorVersion, p.FailureReason())

	p, _, outcome = feedReplyAllAtOnce([]byte("MPP/1.3.9 200 OK\r\nContent-Length: 0\r\n\r\n"))
	require.Equal(t, Rejected, outcome)
	assert.Equal(t, protocol.StatusBadPatchVersion, p.FailureReason())
}

func TestReplyParserGetSetState(t *testing.T) {
	p := NewReplyParser()
	assert.Equal(t, int(rStateInitialM), p.GetState())

	err := p.SetState(int(rStateBody))
	require.NoError(t, err)
	assert.Equal(t, int(rStateBody), p.GetState())

	err = p.SetState(-1)
	assert.ErrorIs(t, err, ErrUnknownState)
}
