package handler

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcarri/mppd/protocol"
)

func newTestHandler(nouns map[string]string) *ReqHandler {
	return New(NewWordlistLookup(nouns), zerolog.Nop())
}

func TestHandleIsSingularTrue(t *testing.T) {
	h := newTestHandler(map[string]string{"cat": "cats"})
	req := protocol.NewRequest(protocol.CmdIsSingular, []byte("cat"))
	reply := protocol.NewReply(protocol.StatusOK)

	h.Handle(req, reply)

	assert.Equal(t, protocol.StatusOK, reply.Status)
	assert.Equal(t, "true", string(reply.Content()))
}

func TestHandleIsSingularFalseForPlural(t *testing.T) {
	h := newTestHandler(map[string]string{"cat": "cats"})
	req := protocol.NewRequest(protocol.CmdIsSingular, []byte("cats"))
	reply := protocol.NewReply(protocol.StatusOK)

	h.Handle(req, reply)

	assert.Equal(t, protocol.StatusOK, reply.Status)
	assert.Equal(t, "false", string(reply.Content()))
}

func TestHandleFindOppositeKnownNoun(t *testing.T) {
	h := newTestHandler(map[string]string{"cat": "cats"})
	req := protocol.NewRequest(protocol.CmdFindOpposite, []byte("cat"))
	reply := protocol.NewReply(protocol.StatusOK)

	h.Handle(req, reply)

	require.Equal(t, protocol.StatusOK, reply.Status)
	assert.Equal(t, "cats", string(reply.Content()))
}

func TestHandleFindOppositeUnknownNoun(t *testing.T) {
	h := newTestHandler(map[string]string{"cat": "cats"})
	req := protocol.NewRequest(protocol.CmdFindOpposite, []byte("dog"))
	reply := protocol.NewReply(protocol.StatusOK)

	h.Handle(req, reply)

	assert.Equal(t, protocol.StatusNounNotFound, reply.Status)
	assert.Empty(t, reply.Content())
}

func TestWordlistLookupOppositeIsSymmetric(t *testing.T) {
	w := NewWordlistLookup(map[string]string{"cat": "cats"})

	plural, ok := w.OppositeForm([]byte("cat"))
	require.True(t, ok)
	assert.Equal(t, "cats", string(plural))

	singular, ok := w.OppositeForm([]byte("cats"))
	require.True(t, ok)
	assert.Equal(t, "cat", string(singular))

	assert.True(t, w.IsSingular([]byte("cat")))
	assert.False(t, w.IsSingular([]byte("cats")))
}
