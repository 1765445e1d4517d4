// Package handler turns a parsed protocol.Request into a protocol.Reply by
// consulting a pluralisation Lookup. It never touches the wire: a malformed
// request never reaches it, the server answers those with a stock reply
// before the handler is invoked (§4.6).
package handler

import (
	"github.com/rs/zerolog"

	"github.com/vcarri/mppd/protocol"
)

// Lookup is the external pluralisation table ReqHandler consults. A noun is
// given as UTF-8 bytes; implementations decide singular/plural by whatever
// means they like (in-memory table, database, ...).
type Lookup interface {
	// IsSingular reports whether noun is the singular form. Nouns unknown
	// to the lookup are treated as singular, matching the source's
	// default-true behaviour for an unrecognised word.
	IsSingular(noun []byte) bool

	// OppositeForm returns the plural of a singular noun or the singular
	// of a plural noun. ok is false when noun isn't in the table.
	OppositeForm(noun []byte) (opposite []byte, ok bool)
}

// ReqHandler implements the handle(request, reply) operation of §4.6. It
// holds no connection state of its own -- the same instance can be shared
// across every Connection on a reactor, or each reactor can build its own,
// per §5's "ReqHandler MUST be internally thread-safe OR each reactor
// constructs its own" rule; a Lookup that isn't safe for concurrent reads
// should be given one ReqHandler per reactor.
type ReqHandler struct {
	lookup Lookup
	log    zerolog.Logger
}

// New builds a ReqHandler backed by lookup, logging through log.
func New(lookup Lookup, log zerolog.Logger) *ReqHandler {
	return &ReqHandler{lookup: lookup, log: log.With().Str("component", "handler").Logger()}
}

// Handle populates reply from req. It never returns an error: any failure
// the handler itself causes (e.g. an encoding error surfaced later) is the
// caller's concern per §7's boundary between handler and connection.
func (h *ReqHandler) Handle(req *protocol.Request, reply *protocol.Reply) {
	switch req.Command {
	case protocol.CmdIsSingular:
		h.handleIsSingular(req, reply)
	case protocol.CmdFindOpposite:
		h.handleFindOpposite(req, reply)
	default:
		h.log.Error().Str("command", req.Command.String()).Msg("handler invoked for unrecognised command")
		setStatus(reply, protocol.StatusInternal, nil)
	}
}

func (h *ReqHandler) handleIsSingular(req *protocol.Request, reply *protocol.Reply) {
	singular := h.lookup.IsSingular(req.Noun())
	content := []byte("false")
	if singular {
		content = []byte("true")
	}
	setStatus(reply, protocol.StatusOK, content)
}

func (h *ReqHandler) handleFindOpposite(req *protocol.Request, reply *protocol.Reply) {
	opposite, ok := h.lookup.OppositeForm(req.Noun())
	if !ok {
		h.log.Debug().Bytes("noun", req.Noun()).Msg("noun not found")
		setStatus(reply, protocol.StatusNounNotFound, nil)
		return
	}
	setStatus(reply, protocol.StatusOK, opposite)
}

func setStatus(reply *protocol.Reply, status protocol.Status, content []byte) {
	reply.Status = status
	reply.Reason = status.Reason()
	reply.SetBody(content)
}
