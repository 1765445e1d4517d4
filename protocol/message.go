package protocol

import "bytes"

// messageData is the header/body storage shared by Request and Reply,
// mirroring the source's MessageData embedding (headers + body kept in one
// place, start line left to the concrete type).
type messageData struct {
	headers []Header
	body    []byte

	// pinned backs ToBuffers' encoded header block. It is owned by the
	// message so the buffers handed back by ToBuffers stay valid until the
	// next call, per §4.4's pinning requirement.
	pinned bytes.Buffer
}

// Headers returns the header sequence in wire order.
func (m *messageData) Headers() []Header {
	return m.headers
}

// GetHeader returns the last header matching name, so a duplicated header
// resolves to its last occurrence. Header names are compared
// case-sensitively (§4.2 tie-breaks, §9 open question: this port picks
// exact equality, same as the source).
func (m *messageData) GetHeader(name string) (Header, bool) {
	for i := len(m.headers) - 1; i >= 0; i-- {
		if h := m.headers[i]; h.name == name {
			return h, true
		}
	}
	return Header{}, false
}

// AppendHeader appends header, preserving insertion order on the wire even
// across duplicate names (§4.2: "last wins" is a lookup rule, not a storage
// rule -- the wire still shows every header that arrived).
func (m *messageData) AppendHeader(h Header) {
	m.headers = append(m.headers, h)
}

// ReplaceHeader overwrites the last header with the same name (the one
// GetHeader returns), or appends if none exists yet.
func (m *messageData) ReplaceHeader(h Header) {
	for i := len(m.headers) - 1; i >= 0; i-- {
		if m.headers[i].name == h.name {
			m.headers[i] = h
			return
		}
	}
	m.AppendHeader(h)
}

// Body returns the message payload: the noun for a Request, or the
// answering content for a Reply.
func (m *messageData) Body() []byte {
	return m.body
}

// SetBody sets the payload and keeps the Content-Length header in sync,
// the same contract as the source's MessageData.SetBody.
func (m *messageData) SetBody(body []byte) {
	m.body = body
	m.ReplaceHeader(NewIntHeader(HeaderContentLength, uint64(len(body))))
}

// ContentLength reads back the Content-Length header's integer variant.
func (m *messageData) ContentLength() (uint64, bool) {
	h, ok := m.GetHeader(HeaderContentLength)
	if !ok {
		return 0, false
	}
	return h.IntValue()
}
