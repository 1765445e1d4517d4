package protocol

import (
	"bytes"
	"fmt"
)

// Reply is the in-memory form of an MPP reply (§3), produced either by a
// ReqHandler, by StockReply for protocol-layer failures, or by a
// ReplyParser while reading one off the wire.
type Reply struct {
	messageData
	Status Status
	Reason string
}

// NewReply builds a reply with the canonical reason phrase for status and
// no content. Call SetBody afterwards to attach content.
func NewReply(status Status) *Reply {
	r := &Reply{Status: status, Reason: status.Reason()}
	r.SetBody(nil)
	r.AppendHeader(NewHeader(HeaderContentType, ContentType))
	return r
}

// StockReply builds a canned reply for a given status with canonical
// headers and an empty body (§4.5), used by the server to answer
// protocol-layer failures without ever invoking the handler.
func StockReply(status Status) *Reply {
	return NewReply(status)
}

// Content is the answering payload -- an alias for Body() using the
// vocabulary of §3's data model.
func (r *Reply) Content() []byte {
	return r.Body()
}

// ReserveContent mirrors Request.ReserveNoun for the reply side, used by
// ReplyParser to size the content buffer once Content-Length is known.
func (r *Reply) ReserveContent(n int) {
	r.SetBody(make([]byte, n))
}

func (r *Reply) String() string {
	bufs, err := r.ToBuffers()
	if err != nil {
		return fmt.Sprintf("<invalid reply: %s>", err)
	}
	var b bytes.Buffer
	for _, buf := range bufs {
		b.Write(buf)
	}
	return b.String()
}

// ToBuffers renders the reply into the wire format of §4.1, the same
// pinned-storage, no-copy-of-content contract as Request.ToBuffers (§4.5).
func (r *Reply) ToBuffers() ([][]byte, error) {
	if err := validateHeaders(r.Headers()); err != nil {
		return nil, err
	}
	cl, ok := r.ContentLength()
	if !ok {
		return nil, fmt.Errorf("%w: %s is required on replies", ErrBadHeaderValue, HeaderContentLength)
	}
	if int(cl) != len(r.Body()) {
		return nil, fmt.Errorf("%w: %s does not match content length", ErrBadHeaderValue, HeaderContentLength)
	}

	head := &r.messageData.pinned
	head.Reset()
	fmt.Fprintf(head, "MPP/%d.%d.%d %03d %s\r\n", VersionMajor, VersionMinor, VersionPatch, r.Status, r.Reason)
	for _, h := range r.Headers() {
		h.StringWrite(head)
		head.WriteString("\r\n")
	}
	head.WriteString("\r\n")

	return [][]byte{head.Bytes(), r.Body()}, nil
}
