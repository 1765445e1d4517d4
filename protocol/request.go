package protocol

import (
	"bytes"
	"fmt"
)

// Request is the in-memory form of an MPP request (§3). It starts life
// empty with Command == CmdInvalid; a RequestParser populates it field by
// field as bytes arrive, or a client constructs one directly with
// NewRequest before encoding it.
type Request struct {
	messageData
	Command Command
}

// NewRequest builds a ready-to-encode request for the given verb and noun.
// SetBody takes care of the Content-Length header.
func NewRequest(cmd Command, noun []byte) *Request {
	r := &Request{Command: cmd}
	r.SetBody(noun)
	return r
}

// Noun returns the noun payload -- an alias for Body() using the vocabulary
// of §3's data model.
func (r *Request) Noun() []byte {
	return r.Body()
}

// ReserveNoun is used by RequestParser to allocate the noun buffer once
// Content-Length is known, so the body state can fill it incrementally
// across several Feed calls without reallocating.
func (r *Request) ReserveNoun(n int) {
	r.SetBody(make([]byte, n))
}

func (r *Request) String() string {
	bufs, err := r.ToBuffers()
	if err != nil {
		return fmt.Sprintf("<invalid request: %s>", err)
	}
	var b bytes.Buffer
	for _, buf := range bufs {
		b.Write(buf)
	}
	return b.String()
}

// ToBuffers renders the request into the wire format of §4.1 as buffers
// that alias the Request's own storage rather than copying it: the header
// block (request line + headers, freshly rendered into a buffer pinned on
// the Request) and the noun itself (referenced, never copied). A later
// call to ToBuffers invalidates buffers handed back by an earlier call,
// since both share that pinning storage (§4.4).
func (r *Request) ToBuffers() ([][]byte, error) {
	if err := validateHeaders(r.Headers()); err != nil {
		return nil, err
	}
	cl, ok := r.ContentLength()
	if !ok {
		return nil, fmt.Errorf("%w: %s is required on requests", ErrBadHeaderValue, HeaderContentLength)
	}
	if int(cl) != len(r.Body()) {
		return nil, fmt.Errorf("%w: %s does not match noun length", ErrBadHeaderValue, HeaderContentLength)
	}

	head := &r.messageData.pinned
	head.Reset()
	fmt.Fprintf(head, "MPP/%d.%d.%d %s \r\n", VersionMajor, VersionMinor, VersionPatch, r.Command)
	for _, h := range r.Headers() {
		h.StringWrite(head)
		head.WriteString("\r\n")
	}
	head.WriteString("\r\n")

	return [][]byte{head.Bytes(), r.Body()}, nil
}
