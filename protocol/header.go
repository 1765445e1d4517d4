package protocol

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Well known header names. Comparison is case-sensitive (§4.2 tie-breaks);
// we don't normalise, matching the source's exact-equality check.
const (
	HeaderContentLength = "Content-Length"
	HeaderContentType   = "Content-Type"
)

// ContentType is the only content type this protocol version emits.
const ContentType = "text/plain; charset=utf-8"

// valueKind discriminates Header's two-variant tagged value. The source uses
// a dynamic container for this; we use a closed two-member sum type instead.
type valueKind int

const (
	kindString valueKind = iota
	kindInt
)

// Header is a single name/value pair carried on a Request or Reply.
// Value is one of exactly two variants: a string, or an unsigned integer.
// Content-Length is always the integer variant; every other header (known
// or not) is the string variant. Mismatching the variant a name expects is
// an encode-time error (ErrBadHeaderValue), never a parse-time one: the
// parser always produces the variant appropriate to the name it read.
type Header struct {
	name string
	kind valueKind
	str  string
	num  uint64
}

// NewHeader builds a string-valued header.
func NewHeader(name, value string) Header {
	return Header{name: name, kind: kindString, str: value}
}

// NewIntHeader builds an integer-valued header.
func NewIntHeader(name string, value uint64) Header {
	return Header{name: name, kind: kindInt, num: value}
}

func (h Header) Name() string { return h.name }

// Value returns the header's value rendered as a string, regardless of
// which variant it holds.
func (h Header) Value() string {
	if h.kind == kindInt {
		return strconv.FormatUint(h.num, 10)
	}
	return h.str
}

// IntValue returns the integer variant and true, or (0, false) if this
// header holds a string.
func (h Header) IntValue() (uint64, bool) {
	if h.kind != kindInt {
		return 0, false
	}
	return h.num, true
}

func (h Header) String() string {
	var b strings.Builder
	h.StringWrite(&b)
	return b.String()
}

// StringWrite renders "Name: Value" with no trailing CRLF, matching the
// source's StringWrite convention for reusing a single buffer across a
// whole message instead of allocating per-header strings.
func (h Header) StringWrite(w io.StringWriter) {
	w.WriteString(h.name)
	w.WriteString(": ")
	w.WriteString(h.Value())
}

// IsInt reports whether this header holds the integer variant.
func (h Header) IsInt() bool { return h.kind == kindInt }

// requiresInt reports whether name is a header the wire format mandates
// carry the integer variant. Used by encoders to fail closed (§4.1).
func requiresInt(name string) bool {
	return name == HeaderContentLength
}

// validateHeaders checks that every header's stored variant matches what
// its name requires, failing closed per §3's invariant and §4.4/§4.5's
// "mismatch -> BadHeaderValue" encode-time rule.
func validateHeaders(hs []Header) error {
	for _, h := range hs {
		if requiresInt(h.Name()) != h.IsInt() {
			return fmt.Errorf("%w: %s", ErrBadHeaderValue, h.Name())
		}
	}
	return nil
}
