package protocol

import "errors"

// Encoding errors. These are programmer errors on the local side: a Request
// or Reply was asked to encode itself while its headers don't satisfy the
// wire format's invariants.
var (
	// ErrBadHeaderValue is returned when a header's stored variant doesn't
	// match what the wire format requires for its name (e.g. a non-integer
	// Content-Length), or when a required header is missing at encode time.
	ErrBadHeaderValue = errors.New("mpp: bad header value")

	// ErrUnknownHeader is the encoding error for a header name outside a
	// closed set of names. No function in this package returns it.
	ErrUnknownHeader = errors.New("mpp: unknown header")
)
