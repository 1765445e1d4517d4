package parser

import "github.com/vcarri/mppd/protocol"

// Outcome is the tri-valued result of feeding bytes to a parser (§4.2).
type Outcome int

const (
	// NeedMore means every byte handed to Feed was consumed and the
	// message is still incomplete; call Feed again with more bytes.
	NeedMore Outcome = iota
	// Accepted means the message was fully parsed.
	Accepted
	// Rejected means the input is malformed; FailureReason() names why.
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case NeedMore:
		return "need_more"
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	default:
		return "invalid"
	}
}

// FailureCode is the closed set of statuses a parser can fail with. It is
// protocol.Status under the hood since every parse failure maps onto one
// of the reply statuses a stock reply can carry (§6.1).
type FailureCode = protocol.Status

const (
	failBadRequest  = protocol.StatusBadRequest
	failBadMajor    = protocol.StatusBadMajorVersion
	failBadMinor    = protocol.StatusBadMinorVersion
	failBadPatch    = protocol.StatusBadPatchVersion
	failUnknownVerb = protocol.StatusUnknownVerb
)
