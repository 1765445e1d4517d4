package parser

import (
	"bytes"

	"github.com/vcarri/mppd/protocol"
)

const (
	maxHeaderNameLen  = 256
	maxHeaderValueLen = 4096
	maxBodyLen        = 1 << 20
)

// RequestParser incrementally parses bytes off the wire into a
// protocol.Request. It keeps no reference to the Request between Feed
// calls -- the caller passes the same *protocol.Request on every call until
// Feed returns Accepted or Rejected, mirroring ReqParser::parse in the
// retrieved original.
type RequestParser struct {
	state   requestState
	failure FailureCode

	major, minor, patch int
	sawVersionDigit bool
	verb            protocol.Command

	headerName  bytes.Buffer
	headerValue bytes.Buffer

	bodyWritten int
}

// NewRequestParser returns a parser ready to parse a fresh request.
func NewRequestParser() *RequestParser {
	return &RequestParser{}
}

// Reset returns the parser to its initial state, ready to parse a new
// request on the same connection.
func (p *RequestParser) Reset() {
	*p = RequestParser{}
}

// FailureReason names why the last Feed call returned Rejected. Its value
// is undefined otherwise.
func (p *RequestParser) FailureReason() FailureCode {
	return p.failure
}

// Feed consumes as much of data as it can, writing parsed fields directly
// into req. It returns the outcome and the number of bytes consumed from
// data; on NeedMore every byte was consumed, on Accepted or Rejected the
// caller must not feed the unconsumed remainder to this request -- it
// belongs to whatever comes next on the connection (§4.2, §8).
func (p *RequestParser) Feed(req *protocol.Request, data []byte) (Outcome, int) {
	i := 0
	for i < len(data) {
		if p.state == stateBody {
			need := len(req.Noun()) - p.bodyWritten
			have := len(data) - i
			n := need
			if have < n {
				n = have
			}
			copy(req.Noun()[p.bodyWritten:], data[i:i+n])
			p.bodyWritten += n
			i += n
			if p.bodyWritten == len(req.Noun()) {
				p.state = stateDone
				return Accepted, i
			}
			continue
		}

		b := data[i]
		i++
		outcome, done := p.consume(req, b)
		if outcome == Rejected {
			return Rejected, i
		}
		if done {
			// Zero-length body: nothing more to read.
			return Accepted, i
		}
	}
	return NeedMore, i
}

// consume processes a single byte outside of the body state. done is true
// when the request is rejected, or when the whole request (with an empty
// body) is now complete.
func (p *RequestParser) consume(req *protocol.Request, b byte) (Outcome, bool) {
	switch p.state {
	case stateProtocolM:
		if b != 'M' {
			return p.reject(failBadRequest)
		}
		p.state = stateProtocolFirstP
	case stateProtocolFirstP:
		if b != 'P' {
			return p.reject(failBadRequest)
		}
		p.state = stateProtocolSecondP
	case stateProtocolSecondP:
		if b != 'P' {
			return p.reject(failBadRequest)
		}
		p.state = stateSlash
	case stateSlash:
		if b != '/' {
			return p.reject(failBadRequest)
		}
		p.state = stateMajor
	case stateMajor:
		return p.consumeVersionDigit(b, '.', stateMinor, failBadMajor, &p.major)
	case stateMinor:
		return p.consumeVersionDigit(b, '.', statePatch, failBadMinor, &p.minor)
	case statePatch:
		return p.consumeVersionDigit(b, ' ', stateVerbStart, failBadPatch, &p.patch)
	case stateVerbStart:
		return p.consumeVerbStart(req, b)
	case stateFofO:
		return p.matchByte(b, 'O', stateFofF, failUnknownVerb)
	case stateFofF:
		return p.matchByte(b, 'F', stateSpace, failUnknownVerb)
	case stateIssingFirstS:
		return p.matchByte(b, 'S', stateIssingSecondS, failUnknownVerb)
	case stateIssingSecondS:
		return p.matchByte(b, 'S', stateIssingSecondI, failUnknownVerb)
	case stateIssingSecondI:
		return p.matchByte(b, 'I', stateIssingN, failUnknownVerb)
	case stateIssingN:
		return p.matchByte(b, 'N', stateIssingG, failUnknownVerb)
	case stateIssingG:
		return p.matchByte(b, 'G', stateSpace, failUnknownVerb)
	case stateSpace:
		if b != ' ' {
			return p.reject(failBadRequest)
		}
		req.Command = p.verb
		p.state = stateStartLineCR
	case stateStartLineCR:
		if b != '\r' {
			return p.reject(failBadRequest)
		}
		p.state = stateStartLineLF
	case stateStartLineLF:
		if b != '\n' {
			return p.reject(failBadRequest)
		}
		p.state = stateHeaderName
	case stateHeaderName:
		return p.consumeHeaderName(req, b)
	case stateHeaderColonSpace:
		if b != ' ' {
			return p.reject(failBadRequest)
		}
		p.state = stateHeaderValue
	case stateHeaderValue:
		return p.consumeHeaderValue(req, b)
	case stateHeaderValueCR:
		if b != '\n' {
			return p.reject(failBadRequest)
		}
		h := headerFromWire(p.headerName.String(), p.headerValue.String())
		if h.Name() == protocol.HeaderContentLength && !h.IsInt() {
			return p.reject(failBadRequest)
		}
		req.AppendHeader(h)
		p.headerName.Reset()
		p.headerValue.Reset()
		p.state = stateHeaderName
	case stateHeaderEndLF:
		if b != '\n' {
			return p.reject(failBadRequest)
		}
		return p.enterBody(req)
	default:
		return p.reject(failBadRequest)
	}
	return NeedMore, false
}

func (p *RequestParser) consumeVersionDigit(b byte, sep byte, next requestState, fail FailureCode, acc *int) (Outcome, bool) {
	if b >= '0' && b <= '9' {
		*acc = *acc*10 + int(b-'0')
		p.sawVersionDigit = true
		return NeedMore, false
	}
	if b == sep && p.sawVersionDigit {
		p.sawVersionDigit = false
		if !p.versionMatches(next, fail) {
			return p.reject(fail)
		}
		p.state = next
		return NeedMore, false
	}
	return p.reject(fail)
}

// versionMatches checks the just-completed version component against
// MPP/1.3.5 the instant it's known, so a mismatched major version fails
// before the minor and patch are even read (§4.2 tie-break: exact version
// triple match only).
func (p *RequestParser) versionMatches(next requestState, fail FailureCode) bool {
	switch next {
	case stateMinor:
		return p.major == protocol.VersionMajor
	case statePatch:
		return p.minor == protocol.VersionMinor
	case stateVerbStart:
		return p.patch == protocol.VersionPatch
	}
	return true
}

func (p *RequestParser) consumeVerbStart(req *protocol.Request, b byte) (Outcome, bool) {
	switch b {
	case 'F', 'f':
		p.verb = protocol.CmdFindOpposite
		p.state = stateFofO
	case 'I', 'i':
		p.verb = protocol.CmdIsSingular
		p.state = stateIssingFirstS
	default:
		return p.reject(failUnknownVerb)
	}
	return NeedMore, false
}

// matchByte checks b case-insensitively against want, advancing to next or
// rejecting with fail.
func (p *RequestParser) matchByte(b byte, want byte, next requestState, fail FailureCode) (Outcome, bool) {
	if upper(b) != want {
		return p.reject(fail)
	}
	p.state = next
	return NeedMore, false
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func headerFromWire(name, value string) protocol.Header {
	if name == protocol.HeaderContentLength {
		var n uint64
		for i := 0; i < len(value); i++ {
			if value[i] < '0' || value[i] > '9' {
				return protocol.NewHeader(name, value)
			}
			n = n*10 + uint64(value[i]-'0')
		}
		return protocol.NewIntHeader(name, n)
	}
	return protocol.NewHeader(name, value)
}

func (p *RequestParser) consumeHeaderName(req *protocol.Request, b byte) (Outcome, bool) {
	if b == '\r' && p.headerName.Len() == 0 {
		p.state = stateHeaderEndLF
		return NeedMore, false
	}
	if b == ':' {
		p.state = stateHeaderColonSpace
		return NeedMore, false
	}
	if b == '\r' || b == '\n' {
		return p.reject(failBadRequest)
	}
	if p.headerName.Len() >= maxHeaderNameLen {
		return p.reject(failBadRequest)
	}
	p.headerName.WriteByte(b)
	return NeedMore, false
}

func (p *RequestParser) consumeHeaderValue(req *protocol.Request, b byte) (Outcome, bool) {
	if b == '\r' {
		p.state = stateHeaderValueCR
		return NeedMore, false
	}
	if p.headerValue.Len() >= maxHeaderValueLen {
		return p.reject(failBadRequest)
	}
	p.headerValue.WriteByte(b)
	return NeedMore, false
}

func (p *RequestParser) enterBody(req *protocol.Request) (Outcome, bool) {
	cl, ok := req.ContentLength()
	if !ok {
		cl = 0
	}
	if cl > maxBodyLen {
		return p.reject(failBadRequest)
	}
	req.ReserveNoun(int(cl))
	p.bodyWritten = 0
	if cl == 0 {
		p.state = stateDone
		return Accepted, true
	}
	p.state = stateBody
	return NeedMore, false
}

func (p *RequestParser) reject(code FailureCode) (Outcome, bool) {
	p.failure = code
	p.state = stateDone
	return Rejected, true
}
