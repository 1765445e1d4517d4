package parser

import (
	"bytes"

	"github.com/vcarri/mppd/protocol"
)

// ReplyParser incrementally parses bytes off the wire into a protocol.Reply.
// Like RequestParser it is stateless between Feed calls apart from its own
// fields; the same *protocol.Reply must be passed on every call until Feed
// returns Accepted or Rejected.
type ReplyParser struct {
	state   replyState
	failure FailureCode

	major, minor, patch int
	sawVersionDigit bool
	code            int

	headerName  bytes.Buffer
	headerValue bytes.Buffer

	bodyWritten int
}

func NewReplyParser() *ReplyParser {
	return &ReplyParser{}
}

func (p *ReplyParser) Reset() {
	*p = ReplyParser{}
}

func (p *ReplyParser) FailureReason() FailureCode {
	return p.failure
}

// GetState exposes the parser's current state as an opaque integer, and
// SetState restores it. The original implementation lets a caller save and
// rewind a connection's parse position (§4.3's open question); this is kept
// for client code that wants to snapshot a parser mid-stream, though the
// server itself never needs it since it parses one reply at a time.
func (p *ReplyParser) GetState() int { return int(p.state) }

func (p *ReplyParser) SetState(s int) error {
	if s < int(rStateInitialM) || s > int(rStateDone) {
		return ErrUnknownState
	}
	p.state = replyState(s)
	return nil
}

func (p *ReplyParser) Feed(rep *protocol.Reply, data []byte) (Outcome, int) {
	i := 0
	for i < len(data) {
		if p.state == rStateBody {
			need := len(rep.Content()) - p.bodyWritten
			have := len(data) - i
			n := need
			if have < n {
				n = have
			}
			copy(rep.Content()[p.bodyWritten:], data[i:i+n])
			p.bodyWritten += n
			i += n
			if p.bodyWritten == len(rep.Content()) {
				p.state = rStateDone
				return Accepted, i
			}
			continue
		}

		b := data[i]
		i++
		outcome, done := p.consume(rep, b)
		if outcome == Rejected {
			return Rejected, i
		}
		if done {
			return Accepted, i
		}
	}
	return NeedMore, i
}

func (p *ReplyParser) consume(rep *protocol.Reply, b byte) (Outcome, bool) {
	switch p.state {
	case rStateInitialM:
		if b != 'M' {
			return p.reject(failBadRequest)
		}
		p.state = rStateFirstP
	case rStateFirstP:
		if b != 'P' {
			return p.reject(failBadRequest)
		}
		p.state = rStateSecondP
	case rStateSecondP:
		if b != 'P' {
			return p.reject(failBadRequest)
		}
		p.state = rStateSlash
	case rStateSlash:
		if b != '/' {
			return p.reject(failBadRequest)
		}
		p.state = rStateMajor
	case rStateMajor:
		return p.consumeVersionDigit(b, '.', rStateMinor, failBadMajor, &p.major)
	case rStateMinor:
		return p.consumeVersionDigit(b, '.', rStatePatch, failBadMinor, &p.minor)
	case rStatePatch:
		return p.consumeVersionDigit(b, ' ', rStateCodeDigit1, failBadPatch, &p.patch)
	case rStateCodeDigit1:
		if b < '0' || b > '9' {
			return p.reject(failBadRequest)
		}
		p.code = int(b - '0')
		p.state = rStateCodeDigit2
	case rStateCodeDigit2:
		if b < '0' || b > '9' {
			return p.reject(failBadRequest)
		}
		p.code = p.code*10 + int(b-'0')
		p.state = rStateCodeDigit3
	case rStateCodeDigit3:
		if b < '0' || b > '9' {
			return p.reject(failBadRequest)
		}
		p.code = p.code*10 + int(b-'0')
		rep.Status = protocol.Status(p.code)
		p.state = rStateSpaceAfterCode
	case rStateSpaceAfterCode:
		if b != ' ' {
			return p.reject(failBadRequest)
		}
		p.state = rStateDontCare
	case rStateDontCare:
		if b == '\r' {
			p.state = rStateStartLineCR
			return NeedMore, false
		}
		p.headerValue.WriteByte(b)
	case rStateStartLineCR:
		if b != '\n' {
			return p.reject(failBadRequest)
		}
		rep.Reason = p.headerValue.String()
		p.headerValue.Reset()
		p.state = rStateHeaderName
	case rStateHeaderName:
		return p.consumeHeaderName(b)
	case rStateSpaceAfterColon:
		if b != ' ' {
			return p.reject(failBadRequest)
		}
		p.state = rStateHeaderVal
	case rStateHeaderVal:
		return p.consumeHeaderValue(b)
	case rStateHeaderValCR:
		if b != '\n' {
			return p.reject(failBadRequest)
		}
		h := headerFromWire(p.headerName.String(), p.headerValue.String())
		if h.Name() == protocol.HeaderContentLength && !h.IsInt() {
			return p.reject(failBadRequest)
		}
		rep.AppendHeader(h)
		p.headerName.Reset()
		p.headerValue.Reset()
		p.state = rStateHeaderName
	case rStateHeaderEndLF:
		if b != '\n' {
			return p.reject(failBadRequest)
		}
		return p.enterBody(rep)
	default:
		return p.reject(failBadRequest)
	}
	return NeedMore, false
}

func (p *ReplyParser) consumeVersionDigit(b byte, sep byte, next replyState, fail FailureCode, acc *int) (Outcome, bool) {
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
// before the minor and patch are even read (§4.3: same targeted rejection
// as the request parser).
func (p *ReplyParser) versionMatches(next replyState, fail FailureCode) bool {
	switch next {
	case rStateMinor:
		return p.major == protocol.VersionMajor
	case rStatePatch:
		return p.minor == protocol.VersionMinor
	case rStateCodeDigit1:
		return p.patch == protocol.VersionPatch
	}
	return true
}

func (p *ReplyParser) consumeHeaderName(b byte) (Outcome, bool) {
	if b == '\r' && p.headerName.Len() == 0 {
		p.state = rStateHeaderEndLF
		return NeedMore, false
	}
	if b == ':' {
		p.state = rStateSpaceAfterColon
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

func (p *ReplyParser) consumeHeaderValue(b byte) (Outcome, bool) {
	if b == '\r' {
		p.state = rStateHeaderValCR
		return NeedMore, false
	}
	if p.headerValue.Len() >= maxHeaderValueLen {
		return p.reject(failBadRequest)
	}
	p.headerValue.WriteByte(b)
	return NeedMore, false
}

func (p *ReplyParser) enterBody(rep *protocol.Reply) (Outcome, bool) {
	cl, ok := rep.ContentLength()
	if !ok {
		cl = 0
	}
	if cl > maxBodyLen {
		return p.reject(failBadRequest)
	}
	rep.ReserveContent(int(cl))
	p.bodyWritten = 0
	if cl == 0 {
		p.state = rStateDone
		return Accepted, true
	}
	p.state = rStateBody
	return NeedMore, false
}

func (p *ReplyParser) reject(code FailureCode) (Outcome, bool) {
	p.failure = code
	p.state = rStateDone
	return Rejected, true
}
