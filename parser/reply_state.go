package parser

// replyState enumerates every state ReplyParser can be in, following the
// names in the retrieved RepParser.hpp (initial_m ... header_val), plus the
// header/body states shared in spirit with RequestParser.
type replyState int

const (
	rStateInitialM replyState = iota
	rStateFirstP
	rStateSecondP
	rStateSlash
	rStateMajor
	rStateMinor
	rStatePatch
	rStateCodeDigit1
	rStateCodeDigit2
	rStateCodeDigit3
	rStateSpaceAfterCode
	rStateDontCare // reason phrase, ignored up to CRLF
	rStateStartLineCR
	rStateStartLineLF
	rStateHeaderName
	rStateSpaceAfterColon
	rStateHeaderVal
	rStateHeaderValCR
	rStateHeaderEndLF
	rStateBody
	rStateDone
)
