package parser

// requestState enumerates every state RequestParser can be in. Names follow
// the original C++ source's ReqParser::State enum (protocol_name_m ...
// issing_g, space) for the start-line portion; header/body states are this
// port's own, following §4.2's abridged description since the retrieved
// original stops at the start line (see DESIGN.md).
type requestState int

const (
	stateProtocolM requestState = iota
	stateProtocolFirstP
	stateProtocolSecondP
	stateSlash
	stateMajor
	stateMinor
	statePatch
	stateVerbStart
	stateFofO
	stateFofF
	stateIssingFirstS
	stateIssingSecondS
	stateIssingSecondI
	stateIssingN
	stateIssingG
	stateSpace // the single SP required after the verb
	stateStartLineCR
	stateStartLineLF
	stateHeaderName
	stateHeaderColonSpace
	stateHeaderValue
	stateHeaderValueCR
	stateHeaderEndLF
	stateBody
	stateDone
)
