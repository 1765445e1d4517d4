// Package parser implements the incremental, byte-at-a-time wire parsers
// for MPP requests and replies (§4.2, §4.3). Each parser is a single
// explicit finite state machine: Feed is handed whatever bytes arrived on
// the socket, in whatever chunking the network gave them, and must produce
// exactly the same result as if it had been handed the whole message at
// once (§8's split-delivery invariant).
package parser

import "errors"

// ErrUnknownState is returned by SetState when asked to set a value outside
// the range of states the parser defines; the parser's state is left
// unchanged.
var ErrUnknownState = errors.New("parser: unknown state")
