package parser

import "github.com/vcarri/mppd/protocol"

// feedAllAtOnce and feedByteAtATime let a test run the same input both ways
// and assert identical outcomes, directly exercising the split-delivery
// invariant every parser must satisfy regardless of how the network
// chunked the bytes.

func feedRequestAllAtOnce(data []byte) (*RequestParser, *protocol.Request, Outcome) {
	p := NewRequestParser()
	req := &protocol.Request{}
	outcome, _ := p.Feed(req, data)
	return p, req, outcome
}

func feedRequestByteAtATime(data []byte) (*RequestParser, *protocol.Request, Outcome) {
	p := NewRequestParser()
	req := &protocol.Request{}
	var outcome Outcome
	for _, b := range data {
		outcome, _ = p.Feed(req, []byte{b})
		if outcome != NeedMore {
			break
		}
	}
	return p, req, outcome
}

func feedReplyAllAtOnce(data []byte) (*ReplyParser, *protocol.Reply, Outcome) {
	p := NewReplyParser()
	rep := &protocol.Reply{}
	outcome, _ := p.Feed(rep, data)
	return p, rep, outcome
}

func feedReplyByteAtATime(data []byte) (*ReplyParser, *protocol.Reply, Outcome) {
	p := NewReplyParser()
	rep := &protocol.Reply{}
	var outcome Outcome
	for _, b := range data {
		outcome, _ = p.Feed(rep, []byte{b})
		if outcome != NeedMore {
			break
		}
	}
	return p, rep, outcome
}
