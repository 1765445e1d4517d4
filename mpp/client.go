// Package mpp is the top-level convenience wrapper around the protocol and
// parser packages: a one-shot Client, symmetric to the client surface of
// the teacher's top-level package. Servers are built with package transport.
package mpp

import (
	"fmt"
	"net"
	"time"

	"github.com/vcarri/mppd/parser"
	"github.com/vcarri/mppd/protocol"
)

// DefaultTimeout bounds how long Client.Do waits for a connection and for a
// reply before giving up.
const DefaultTimeout = 5 * time.Second

// Client is a one-shot MPP client: each call opens a connection, sends one
// request, reads the reply, and closes, matching the protocol's
// no-persistent-connections, no-pipelining model.
type Client struct {
	Addr    string
	Timeout time.Duration
}

// NewClient builds a Client dialing addr with DefaultTimeout.
func NewClient(addr string) *Client {
	return &Client{Addr: addr, Timeout: DefaultTimeout}
}

func (c *Client) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

// IsSingular sends an ISSING request for noun and reports the boolean
// answer.
func (c *Client) IsSingular(noun []byte) (bool, error) {
	reply, err := c.Do(protocol.CmdIsSingular, noun)
	if err != nil {
		return false, err
	}
	if reply.Status != protocol.StatusOK {
		return false, fmt.Errorf("mpp: server returned %d %s", reply.Status, reply.Reason)
	}
	return string(reply.Content()) == "true", nil
}

// FindOpposite sends a FOF request for noun and returns its opposite form.
// A StatusNounNotFound reply is reported as an error naming the status.
func (c *Client) FindOpposite(noun []byte) ([]byte, error) {
	reply, err := c.Do(protocol.CmdFindOpposite, noun)
	if err != nil {
		return nil, err
	}
	if reply.Status != protocol.StatusOK {
		return nil, fmt.Errorf("mpp: server returned %d %s", reply.Status, reply.Reason)
	}
	return reply.Content(), nil
}

// Do sends a single request for cmd/noun and returns the parsed reply. It
// owns the whole connection lifecycle: dial, write, read until the reply
// parser accepts, close.
func (c *Client) Do(cmd protocol.Command, noun []byte) (*protocol.Reply, error) {
	conn, err := net.DialTimeout("tcp", c.Addr, c.timeout())
	if err != nil {
		return nil, fmt.Errorf("mpp: dial %s: %w", c.Addr, err)
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(c.timeout()))

	req := protocol.NewRequest(cmd, noun)
	bufs, err := req.ToBuffers()
	if err != nil {
		return nil, fmt.Errorf("mpp: encode request: %w", err)
	}
	nb := net.Buffers(bufs)
	if _, err := nb.WriteTo(conn); err != nil {
		return nil, fmt.Errorf("mpp: write request: %w", err)
	}

	var reply protocol.Reply
	var p parser.ReplyParser
	buf := make([]byte, 4096)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			outcome, _ := p.Feed(&reply, buf[:n])
			switch outcome {
			case parser.Accepted:
				return &reply, nil
			case parser.Rejected:
				return nil, fmt.Errorf("mpp: malformed reply: %s", p.FailureReason())
			}
		}
		if err != nil {
			return nil, fmt.Errorf("mpp: read reply: %w", err)
		}
	}
}
