package transport

import (
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vcarri/mppd/handler"
	"github.com/vcarri/mppd/parser"
	"github.com/vcarri/mppd/protocol"
)

// readBufferSize is the Connection's fixed read buffer. It is owned by the
// connection for its whole lifetime -- no per-message allocation happens on
// the read path (§5's resource discipline).
const readBufferSize = 8192

// readTimeout bounds how long a single read waits for the next byte, so an
// idle or stalled client releases its goroutine and socket instead of
// parking both forever.
const readTimeout = 30 * time.Second

// Connection runs the reading -> parsing -> dispatching -> writing ->
// half-closed -> done state machine of §4.7 for exactly one request/reply
// exchange; this protocol has no persistent connections or pipelining
// (Non-goals), so a Connection serves one request and closes.
//
// A Connection is bound to exactly one reactor label for its entire
// lifetime (see IoContextPool), carried only for logging/affinity
// bookkeeping; its own read -> parse -> dispatch -> write work runs on the
// goroutine IoContextPool.Dispatch starts for it, so none of its fields
// need locking: nothing else ever touches them concurrently.
type Connection struct {
	conn    net.Conn
	id      uuid.UUID
	reactor int
	log     zerolog.Logger
	handler *handler.ReqHandler

	buf [readBufferSize]byte
	req protocol.Request
	p   parser.RequestParser
}

// NewConnection wraps an accepted socket. It does not start reading;
// Serve does.
func NewConnection(conn net.Conn, id uuid.UUID, h *handler.ReqHandler, log zerolog.Logger) *Connection {
	return &Connection{
		conn:    conn,
		id:      id,
		handler: h,
		log: log.With().
			Str("component", "connection").
			Str("conn_id", id.String()).
			Str("remote", conn.RemoteAddr().String()).
			Logger(),
	}
}

// Serve runs the connection's state machine to completion: read, parse,
// dispatch or stock-reply, write, half-close. It never returns an error --
// every failure path logs and releases the connection itself, matching
// §4.7's "log, release" transitions on read/write error.
func (c *Connection) Serve() {
	defer c.close()
	c.log = c.log.With().Int("reactor", c.reactor).Logger()

	for {
		_ = c.conn.SetReadDeadline(time.Now().Add(readTimeout))
		n, err := c.conn.Read(c.buf[:])
		if err != nil {
			c.log.Debug().Err(err).Msg("read failed")
			return
		}

		outcome, _ := c.p.Feed(&c.req, c.buf[:n])
		switch outcome {
		case parser.NeedMore:
			continue
		case parser.Accepted:
			c.dispatch()
			return
		case parser.Rejected:
			c.respond(protocol.StockReply(c.p.FailureReason()))
			return
		}
	}
}

func (c *Connection) dispatch() {
	reply := protocol.NewReply(protocol.StatusOK)
	c.handler.Handle(&c.req, reply)
	c.respond(reply)
}

func (c *Connection) respond(reply *protocol.Reply) {
	bufs, err := reply.ToBuffers()
	if err != nil {
		c.log.Error().Err(err).Msg("encode reply failed, answering 500")
		bufs, err = protocol.StockReply(protocol.StatusInternal).ToBuffers()
		if err != nil {
			c.log.Error().Err(err).Msg("encode stock 500 reply failed")
			return
		}
	}
	nb := net.Buffers(bufs)
	if _, err := nb.WriteTo(c.conn); err != nil {
		c.log.Debug().Err(err).Msg("write failed")
	}
}

// close performs the bidirectional socket shutdown of §4.7 step 4, ignoring
// any error it returns, then closes the socket. It runs on every exit path
// via Serve's defer, so the socket is closed exactly once.
func (c *Connection) close() {
	if tc, ok := c.conn.(*net.TCPConn); ok {
		_ = tc.CloseWrite()
		_ = tc.CloseRead()
	}
	_ = c.conn.Close()
}
