package transport

import (
	"fmt"
	"net"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vcarri/mppd/handler"
)

// Server owns the acceptor, the shared ReqHandler, and the reactor pool
// (§4.9). On each accept it pulls the next reactor round-robin and hands it
// a fresh Connection.
type Server struct {
	listener net.Listener
	pool     *IoContextPool
	handler  *handler.ReqHandler
	log      zerolog.Logger
}

// NewServer binds addr and builds a pool of numReactors reactors sharing h.
func NewServer(addr string, numReactors int, h *handler.ReqHandler, log zerolog.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	return &Server{
		listener: ln,
		pool:     NewIoContextPool(numReactors, log),
		handler:  h,
		log:      log.With().Str("component", "server").Logger(),
	}, nil
}

// Addr is the address the listener is bound to, useful when addr was
// passed with a :0 port.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Run accepts connections until a terminating signal arrives or the
// listener fails, then cancels the acceptor and stops the pool (§4.9's
// cancellation rule: in-flight connections finish their current I/O, no new
// I/O is scheduled).
func (s *Server) Run() error {
	s.pool.Run()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, terminatingSignals()...)
	defer signal.Stop(sig)

	acceptDone := make(chan error, 1)
	go func() { acceptDone <- s.acceptLoop() }()

	select {
	case <-sig:
		s.log.Info().Msg("shutdown signal received")
		_ = s.listener.Close()
		<-acceptDone
		s.pool.Stop()
		return nil
	case err := <-acceptDone:
		s.pool.Stop()
		return err
	}
}

// Close stops accepting new connections. It does not itself wait for the
// pool to drain; a Run in progress returns only after its accept loop ends
// and the pool has drained.
func (s *Server) Close() error {
	return s.listener.Close()
}

func (s *Server) acceptLoop() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return err
		}
		id := uuid.New()
		c := NewConnection(conn, id, s.handler, s.log)
		s.pool.Dispatch(c)
	}
}
