package transport

import (
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/vcarri/mppd/handler"
)

func TestIoContextPoolNextReactorRoundRobin(t *testing.T) {
	p := NewIoContextPool(3, zerolog.Nop())

	first := p.nextReactor()
	second := p.nextReactor()
	third := p.nextReactor()
	fourth := p.nextReactor()

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, second, third)
	assert.Equal(t, first, fourth, "round robin wraps after N reactors")
}

func TestIoContextPoolDispatchRunsOnItsOwnGoroutine(t *testing.T) {
	p := NewIoContextPool(2, zerolog.Nop())
	serverSide, clientSide := net.Pipe()
	defer clientSide.Close()

	c := NewConnection(serverSide, uuid.New(), handler.New(handler.NewWordlistLookup(nil), zerolog.Nop()), zerolog.Nop())
	p.Dispatch(c)

	_, err := clientSide.Write([]byte("MPP/1.3.5 ISSING \r\nContent-Length: 0\r\n\r\n"))
	assert.NoError(t, err)

	buf := make([]byte, 4096)
	_ = clientSide.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, err = clientSide.Read(buf)
	assert.NoError(t, err)

	// The reply body is written separately and never read here; closing the
	// client side lets that write fail so the connection finishes and Stop
	// can return.
	clientSide.Close()
	p.Stop()
}

func TestIoContextPoolMinimumOneReactor(t *testing.T) {
	p := NewIoContextPool(0, zerolog.Nop())
	assert.Equal(t, 1, p.n)
}
