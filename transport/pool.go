package transport

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// IoContextPool hands each accepted Connection a reactor affinity label,
// round robin over n reactors, and tracks every connection it has
// dispatched so Stop can wait for them to drain (§4.8). A reactor's
// defining property is that it multiplexes many connections' suspension
// points concurrently (§5: "Suspension points: exclusively inside async
// read, async write, and async accept"), so the work itself runs one
// goroutine per connection -- the teacher's idiom in
// emiago-sipgo/transport/tcp.go's readConnection -- rather than being
// funneled through a shared per-reactor queue, which would let one slow
// connection park an entire reactor and its other assigned connections
// behind it. The reactor label exists purely for affinity bookkeeping and
// logging: it never gates which goroutine actually does the work.
type IoContextPool struct {
	n    int
	next uint64
	wg   sync.WaitGroup
	log  zerolog.Logger
}

// NewIoContextPool builds a pool labelling connections across n reactors.
// n must be at least 1.
func NewIoContextPool(n int, log zerolog.Logger) *IoContextPool {
	if n < 1 {
		n = 1
	}
	return &IoContextPool{n: n, log: log.With().Str("component", "pool").Logger()}
}

// Run exists for parity with §4.8's run()/stop() lifecycle. There are no
// background workers to start: every dispatched connection supplies its
// own goroutine.
func (p *IoContextPool) Run() {}

// Stop waits for every dispatched connection to finish serving. The pool
// must outlive any connection assigned from it, so callers stop accepting
// new connections before calling Stop.
func (p *IoContextPool) Stop() {
	p.wg.Wait()
}

// Dispatch assigns c the next reactor label, round robin, and starts
// serving it immediately on its own goroutine.
func (p *IoContextPool) Dispatch(c *Connection) {
	c.reactor = p.nextReactor()
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		c.Serve()
	}()
}

func (p *IoContextPool) nextReactor() int {
	i := atomic.AddUint64(&p.next, 1) - 1
	return int(i % uint64(p.n))
}
