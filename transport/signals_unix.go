//go:build unix

package transport

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// terminatingSignals includes SIGHUP on platforms that define it (§4.9).
func terminatingSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, unix.SIGHUP}
}
