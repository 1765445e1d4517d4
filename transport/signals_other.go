//go:build !unix

package transport

import (
	"os"
	"syscall"
)

func terminatingSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT}
}
