// Package instance keeps a second copy of the screensaver from running.
package instance

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"syscall"
	"time"
)

// DefaultAddress is the loopback port used as the process lock.
const DefaultAddress = "127.0.0.1:47613"

// ErrAlreadyRunning is returned when another instance holds the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

// Lock is held for the lifetime of the process. The kernel releases it if
// the process dies.
type Lock struct {
	ln net.Listener
}

// Acquire binds addr. A bind conflict means another instance owns it.
func Acquire(addr string) (*Lock, error) {
	if addr == "" {
		addr = DefaultAddress
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) || answering(addr) {
			return nil, fmt.Errorf("%w (%s)", ErrAlreadyRunning, addr)
		}
		return nil, fmt.Errorf("acquiring instance lock on %s: %w", addr, err)
	}
	slog.Debug("instance_lock", "addr", ln.Addr().String())
	return &Lock{ln: ln}, nil
}

// answering reports whether something accepts connections on addr. Covers
// platforms whose bind errors do not map to EADDRINUSE.
func answering(addr string) bool {
	conn, err := net.DialTimeout("tcp", addr, 200*time.Millisecond)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Addr returns the bound address.
func (l *Lock) Addr() string {
	if l == nil {
		return ""
	}
	return l.ln.Addr().String()
}

// Release frees the lock. Safe on a nil lock.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	return l.ln.Close()
}
