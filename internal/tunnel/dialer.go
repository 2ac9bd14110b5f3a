package tunnel

import (
	"context"
	"net"
)

// Dialer is the pluggable capability the Tunnel Builder uses to reach a
// target. Production code uses TCPDialer; tests substitute an in-memory
// fake so the builder and relay can be exercised without real sockets.
type Dialer interface {
	Dial(ctx context.Context, target string) (net.Conn, error)
}

// TCPDialer dials targets as literal "host:port" TCP addresses, performing
// no interpretation or rewriting of the target string.
type TCPDialer struct{}

func (TCPDialer) Dial(ctx context.Context, target string) (net.Conn, error) {
	var d net.Dialer
	return d.DialContext(ctx, "tcp", target)
}
