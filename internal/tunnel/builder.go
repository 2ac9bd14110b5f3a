package tunnel

import (
	"context"
	"errors"
	"net"
	"os"
	"time"
)

// Logger is the narrow logging capability the builder and relay use to
// report errors with a request identifier, independent of how operational
// logs are eventually written (see internal/clog and internal/resultlog).
type Logger interface {
	Infof(id, format string, args ...any)
	Warnf(id, format string, args ...any)
	Errorf(id, format string, args ...any)
}

// NopLogger discards everything; useful in tests.
type NopLogger struct{}

func (NopLogger) Infof(string, string, ...any)  {}
func (NopLogger) Warnf(string, string, ...any)  {}
func (NopLogger) Errorf(string, string, ...any) {}

// Establish runs the AwaitRequest -> PolicyCheck -> Dialing -> SendResponse
// state machine for one accepted connection. On success it returns a
// client-side net.Conn ready for the relay (with any bytes buffered past
// the request head re-merged as its read prefix) and the dialed target
// connection. On failure relayClient and targetConn are nil and rerr
// describes the terminal error; a best-effort status response has already
// been written to client when the stream was still usable.
func Establish(ctx context.Context, client net.Conn, cfg *Config, dialer Dialer, id string, log Logger) (relayClient net.Conn, targetConn net.Conn, target string, rerr *RequestError) {
	if log == nil {
		log = NopLogger{}
	}

	target, leftover, derr := awaitRequest(client, cfg.MaxRequestBytes, cfg.HandshakeStepTimeout)
	if derr != nil {
		log.Warnf(id, "decode failed: %v", derr)
		respondBestEffort(client, derr, cfg.HandshakeStepTimeout)
		return nil, nil, target, derr
	}

	if !cfg.Policy.Permits(target) {
		rerr = newErr(ErrForbidden, "")
		respondBestEffort(client, rerr, cfg.HandshakeStepTimeout)
		return nil, nil, target, rerr
	}

	dialCtx, cancel := context.WithTimeout(ctx, cfg.HandshakeStepTimeout)
	tconn, dialErr := dialer.Dial(dialCtx, target)
	cancel()
	if dialErr != nil {
		if errors.Is(dialErr, context.DeadlineExceeded) || isTimeoutErr(dialErr) {
			rerr = newErr(ErrGatewayTimeout, dialErr.Error())
		} else {
			rerr = newErr(ErrBadGateway, dialErr.Error())
		}
		log.Warnf(id, "dial %q failed: %v", target, dialErr)
		respondBestEffort(client, rerr, cfg.HandshakeStepTimeout)
		return nil, nil, target, rerr
	}

	client.SetWriteDeadline(time.Now().Add(cfg.HandshakeStepTimeout))
	if _, werr := client.Write(Encode(nil)); werr != nil {
		tconn.Close()
		if errors.Is(werr, os.ErrDeadlineExceeded) || isTimeoutErr(werr) {
			rerr = newErr(ErrRequestTimeout, werr.Error())
		} else {
			rerr = newErr(ErrBadGateway, werr.Error())
		}
		log.Warnf(id, "writing success response failed: %v", werr)
		return nil, nil, target, rerr
	}
	client.SetWriteDeadline(time.Time{})

	return reunite(client, leftover), tconn, target, nil
}

// awaitRequest reads and decodes a CONNECT request line from client,
// bounded by stepTimeout. It returns the target, any bytes buffered past
// the request head, and a non-nil error on any failure (decode validation,
// timeout, or the connection closing before framing completed).
func awaitRequest(client net.Conn, maxRequestBytes int, stepTimeout time.Duration) (target string, leftover []byte, rerr *RequestError) {
	deadline := time.Now().Add(stepTimeout)
	client.SetReadDeadline(deadline)

	buf := make([]byte, 0, 512)
	tmp := make([]byte, 4096)
	for {
		res, complete := Decode(buf, maxRequestBytes)
		if complete {
			if res.Err != nil {
				return "", nil, res.Err
			}
			return res.Target, buf[res.Consumed:], nil
		}

		n, err := client.Read(tmp)
		if n > 0 {
			buf = append(buf, tmp[:n]...)
		}
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				return "", nil, newErr(ErrRequestTimeout, "")
			}
			return "", nil, newErr(ErrBadRequest, "")
		}
	}
}

// respondBestEffort writes the status line for rerr, ignoring any write
// failure: the stream may already be unusable, and the error is already
// being reported in the RequestResult.
func respondBestEffort(client net.Conn, rerr *RequestError, timeout time.Duration) {
	client.SetWriteDeadline(time.Now().Add(timeout))
	client.Write(Encode(rerr))
	client.SetWriteDeadline(time.Time{})
}

func isTimeoutErr(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}

// prefixConn wraps a net.Conn whose read side must first replay a buffered
// prefix before resuming reads from the underlying connection. It realizes
// the design's "prefix-then-socket adapter" for re-merging bytes the codec
// buffered past the CONNECT request head.
type prefixConn struct {
	net.Conn
	prefix []byte
}

func reunite(conn net.Conn, leftover []byte) net.Conn {
	if len(leftover) == 0 {
		return conn
	}
	cp := make([]byte, len(leftover))
	copy(cp, leftover)
	return &prefixConn{Conn: conn, prefix: cp}
}

func (c *prefixConn) Read(p []byte) (int, error) {
	if len(c.prefix) > 0 {
		n := copy(p, c.prefix)
		c.prefix = c.prefix[n:]
		return n, nil
	}
	return c.Conn.Read(p)
}

// CloseWrite forwards half-close to the underlying connection when it
// supports it, so the relay's end-of-downstream signal still reaches a TCP
// client even through the prefix adapter.
func (c *prefixConn) CloseWrite() error {
	if cw, ok := c.Conn.(interface{ CloseWrite() error }); ok {
		return cw.CloseWrite()
	}
	return nil
}
