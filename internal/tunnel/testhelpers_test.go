package tunnel

import (
	"context"
	"errors"
	"net"
	"time"
)

// fakeDialer is the in-memory Dialer substitute used throughout the
// package's tests, so upstream behavior can be scripted without hitting
// real sockets.
type fakeDialer struct {
	conn  net.Conn
	err   error
	delay time.Duration
}

func (f *fakeDialer) Dial(ctx context.Context, target string) (net.Conn, error) {
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.conn, nil
}

// plainError is a non-net.Error error used to exercise the "any other
// dial error maps to BadGateway" branch.
type plainError struct{ msg string }

func (e *plainError) Error() string { return e.msg }

// recordingSink collects every RequestResult handed to it.
type recordingSink struct {
	results chan RequestResult
}

func newRecordingSink() *recordingSink {
	return &recordingSink{results: make(chan RequestResult, 16)}
}

func (s *recordingSink) Record(r RequestResult) {
	s.results <- r
}

func (s *recordingSink) wait(timeout time.Duration) (RequestResult, error) {
	select {
	case r := <-s.results:
		return r, nil
	case <-time.After(timeout):
		return RequestResult{}, errors.New("timed out waiting for result")
	}
}

func testConfig() *Config {
	return &Config{
		HandshakeStepTimeout: 200 * time.Millisecond,
		TunnelTTL:            500 * time.Millisecond,
		MaxRequestBytes:      2048,
		MaxOpenConnections:   10,
	}
}
