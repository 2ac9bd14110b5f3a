package tunnel

import (
	"context"
	"errors"
	"net"
	"time"
)

// admissionStatusInterval is how often the Accept Loop reports free/total
// permits. It is a fixed constant rather than a config field because it is
// purely an observability cadence, not a correctness knob.
const admissionStatusInterval = 10 * time.Second

// Server owns the Accept Loop and wires together the Admission Controller,
// Tunnel Builder, Duplex Relay, and Result Assembler for every accepted
// connection.
type Server struct {
	cfg       *Config
	dialer    Dialer
	ids       IDGenerator
	admission *Admission
	sink      ResultSink
	log       Logger
}

// NewServer builds a Server ready to Serve. ids and log may be nil, in
// which case a UUIDGenerator and a no-op Logger are used.
func NewServer(cfg *Config, dialer Dialer, ids IDGenerator, sink ResultSink, log Logger) *Server {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if log == nil {
		log = NopLogger{}
	}
	return &Server{
		cfg:       cfg,
		dialer:    dialer,
		ids:       ids,
		admission: NewAdmission(cfg.MaxOpenConnections),
		sink:      sink,
		log:       log,
	}
}

// Admission exposes the permit pool so callers can wire a StatusReporter.
func (s *Server) Admission() *Admission { return s.admission }

// Serve runs the Accept Loop until ctx is cancelled. Accept errors are
// logged, the permit is released, and the loop continues; Serve does not
// return on them. It acquires one admission permit before every Accept
// call, converting surplus connection attempts into backpressure on the
// listening socket rather than unbounded goroutine growth.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go s.admission.ReportStatus(ctx, admissionStatusInterval, adminLogReporter{s.log})

	for {
		if err := s.admission.Acquire(ctx); err != nil {
			return err
		}

		conn, err := ln.Accept()
		if err != nil {
			s.admission.Release()
			if ctx.Err() != nil {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				s.log.Warnf("", "accept: %v", err)
				continue
			}
			s.log.Errorf("", "accept: %v", err)
			continue
		}

		go s.handleConnection(ctx, conn)
	}
}

// handleConnection is the Result Assembler: it times the whole connection
// lifecycle and guarantees exactly one RequestResult is recorded, on every
// code path including a panic recovered from Establish or Relay.
func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer s.admission.Release()
	defer conn.Close()

	start := time.Now()
	id := s.ids.NewID()

	result := RequestResult{ID: id}
	defer func() {
		if r := recover(); r != nil {
			result.RequestError = newErr(ErrInternalError, "panic")
			result.Transfer = nil
		}
		result.Duration = time.Since(start)
		s.sink.Record(result)
	}()

	relayClient, targetConn, target, rerr := Establish(ctx, conn, s.cfg, s.dialer, id, s.log)
	result.Target = target
	if rerr != nil {
		result.RequestError = rerr
		return
	}
	defer targetConn.Close()

	summary := Relay(ctx, relayClient, targetConn, s.cfg.TunnelTTL)
	result.Transfer = &summary
}

// adminLogReporter adapts a Logger into a StatusReporter.
type adminLogReporter struct{ log Logger }

func (r adminLogReporter) ReportAdmissionStatus(used, total int64) {
	r.log.Infof("", "admission status: %d free, %d in use, %d total", total-used, used, total)
}
