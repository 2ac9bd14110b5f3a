// Package resultlog is the structured-logging collaborator that the core
// tunnel pipeline hands every RequestResult to. It is the concrete
// implementation of the narrow tunnel.ResultSink interface; the core never
// imports zerolog or encoding/json itself.
package resultlog

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/xdg/connectproxy/internal/tunnel"
)

// Sink writes one structured log line per RequestResult, field-oriented in
// the style of a zerolog-based tunnel/proxy request log: each field is
// chained onto the event rather than logging a pre-formatted string.
type Sink struct {
	logger zerolog.Logger
}

// New builds a Sink writing to w. Level controls the minimum level emitted.
// Result records are always logged at info level regardless of outcome, so
// a level above info (warn, error, ...) suppresses every record.
func New(w io.Writer, level zerolog.Level) *Sink {
	logger := zerolog.New(w).With().Timestamp().Logger().Level(level)
	return &Sink{logger: logger}
}

// Record implements tunnel.ResultSink.
func (s *Sink) Record(r tunnel.RequestResult) {
	event := s.logger.Info().
		Str("request_id", r.ID).
		Dur("duration", r.Duration)

	if r.Target != "" {
		event = event.Str("target", r.Target)
	}

	if r.RequestError != nil {
		code, reason := tunnel.StatusLine(r.RequestError)
		event = event.
			Str("tunnel_request_error", r.RequestError.Kind.String()).
			Int("status_code", code).
			Str("status_reason", reason)
		if r.RequestError.Detail != "" {
			event = event.Str("error_detail", r.RequestError.Detail)
		}
	}

	if t := r.Transfer; t != nil {
		event = event.Str("data_transfer_result", t.Outcome.String())
		if t.UpstreamBytes != nil {
			event = event.Int64("upstream_bytes_received", *t.UpstreamBytes)
		}
		if t.DownstreamBytes != nil {
			event = event.Int64("downstream_bytes_sent", *t.DownstreamBytes)
		}
		if t.UpstreamError != "" {
			event = event.Str("upstream_error", t.UpstreamError)
		}
		if t.DownstreamError != "" {
			event = event.Str("downstream_error", t.DownstreamError)
		}
	}

	event.Msg("request result")
}
