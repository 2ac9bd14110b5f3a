// Package audit provides a plain-text, grep-friendly event log for the
// proxy's per-connection pipeline, independent of the structured JSON
// result records written by internal/resultlog. It implements
// tunnel.Logger so the core pipeline can emit it without importing it: the
// tunnel package calls Infof/Warnf/Errorf and audit renders each call as a
// single key=value log line.
package audit

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// EventType represents the severity of an audit log entry.
type EventType string

// Event severities, one per tunnel.Logger method.
const (
	EventInfo  EventType = "INFO"
	EventWarn  EventType = "WARN"
	EventError EventType = "ERROR"
)

// Event represents one audit log entry for a single connection.
type Event struct {
	// Timestamp is when the event occurred.
	Timestamp time.Time

	// Type is the event severity (INFO, WARN, ERROR).
	Type EventType

	// RequestID correlates the event with the connection's RequestResult.
	// Empty for events not tied to one connection, such as Accept Loop
	// errors and admission status reports.
	RequestID string

	// Message is the already-formatted log message.
	Message string
}

// Format returns the log entry as a formatted string.
// Format: 2024-01-15T14:32:05Z CONNECTPROXY INFO id=3f9e... msg="dial example.com:443 failed: timeout"
func (e *Event) Format() string {
	var b strings.Builder

	b.WriteString(e.Timestamp.UTC().Format(time.RFC3339))
	b.WriteString(" CONNECTPROXY ")
	b.WriteString(string(e.Type))

	if e.RequestID != "" {
		b.WriteString(" id=")
		b.WriteString(e.RequestID)
	}

	b.WriteString(" msg=")
	b.WriteString(quoteValue(e.Message))

	return b.String()
}

// quoteValue returns a quoted string value.
// Values are always quoted for consistency and to handle spaces/special chars.
func quoteValue(s string) string {
	return fmt.Sprintf("%q", s)
}

// Logger writes audit events to an io.Writer. It implements tunnel.Logger,
// so a *Logger can be passed directly to tunnel.NewServer as the pipeline's
// logging collaborator.
type Logger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLogger creates a new audit logger that writes to the given writer.
func NewLogger(w io.Writer) *Logger {
	return &Logger{w: w}
}

// Log writes an event to the audit log.
func (l *Logger) Log(e *Event) error {
	if l == nil || l.w == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	line := e.Format() + "\n"
	_, err := l.w.Write([]byte(line))
	return err
}

// Infof implements tunnel.Logger.
func (l *Logger) Infof(id, format string, args ...any) {
	_ = l.Log(&Event{Timestamp: time.Now(), Type: EventInfo, RequestID: id, Message: fmt.Sprintf(format, args...)})
}

// Warnf implements tunnel.Logger.
func (l *Logger) Warnf(id, format string, args ...any) {
	_ = l.Log(&Event{Timestamp: time.Now(), Type: EventWarn, RequestID: id, Message: fmt.Sprintf(format, args...)})
}

// Errorf implements tunnel.Logger.
func (l *Logger) Errorf(id, format string, args ...any) {
	_ = l.Log(&Event{Timestamp: time.Now(), Type: EventError, RequestID: id, Message: fmt.Sprintf(format, args...)})
}
