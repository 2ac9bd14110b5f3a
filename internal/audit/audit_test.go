package audit

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// Fixed timestamp for deterministic testing
var testTime = time.Date(2024, 1, 15, 14, 32, 5, 0, time.UTC)

func TestEventFormat_Info(t *testing.T) {
	e := &Event{
		Timestamp: testTime,
		Type:      EventInfo,
		RequestID: "3f9e1a",
		Message:   "admission status: 4/10 permits in use",
	}

	got := e.Format()
	want := `2024-01-15T14:32:05Z CONNECTPROXY INFO id=3f9e1a msg="admission status: 4/10 permits in use"`

	if got != want {
		t.Errorf("Format() =\n  got:  %q\n  want: %q", got, want)
	}
}

func TestEventFormat_Warn(t *testing.T) {
	e := &Event{
		Timestamp: testTime,
		Type:      EventWarn,
		RequestID: "3f9e1a",
		Message:   `dial "evil.example:443" failed: timeout`,
	}

	got := e.Format()
	want := `2024-01-15T14:32:05Z CONNECTPROXY WARN id=3f9e1a msg="dial \"evil.example:443\" failed: timeout"`

	if got != want {
		t.Errorf("Format() =\n  got:  %q\n  want: %q", got, want)
	}
}

func TestEventFormat_Error(t *testing.T) {
	e := &Event{
		Timestamp: testTime,
		Type:      EventError,
		RequestID: "",
		Message:   "accept: use of closed network connection",
	}

	got := e.Format()
	want := `2024-01-15T14:32:05Z CONNECTPROXY ERROR msg="accept: use of closed network connection"`

	if got != want {
		t.Errorf("Format() =\n  got:  %q\n  want: %q", got, want)
	}
}

func TestEventFormat_NoRequestID(t *testing.T) {
	e := &Event{Timestamp: testTime, Type: EventInfo, Message: "hello"}
	got := e.Format()
	if strings.Contains(got, "id=") {
		t.Errorf("Format() with empty RequestID should omit id= field, got: %q", got)
	}
}

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	err := l.Log(&Event{Timestamp: testTime, Type: EventInfo, RequestID: "abc", Message: "hello"})
	if err != nil {
		t.Fatalf("Log() returned error: %v", err)
	}

	got := buf.String()
	want := `2024-01-15T14:32:05Z CONNECTPROXY INFO id=abc msg="hello"` + "\n"
	if got != want {
		t.Errorf("Log() wrote =\n  got:  %q\n  want: %q", got, want)
	}
}

func TestLogger_NilWriter(t *testing.T) {
	l := NewLogger(nil)
	if err := l.Log(&Event{Timestamp: testTime, Type: EventInfo, Message: "hello"}); err != nil {
		t.Errorf("Log() with nil writer should be a no-op, got error: %v", err)
	}
}

func TestLogger_NilLogger(t *testing.T) {
	var l *Logger
	if err := l.Log(&Event{Timestamp: testTime, Type: EventInfo, Message: "hello"}); err != nil {
		t.Errorf("Log() on nil *Logger should be a no-op, got error: %v", err)
	}
}

func TestLogger_Infof(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Infof("req-1", "dial %s succeeded", "example.com:443")

	got := buf.String()
	if !strings.Contains(got, "CONNECTPROXY INFO") {
		t.Errorf("Infof() should log at INFO severity, got: %q", got)
	}
	if !strings.Contains(got, "id=req-1") {
		t.Errorf("Infof() should include the request id, got: %q", got)
	}
	if !strings.Contains(got, `msg="dial example.com:443 succeeded"`) {
		t.Errorf("Infof() should format the message, got: %q", got)
	}
}

func TestLogger_Warnf(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Warnf("req-2", "decode failed: %v", "parse error")

	got := buf.String()
	if !strings.Contains(got, "CONNECTPROXY WARN") {
		t.Errorf("Warnf() should log at WARN severity, got: %q", got)
	}
}

func TestLogger_Errorf(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Errorf("req-3", "panic recovered: %v", "nil pointer")

	got := buf.String()
	if !strings.Contains(got, "CONNECTPROXY ERROR") {
		t.Errorf("Errorf() should log at ERROR severity, got: %q", got)
	}
}

func TestLogger_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func(n int) {
			l.Infof("req", "event %d", n)
			done <- struct{}{}
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 10 {
		t.Errorf("expected 10 log lines from concurrent writers, got %d", len(lines))
	}
}
