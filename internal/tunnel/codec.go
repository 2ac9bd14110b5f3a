package tunnel

import (
	"bytes"
	"fmt"
	"strings"
)

// headerTerminator marks the end of the CONNECT request head. Headers
// themselves are never parsed; only their presence is needed to know where
// the request line's framing ends.
var headerTerminator = []byte("\r\n\r\n")

// DecodeResult is the outcome of one Decode call.
type DecodeResult struct {
	// Target is the raw request-target token from the CONNECT line, set
	// only when Err is nil.
	Target string
	// Err is the validation failure for a framed-but-invalid request. Nil
	// on success.
	Err *RequestError
	// Consumed is the number of leading bytes of the input buffer that
	// belong to the request head. Bytes after this offset were buffered
	// incidentally (pipelined by the client) and must be replayed to
	// whatever reads the connection next.
	Consumed int
}

// Decode scans buf for a complete CONNECT request line terminated by a
// blank line, validating method, size, and version in that order. It
// returns complete=false when buf does not yet contain
// the terminator; callers must keep reading and re-decoding the growing
// buffer. Size is checked against the full buffer length at the moment
// framing completes, matching the original decoder's behavior of checking
// whatever has accumulated in the read buffer by then.
func Decode(buf []byte, maxRequestBytes int) (res DecodeResult, complete bool) {
	idx := bytes.Index(buf, headerTerminator)
	if idx < 0 {
		return DecodeResult{}, false
	}
	headEnd := idx + len(headerTerminator)

	line := buf[:idx]
	if nl := bytes.IndexByte(line, '\n'); nl >= 0 {
		line = line[:nl]
		line = bytes.TrimSuffix(line, []byte("\r"))
	}

	fields := strings.Fields(string(line))
	if len(fields) != 3 {
		return DecodeResult{Err: newErr(ErrParseError, string(line)), Consumed: headEnd}, true
	}
	method, target, version := fields[0], fields[1], fields[2]

	// Validation order matters: method before size before version, so an
	// obviously-wrong method is never masked by an oversized buffer.
	if method != "CONNECT" {
		return DecodeResult{Err: newErr(ErrMethodNotAllowed, method), Consumed: headEnd}, true
	}

	if len(buf) > maxRequestBytes {
		return DecodeResult{Err: newErr(ErrRequestTooLarge, fmt.Sprintf("%d bytes", len(buf))), Consumed: headEnd}, true
	}

	if !isSupportedVersion(version) {
		return DecodeResult{Err: newErr(ErrVersionNotSupported, version), Consumed: headEnd}, true
	}

	return DecodeResult{Target: target, Consumed: headEnd}, true
}

func isSupportedVersion(v string) bool {
	return v == "HTTP/1.1"
}

// Encode renders the handshake response line for err (nil meaning success).
func Encode(err *RequestError) []byte {
	code, reason := StatusLine(err)
	return []byte(fmt.Sprintf("HTTP/1.1 %d %s\r\n\r\n", code, reason))
}
