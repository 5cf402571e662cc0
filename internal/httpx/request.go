/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package httpx reads and parses the single HTTP request that precedes a
// WebSocket upgrade, and answers plain requests from a static file root.
// It deliberately avoids net/http: requests are capped at a fixed byte
// budget and header names keep their exact case.
package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultMaxRequestBytes bounds how much of a request we are willing to
// buffer before giving up on finding the end of the header block.
const DefaultMaxRequestBytes = 2048

var (
	ErrRequestTooLarge  = errors.New("httpx: request exceeds size budget")
	ErrMalformedRequest = errors.New("httpx: malformed request")
)

var methods = map[string]struct{}{
	"GET": {}, "HEAD": {}, "POST": {}, "PUT": {}, "DELETE": {},
	"CONNECT": {}, "OPTIONS": {}, "TRACE": {}, "PATCH": {},
}

// Request is a parsed request head. Header keys are stored verbatim and
// looked up case-sensitively.
type Request struct {
	Method string
	Target string
	Header map[string]string
}

// ReadRequest reads from r until the header block terminator arrives or
// max bytes have been consumed, whichever comes first. Reads never
// exceed max bytes total. Bytes read past the terminator are returned
// as rest so the caller can replay them.
func ReadRequest(r io.Reader, max int) (head, rest []byte, err error) {
	buf := make([]byte, 0, max)
	chunk := make([]byte, 256)

	for {
		limit := min(len(chunk), max-len(buf))
		n, err := r.Read(chunk[:limit])
		buf = append(buf, chunk[:n]...)

		if i := bytes.Index(buf, []byte("\r\n\r\n")); i >= 0 {
			return buf[:i+4], buf[i+4:], nil
		}
		if len(buf) >= max {
			return nil, nil, ErrRequestTooLarge
		}
		if err != nil {
			return nil, nil, fmt.Errorf("httpx: reading request: %w", err)
		}
	}
}

// ParseRequest parses a complete request head.
func ParseRequest(raw []byte) (*Request, error) {
	head, _, found := strings.Cut(string(raw), "\r\n\r\n")
	if !found {
		return nil, fmt.Errorf("%w: missing header terminator", ErrMalformedRequest)
	}

	lines := strings.Split(head, "\r\n")

	parts := strings.Split(lines[0], " ")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: bad request line %q", ErrMalformedRequest, lines[0])
	}
	if _, ok := methods[parts[0]]; !ok {
		return nil, fmt.Errorf("%w: unknown method %q", ErrMalformedRequest, parts[0])
	}
	if !strings.HasPrefix(parts[2], "HTTP/") {
		return nil, fmt.Errorf("%w: bad version %q", ErrMalformedRequest, parts[2])
	}

	req := &Request{
		Method: parts[0],
		Target: parts[1],
		Header: make(map[string]string, len(lines)-1),
	}

	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: bad header line %q", ErrMalformedRequest, line)
		}
		req.Header[name] = strings.Trim(value, " \t")
	}

	return req, nil
}
