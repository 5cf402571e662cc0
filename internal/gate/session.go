/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package gate

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"net"

	"github.com/Seednode/arcade/internal/httpx"
	"github.com/Seednode/arcade/internal/ws"
)

// handle owns one connection from accept to close: bounded request
// read, upgrade-or-static decision, then the message loop.
func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	head, rest, err := httpx.ReadRequest(conn, s.maxRequest)
	if err != nil {
		s.logf("GATE: Dropping %s: %v", conn.RemoteAddr(), err)
		return
	}

	req, err := httpx.ParseRequest(head)
	if err != nil {
		s.logf("GATE: Dropping %s: %v", conn.RemoteAddr(), err)
		return
	}

	key, ok := req.Header["Sec-WebSocket-Key"]
	if !ok {
		if err := httpx.ServeFile(conn, req.Target, s.staticRoot); err != nil {
			s.logf("GATE: Static response to %s failed: %v", conn.RemoteAddr(), err)
		}
		return
	}

	if _, err := io.WriteString(conn, upgradeResponse(key)); err != nil {
		return
	}

	reg := s.find(req.Target)
	if reg == nil {
		s.logf("GATE: No tenant at %q for %s", req.Target, conn.RemoteAddr())
		return
	}

	id := PeerID(s.nextPeer.Add(1))
	s.logf("GATE: %s joined %q as %s", conn.RemoteAddr(), req.Target, id)

	s.session(reg, id, conn, rest)

	s.logf("GATE: %s left %q", id, req.Target)
}

// session runs the message loop. The tenant lock is taken per callback,
// never across reads, so one slow peer cannot starve the tenant.
func (s *Server) session(reg *registration, id PeerID, conn net.Conn, rest []byte) {
	writer := ws.NewWriter(conn)
	reader := ws.NewReader(io.MultiReader(bytes.NewReader(rest), bufio.NewReader(conn)), writer)

	reg.with(func(t Tenant) { t.OnConnect(id, writer) })
	defer reg.with(func(t Tenant) { t.OnDisconnect(id) })

	for {
		msg, err := reader.Next()
		if err != nil {
			if !errors.Is(err, ws.ErrClosed) && !errors.Is(err, io.EOF) {
				s.logf("GATE: Read from %s failed: %v", id, err)
			}
			return
		}

		var verdict error
		reg.with(func(t Tenant) { verdict = t.OnMessage(id, msg) })
		if verdict != nil {
			if !errors.Is(verdict, ErrDisconnect) {
				s.logf("GATE: %s dropped: %v", id, verdict)
			}
			return
		}
	}
}
