/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package gate owns the TCP listener: it performs the WebSocket
// handshake, routes each connection to the tenant registered for its
// request path, and drives tenant callbacks under a per-tenant lock.
package gate

import (
	"errors"
	"strconv"

	"github.com/Seednode/arcade/internal/ws"
)

// PeerID identifies a connection for its lifetime. IDs come from one
// process-wide counter, so they are unique across tenants and never
// reused; they carry no ordering meaning between tenants.
type PeerID uint64

func (id PeerID) String() string {
	return "peer#" + strconv.FormatUint(uint64(id), 10)
}

// ErrDisconnect is the conventional non-nil return for OnMessage when a
// tenant wants the peer dropped without logging a failure.
var ErrDisconnect = errors.New("gate: tenant closed connection")

// Tenant is one application living at one path. The server holds the
// tenant's lock across every callback, so implementations never see two
// callbacks at once and need no locking of their own. The writer handed
// to OnConnect stays valid until OnDisconnect returns.
type Tenant interface {
	OnConnect(id PeerID, w *ws.Writer)

	// OnMessage handles one complete data message. A non-nil error
	// drops the peer; OnDisconnect still follows.
	OnMessage(id PeerID, msg ws.Message) error

	OnDisconnect(id PeerID)

	// OnTick runs on the shared periodic driver.
	OnTick()
}
