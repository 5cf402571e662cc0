/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package secure is the honeypot tenant: whatever a peer types gets
// appended to a log, and nothing ever comes back.
package secure

import (
	"fmt"
	"os"
	"time"

	"github.com/Seednode/arcade/internal/gate"
	"github.com/Seednode/arcade/internal/ws"
)

const logDate string = "2006-01-02T15:04:05.000-07:00"

type Tenant struct {
	log *os.File
	now func() time.Time
}

type Option func(*Tenant)

func WithClock(now func() time.Time) Option {
	return func(t *Tenant) { t.now = now }
}

func New(path string, opts ...Option) (*Tenant, error) {
	log, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	t := &Tenant{
		log: log,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func (t *Tenant) OnConnect(id gate.PeerID, w *ws.Writer) {}

func (t *Tenant) OnMessage(id gate.PeerID, msg ws.Message) error {
	if text, ok := msg.Text(); ok {
		_, _ = fmt.Fprintf(t.log, "%s | %s | %s\n", t.now().Format(logDate), id, text)
	}

	return nil
}

func (t *Tenant) OnDisconnect(id gate.PeerID) {}

func (t *Tenant) OnTick() {}

// Close releases the log file. Only tests bother.
func (t *Tenant) Close() error {
	return t.log.Close()
}
