/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package ws

import (
	"io"
	"sync"
)

// Writer sends messages as single final unmasked frames. The mutex covers
// the whole write so frames from concurrent senders never interleave;
// tenant callbacks and the reader's auto-PONG share one Writer per peer.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteText sends s as one TEXT frame.
func (w *Writer) WriteText(s string) error {
	return w.writeFrame(Text, []byte(s))
}

// WriteBinary sends p as one BINARY frame.
func (w *Writer) WriteBinary(p []byte) error {
	return w.writeFrame(Binary, p)
}

// WritePong answers a PING, echoing its payload.
func (w *Writer) WritePong(p []byte) error {
	return w.writeFrame(Pong, p)
}

func (w *Writer) writeFrame(kind FrameKind, payload []byte) error {
	frame := Frame{Final: true, Kind: kind, Payload: payload}

	w.mu.Lock()
	defer w.mu.Unlock()

	_, err := w.w.Write(frame.Encode())

	return err
}
