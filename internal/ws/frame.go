/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package ws implements the subset of RFC 6455 the game server speaks:
// frame encoding and decoding, message assembly with auto-PONG, and a
// mutex-guarded writer that emits single unfragmented frames.
package ws

import (
	"encoding/binary"
	"errors"
	"io"
)

// FrameKind is a frame opcode.
type FrameKind byte

const (
	Continue FrameKind = 0x0
	Text     FrameKind = 0x1
	Binary   FrameKind = 0x2
	Close    FrameKind = 0x8
	Ping     FrameKind = 0x9
	Pong     FrameKind = 0xA
)

func (k FrameKind) valid() bool {
	switch k {
	case Continue, Text, Binary, Close, Ping, Pong:
		return true
	}
	return false
}

func (k FrameKind) String() string {
	switch k {
	case Continue:
		return "CONTINUE"
	case Text:
		return "TEXT"
	case Binary:
		return "BINARY"
	case Close:
		return "CLOSE"
	case Ping:
		return "PING"
	case Pong:
		return "PONG"
	}
	return "INVALID"
}

var (
	// ErrInvalidOpcode is returned for opcodes outside the six we handle.
	// It is fatal: the stream can no longer be framed.
	ErrInvalidOpcode = errors.New("ws: invalid opcode")

	// ErrClosed is returned by Reader.Next when the peer sends CLOSE.
	ErrClosed = errors.New("ws: connection closed by peer")

	// ErrUnexpectedContinue is returned when a CONTINUE frame arrives
	// with no message in progress.
	ErrUnexpectedContinue = errors.New("ws: continuation frame without a message")
)

// Retryable reports whether a decode error means the input was merely
// incomplete, as opposed to unframeable.
func Retryable(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF)
}

// Frame is a single wire frame. MaskKey is nil for server frames; tests
// set it to synthesize masked client traffic.
type Frame struct {
	Final   bool
	Kind    FrameKind
	MaskKey *[4]byte
	Payload []byte
}

// ReadFrame decodes one frame from r. The payload is unmasked in place
// when the mask bit is set. Truncated input surfaces as
// io.ErrUnexpectedEOF so callers can distinguish it from protocol errors.
func ReadFrame(r io.Reader) (Frame, error) {
	var hdr [2]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Frame{}, err
	}

	kind := FrameKind(hdr[0] & 0x0f)
	if !kind.valid() {
		return Frame{}, ErrInvalidOpcode
	}

	frame := Frame{
		Final: hdr[0]&0x80 != 0,
		Kind:  kind,
	}

	length := uint64(hdr[1] & 0x7f)
	switch length {
	case 126:
		var ext [2]byte
		if _, err := io.ReadFull(r, ext[:]); err != nil {
			return Frame{}, short(err)
		}
		length = uint64(binary.BigEndian.Uint16(ext[:]))
	case 127:
		var ext [8]byte
		if _, err := io.ReadFull(r, ext[:]); err != nil {
			return Frame{}, short(err)
		}
		length = binary.BigEndian.Uint64(ext[:])
	}

	if hdr[1]&0x80 != 0 {
		var key [4]byte
		if _, err := io.ReadFull(r, key[:]); err != nil {
			return Frame{}, short(err)
		}
		frame.MaskKey = &key
	}

	frame.Payload = make([]byte, length)
	if _, err := io.ReadFull(r, frame.Payload); err != nil {
		return Frame{}, short(err)
	}

	if frame.MaskKey != nil {
		mask(frame.Payload, *frame.MaskKey)
	}

	return frame, nil
}

// Encode serializes the frame, choosing the shortest length descriptor.
// When MaskKey is set the mask bit is set and the payload is masked in
// the output; the Payload slice itself is left untouched.
func (f Frame) Encode() []byte {
	buf := make([]byte, 0, 14+len(f.Payload))

	b0 := byte(f.Kind)
	if f.Final {
		b0 |= 0x80
	}
	buf = append(buf, b0)

	var maskBit byte
	if f.MaskKey != nil {
		maskBit = 0x80
	}

	switch n := len(f.Payload); {
	case n <= 125:
		buf = append(buf, maskBit|byte(n))
	case n <= 0xffff:
		buf = append(buf, maskBit|126)
		buf = binary.BigEndian.AppendUint16(buf, uint16(n))
	default:
		buf = append(buf, maskBit|127)
		buf = binary.BigEndian.AppendUint64(buf, uint64(n))
	}

	if f.MaskKey == nil {
		return append(buf, f.Payload...)
	}

	buf = append(buf, f.MaskKey[:]...)
	start := len(buf)
	buf = append(buf, f.Payload...)
	mask(buf[start:], *f.MaskKey)

	return buf
}

func mask(payload []byte, key [4]byte) {
	for i := range payload {
		payload[i] ^= key[i%4]
	}
}

func short(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
