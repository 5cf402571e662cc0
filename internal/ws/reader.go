/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package ws

import (
	"io"
)

// Message is a complete data message, reassembled from one or more frames.
type Message struct {
	Kind    FrameKind // Text or Binary
	Payload []byte
}

// Text returns the payload as a string and whether the message was TEXT.
func (m Message) Text() (string, bool) {
	if m.Kind != Text {
		return "", false
	}
	return string(m.Payload), true
}

// Reader assembles messages from a frame stream. PINGs are answered
// through the shared writer as they arrive, PONGs are dropped, and CLOSE
// ends the stream with ErrClosed.
type Reader struct {
	r io.Reader
	w *Writer
}

func NewReader(r io.Reader, w *Writer) *Reader {
	return &Reader{r: r, w: w}
}

// Next blocks until a full TEXT or BINARY message has arrived. Fragmented
// messages are coalesced: the first data frame fixes the kind, CONTINUE
// frames append, and a set FIN bit completes the message. Control frames
// may interleave with fragments.
func (r *Reader) Next() (Message, error) {
	var (
		started bool
		msg     Message
	)

	for {
		frame, err := ReadFrame(r.r)
		if err != nil {
			return Message{}, err
		}

		switch frame.Kind {
		case Ping:
			if err := r.w.WritePong(frame.Payload); err != nil {
				return Message{}, err
			}
			continue
		case Pong:
			continue
		case Close:
			return Message{}, ErrClosed
		case Continue:
			if !started {
				return Message{}, ErrUnexpectedContinue
			}
			msg.Payload = append(msg.Payload, frame.Payload...)
		case Text, Binary:
			if !started {
				started = true
				msg.Kind = frame.Kind
			}
			msg.Payload = append(msg.Payload, frame.Payload...)
		}

		if frame.Final {
			return msg, nil
		}
	}
}
