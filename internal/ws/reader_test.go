package ws

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wire(frames ...Frame) *bytes.Buffer {
	var buf bytes.Buffer
	for _, f := range frames {
		buf.Write(f.Encode())
	}
	return &buf
}

func TestReaderSingleFrameMessage(t *testing.T) {
	var out bytes.Buffer
	r := NewReader(wire(Frame{Final: true, Kind: Text, Payload: []byte("hi")}), NewWriter(&out))

	msg, err := r.Next()
	require.NoError(t, err)

	text, ok := msg.Text()
	require.True(t, ok)
	assert.Equal(t, "hi", text)
}

func TestReaderCoalescesFragments(t *testing.T) {
	var out bytes.Buffer
	r := NewReader(wire(
		Frame{Final: false, Kind: Text, Payload: []byte("one ")},
		Frame{Final: false, Kind: Continue, Payload: []byte("two ")},
		Frame{Final: true, Kind: Continue, Payload: []byte("three")},
	), NewWriter(&out))

	msg, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, Text, msg.Kind)
	assert.Equal(t, "one two three", string(msg.Payload))
}

func TestReaderFirstFrameFixesKind(t *testing.T) {
	var out bytes.Buffer
	r := NewReader(wire(
		Frame{Final: false, Kind: Text, Payload: []byte("he")},
		Frame{Final: true, Kind: Binary, Payload: []byte("llo")},
	), NewWriter(&out))

	msg, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, Text, msg.Kind)
	assert.Equal(t, "hello", string(msg.Payload))
}

func TestReaderAnswersPingMidMessage(t *testing.T) {
	var out bytes.Buffer
	r := NewReader(wire(
		Frame{Final: false, Kind: Binary, Payload: []byte{1, 2}},
		Frame{Final: true, Kind: Ping, Payload: []byte("beat")},
		Frame{Final: true, Kind: Continue, Payload: []byte{3}},
	), NewWriter(&out))

	msg, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, Binary, msg.Kind)
	assert.Equal(t, []byte{1, 2, 3}, msg.Payload)

	pong, err := ReadFrame(&out)
	require.NoError(t, err)
	assert.Equal(t, Pong, pong.Kind)
	assert.Equal(t, []byte("beat"), pong.Payload)
	assert.True(t, pong.Final)
	assert.Nil(t, pong.MaskKey)
}

func TestReaderIgnoresPong(t *testing.T) {
	var out bytes.Buffer
	r := NewReader(wire(
		Frame{Final: true, Kind: Pong, Payload: []byte("late")},
		Frame{Final: true, Kind: Text, Payload: []byte("real")},
	), NewWriter(&out))

	msg, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "real", string(msg.Payload))
	assert.Zero(t, out.Len())
}

func TestReaderClose(t *testing.T) {
	var out bytes.Buffer
	r := NewReader(wire(Frame{Final: true, Kind: Close}), NewWriter(&out))

	_, err := r.Next()
	require.ErrorIs(t, err, ErrClosed)
}

func TestReaderStrayContinuation(t *testing.T) {
	var out bytes.Buffer
	r := NewReader(wire(Frame{Final: true, Kind: Continue, Payload: []byte("orphan")}), NewWriter(&out))

	_, err := r.Next()
	require.ErrorIs(t, err, ErrUnexpectedContinue)
}

func TestWriterSingleFinalUnmaskedFrame(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out)

	require.NoError(t, w.WriteText("ping me"))
	require.NoError(t, w.WriteBinary([]byte{9, 9}))

	first, err := ReadFrame(&out)
	require.NoError(t, err)
	assert.True(t, first.Final)
	assert.Equal(t, Text, first.Kind)
	assert.Nil(t, first.MaskKey)
	assert.Equal(t, "ping me", string(first.Payload))

	second, err := ReadFrame(&out)
	require.NoError(t, err)
	assert.Equal(t, Binary, second.Kind)
	assert.Equal(t, []byte{9, 9}, second.Payload)
}
