package ws

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	key := [4]byte{0x37, 0xfa, 0x21, 0x3d}

	cases := []struct {
		name    string
		frame   Frame
		payload int
	}{
		{"empty", Frame{Final: true, Kind: Text}, 0},
		{"short", Frame{Final: true, Kind: Text}, 5},
		{"boundary125", Frame{Final: true, Kind: Binary}, 125},
		{"extended16", Frame{Final: true, Kind: Binary}, 126},
		{"extended16Large", Frame{Final: true, Kind: Text}, 40000},
		{"extended64", Frame{Final: true, Kind: Binary}, 70000},
		{"maskedShort", Frame{Final: true, Kind: Text, MaskKey: &key}, 17},
		{"maskedExtended", Frame{Final: true, Kind: Binary, MaskKey: &key}, 300},
		{"nonFinal", Frame{Final: false, Kind: Text}, 9},
		{"control", Frame{Final: true, Kind: Ping}, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := make([]byte, tc.payload)
			for i := range payload {
				payload[i] = byte(i)
			}
			tc.frame.Payload = payload

			got, err := ReadFrame(bytes.NewReader(tc.frame.Encode()))
			require.NoError(t, err)

			assert.Equal(t, tc.frame.Final, got.Final)
			assert.Equal(t, tc.frame.Kind, got.Kind)
			assert.Equal(t, payload, got.Payload)
		})
	}
}

func TestEncodeLengthDescriptors(t *testing.T) {
	short := Frame{Final: true, Kind: Text, Payload: make([]byte, 125)}.Encode()
	assert.Equal(t, byte(125), short[1]&0x7f)

	mid := Frame{Final: true, Kind: Text, Payload: make([]byte, 126)}.Encode()
	assert.Equal(t, byte(126), mid[1]&0x7f)
	assert.Equal(t, []byte{0x00, 0x7e}, mid[2:4])

	long := Frame{Final: true, Kind: Text, Payload: make([]byte, 70000)}.Encode()
	assert.Equal(t, byte(127), long[1]&0x7f)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 1, 0x11, 0x70}, long[2:10])
}

func TestEncodeMaskObscuresPayload(t *testing.T) {
	key := [4]byte{1, 2, 3, 4}
	payload := []byte("hello")

	wire := Frame{Final: true, Kind: Text, MaskKey: &key, Payload: payload}.Encode()

	assert.Equal(t, byte(0x80|5), wire[1])
	assert.NotEqual(t, payload, wire[6:])
	// source slice untouched
	assert.Equal(t, []byte("hello"), payload)
}

func TestReadFrameInvalidOpcode(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader([]byte{0x83, 0x00}))
	require.ErrorIs(t, err, ErrInvalidOpcode)
	assert.False(t, Retryable(err))
}

func TestReadFrameTruncated(t *testing.T) {
	full := Frame{Final: true, Kind: Text, Payload: []byte("truncate me please")}.Encode()

	for i := 2; i < len(full); i++ {
		_, err := ReadFrame(bytes.NewReader(full[:i]))
		require.Error(t, err, "prefix of %d bytes", i)
		assert.True(t, Retryable(err), "prefix of %d bytes", i)
	}

	_, err := ReadFrame(bytes.NewReader(nil))
	require.ErrorIs(t, err, io.EOF)
}
