package secure

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seednode/arcade/internal/ws"
)

func newTestTenant(t *testing.T) (*Tenant, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "passwords.log")
	frozen := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	tn, err := New(path, WithClock(func() time.Time { return frozen }))
	require.NoError(t, err)
	t.Cleanup(func() { tn.Close() })

	return tn, path
}

func TestTextMessagesAreLogged(t *testing.T) {
	tn, path := newTestTenant(t)

	require.NoError(t, tn.OnMessage(7, ws.Message{Kind: ws.Text, Payload: []byte("hunter2")}))
	require.NoError(t, tn.OnMessage(8, ws.Message{Kind: ws.Text, Payload: []byte("letmein")}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "2026-08-24T12:00:00.000")
	assert.Contains(t, lines[0], "peer#7")
	assert.Contains(t, lines[0], "hunter2")
	assert.Contains(t, lines[1], "letmein")
}

func TestBinaryMessagesAreIgnored(t *testing.T) {
	tn, path := newTestTenant(t)

	require.NoError(t, tn.OnMessage(7, ws.Message{Kind: ws.Binary, Payload: []byte{1, 2, 3}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestLogAppendsAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passwords.log")

	for _, secret := range []string{"first", "second"} {
		tn, err := New(path)
		require.NoError(t, err)
		require.NoError(t, tn.OnMessage(1, ws.Message{Kind: ws.Text, Payload: []byte(secret)}))
		require.NoError(t, tn.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")
}

func TestPeersNeverGetAReply(t *testing.T) {
	tn, _ := newTestTenant(t)

	// OnConnect takes a writer but must never use it
	tn.OnConnect(1, nil)
	require.NoError(t, tn.OnMessage(1, ws.Message{Kind: ws.Text, Payload: []byte("secret")}))
	tn.OnDisconnect(1)
}
