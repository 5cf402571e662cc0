package pusoy

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWordList(t *testing.T, words string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(words), 0o644))
	return path
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestLoadWordList(t *testing.T) {
	wl, err := LoadWordList(writeWordList(t, "Zebra\napple\n\nmango\n"))
	require.NoError(t, err)

	require.Equal(t, 3, wl.Len())

	// sorted after lowercasing, so ids are stable lookups
	id, ok := wl.Decode("zebra")
	require.True(t, ok)
	assert.Equal(t, "zebra", wl.Encode(id))

	_, ok = wl.Decode("durian")
	assert.False(t, ok)
}

func TestLoadWordListEmpty(t *testing.T) {
	_, err := LoadWordList(writeWordList(t, "\n\n"))
	require.Error(t, err)
}

func TestIDGeneratorNoRepeatsUntilFreed(t *testing.T) {
	gen := newIDGenerator(4, testRand())

	seen := make(map[GameID]bool)
	for range 4 {
		id, err := gen.next()
		require.NoError(t, err)
		assert.False(t, seen[id])
		seen[id] = true
	}

	_, err := gen.next()
	require.ErrorIs(t, err, errIDsExhausted)

	gen.free(GameID(0))
	id, err := gen.next()
	require.NoError(t, err)
	assert.Equal(t, GameID(0), id)
}
