package pusoy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seednode/arcade/internal/cards"
)

func writeModel(t *testing.T, rows string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "model.tsv")
	require.NoError(t, os.WriteFile(path, []byte(rows), 0o644))
	return path
}

func TestLoadPassModel(t *testing.T) {
	m, err := LoadPassModel(writeModel(t, "single\t7H\tsingle\t8D\t1.25\nsingle\t7H\tsingle\t2S\t0.5\n"))
	require.NoError(t, err)

	on := mustPlay(t, "7H")
	assert.Equal(t, 1.25, m.Expected(on, mustPlay(t, "8D")))
	assert.Equal(t, 0.5, m.Expected(on, mustPlay(t, "2S")))

	// pairings the model never saw fall back to the guess
	assert.Equal(t, defaultPassCount, m.Expected(on, mustPlay(t, "9C")))
}

func TestPassModelNilDefaults(t *testing.T) {
	var m *PassModel
	assert.Equal(t, defaultPassCount, m.Expected(mustPlay(t, "7H"), mustPlay(t, "8D")))
}

func TestLoadPassModelRejectsBadRows(t *testing.T) {
	for _, rows := range []string{
		"single\t7H\tsingle\t8D\n",            // too few fields
		"waltz\t7H\tsingle\t8D\t1.0\n",        // unknown kind
		"single\t7X\tsingle\t8D\t1.0\n",       // bad card
		"single\t7H\tsingle\t8D\tplenty\n",    // bad count
	} {
		_, err := LoadPassModel(writeModel(t, rows))
		assert.Error(t, err, "rows %q", rows)
	}
}

func TestModelBotPrefersCheapestPlay(t *testing.T) {
	m, err := LoadPassModel(writeModel(t, "single\tKD\tsingle\t2S\t0.25\n"))
	require.NoError(t, err)

	tn := newTestTenant(t, WithModel(m))

	g := rigged(t,
		[]string{"3C", "KD"},
		[]string{"AC", "2S"},
	)
	g.apply(mustPlay(t, "KD"))

	// AC scores the 3.0 default and a pass scores 3.0; 2S scores 0.25
	chosen := tn.chooseBotPlay(g)
	assert.Equal(t, mustCards(t, "2S"), chosen.Cards)
}

func TestRandomBotAlwaysLegal(t *testing.T) {
	tn := newTestTenant(t)

	for range 50 {
		g := newGame(tn.rng)
		chosen := tn.chooseBotPlay(g)
		assert.NoError(t, g.canPlay(chosen))
	}
}

func mustPlay(t *testing.T, names ...string) cards.Play {
	t.Helper()

	p, ok := cards.InferPlay(mustCards(t, names...))
	require.True(t, ok)
	return p
}
