package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, names ...string) Cards {
	t.Helper()

	var cs Cards
	for _, name := range names {
		c, err := ParseCard(name)
		require.NoError(t, err)
		cs.Insert(c)
	}
	return cs
}

func TestCardLayout(t *testing.T) {
	assert.Equal(t, Card(0), ThreeOfClubs)
	assert.Equal(t, "3C", ThreeOfClubs.String())

	// rank-major, suit-minor: 3C 3S 3H 3D 4C ...
	assert.Equal(t, Card(1), MakeCard(Three, Spades))
	assert.Equal(t, Card(4), MakeCard(Four, Clubs))
	assert.Equal(t, Card(51), MakeCard(Two, Diamonds))

	// pusoy ordering: every Two beats every Ace
	assert.Greater(t, MakeCard(Two, Clubs), MakeCard(Ace, Diamonds))
}

func TestParseCardRoundTrip(t *testing.T) {
	for c := Card(0); c < NumCards; c++ {
		parsed, err := ParseCard(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	for _, bad := range []string{"", "3", "3X", "1C", "10D", "td"} {
		_, err := ParseCard(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestCardsSetOps(t *testing.T) {
	cs := mustParse(t, "3C", "TD", "2S")

	assert.Equal(t, 3, cs.Len())
	assert.True(t, cs.Contains(ThreeOfClubs))
	assert.False(t, cs.Contains(MakeCard(Two, Diamonds)))

	assert.Equal(t, ThreeOfClubs, cs.Min())
	assert.Equal(t, MakeCard(Two, Spades), cs.Max())

	assert.True(t, cs.IsSupersetOf(mustParse(t, "3C", "2S")))
	assert.False(t, cs.IsSupersetOf(mustParse(t, "3C", "2D")))
	assert.True(t, cs.IsDisjoint(mustParse(t, "4C", "5C")))

	cs.RemoveAll(mustParse(t, "3C", "TD"))
	assert.Equal(t, mustParse(t, "2S"), cs)
}

func TestEntireDeck(t *testing.T) {
	deck := EntireDeck()
	assert.Equal(t, 52, deck.Len())
	assert.Equal(t, ThreeOfClubs, deck.Min())
	assert.Equal(t, MakeCard(Two, Diamonds), deck.Max())
}

func TestAllSameSuit(t *testing.T) {
	assert.True(t, mustParse(t, "3C", "7C", "KC").AllSameSuit())
	assert.False(t, mustParse(t, "3C", "7D").AllSameSuit())
	assert.True(t, Cards(0).AllSameSuit())
}

func TestAllAscending(t *testing.T) {
	cs := mustParse(t, "2D", "3C", "9H")

	var names []string
	for _, c := range cs.All() {
		names = append(names, c.String())
	}
	assert.Equal(t, []string{"3C", "9H", "2D"}, names)
}
