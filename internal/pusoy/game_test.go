package pusoy

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seednode/arcade/internal/cards"
)

func play(t *testing.T, names ...string) cards.Play {
	t.Helper()

	var cs cards.Cards
	for _, name := range names {
		c, err := cards.ParseCard(name)
		require.NoError(t, err)
		cs.Insert(c)
	}
	p, ok := cards.InferPlay(cs)
	require.True(t, ok)
	return p
}

func TestDealIsEvenAndComplete(t *testing.T) {
	g := newGame(testRand())

	var union cards.Cards
	for _, hand := range g.hands {
		assert.Equal(t, 13, hand.Len())
		assert.True(t, union.IsDisjoint(hand))
		union = union.Union(hand)
	}
	assert.Equal(t, cards.EntireDeck(), union)
}

func TestOpenerHoldsThreeOfClubs(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		g := newGame(testRand())
		assert.True(t, g.currentHand().Contains(cards.ThreeOfClubs))
		assert.True(t, g.control())
		assert.True(t, g.firstTurn())
	}
}

// rigged builds a game with known hands for deterministic rule checks.
func rigged(t *testing.T, hands ...[]string) *game {
	t.Helper()

	g := &game{winner: -1}
	for _, names := range hands {
		var cs cards.Cards
		for _, name := range names {
			c, err := cards.ParseCard(name)
			require.NoError(t, err)
			cs.Insert(c)
		}
		g.hands = append(g.hands, cs)
	}
	for i, hand := range g.hands {
		if hand.Contains(cards.ThreeOfClubs) {
			g.current = i
			g.lastNonPass = i
			break
		}
	}
	return g
}

func TestFirstPlayMustIncludeThreeOfClubs(t *testing.T) {
	g := rigged(t,
		[]string{"3C", "5D", "9H"},
		[]string{"4C", "6D", "TH"},
	)

	assert.ErrorIs(t, g.canPlay(play(t, "5D")), ErrMustOpenWithThreeOfClubs)
	assert.ErrorIs(t, g.canPlay(cards.Play{}), ErrMustOpenWithThreeOfClubs)
	assert.NoError(t, g.canPlay(play(t, "3C")))
}

func TestCannotPlayCardsYouDontHold(t *testing.T) {
	g := rigged(t,
		[]string{"3C", "5D"},
		[]string{"4C", "6D"},
	)

	assert.ErrorIs(t, g.canPlay(play(t, "KD")), ErrDontHaveCard)
}

func TestFollowingPlayRules(t *testing.T) {
	g := rigged(t,
		[]string{"3C", "5D"},
		[]string{"4C", "4S", "6D"},
	)

	g.apply(play(t, "3C"))
	require.Equal(t, 1, g.current)
	require.False(t, g.control())

	// a pair on a single is the wrong length
	assert.ErrorIs(t, g.canPlay(play(t, "4C", "4S")), ErrWrongLength)
	// any higher single works
	assert.NoError(t, g.canPlay(play(t, "4C")))
	assert.NoError(t, g.canPlay(play(t, "6D")))
	// passing without control is always allowed
	assert.NoError(t, g.canPlay(cards.Play{}))
}

func TestTooLow(t *testing.T) {
	g := rigged(t,
		[]string{"3C", "KD"},
		[]string{"4C", "2S"},
	)

	// apply trusts the caller, so the rigged opener can skip the
	// three-of-clubs rule to get a king on the table
	g.apply(play(t, "KD"))

	assert.ErrorIs(t, g.canPlay(play(t, "4C")), ErrTooLow)
	assert.NoError(t, g.canPlay(play(t, "2S")))
}

func TestControlForbidsPassAndFreesLength(t *testing.T) {
	g := rigged(t,
		[]string{"3C", "7H", "7D"},
		[]string{"4C"},
	)

	g.apply(play(t, "3C")) // seat 0 plays, seat 1 up
	g.apply(cards.Play{})  // seat 1 passes, back to seat 0 with control

	require.True(t, g.control())
	assert.ErrorIs(t, g.canPlay(cards.Play{}), ErrCannotPassWithControl)
	// with control, length no longer needs to match the table
	assert.NoError(t, g.canPlay(play(t, "7H", "7D")))
}

func TestWinnerOnEmptyHand(t *testing.T) {
	g := rigged(t,
		[]string{"3C"},
		[]string{"4C", "5S"},
	)

	g.apply(play(t, "3C"))

	assert.True(t, g.over())
	assert.Equal(t, 0, g.winner)
}

// TestGameReplayFirstLegalPlay drives seeded games to completion with
// every seat taking its first legal play, checking after each move that
// the hands stay pairwise disjoint and, with the played cards, still
// account for the whole deck.
func TestGameReplayFirstLegalPlay(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		g := newGame(rand.New(rand.NewPCG(seed, 42)))

		var played cards.Cards
		for turns := 0; !g.over(); turns++ {
			require.Less(t, turns, 1000, "seed %d: game did not terminate", seed)

			valid := g.validPlays()
			require.NotEmpty(t, valid, "seed %d turn %d", seed, turns)

			p := valid[0]
			require.NoError(t, g.canPlay(p))
			g.apply(p)
			played = played.Union(p.Cards)

			everyCard := played
			for i, hand := range g.hands {
				require.True(t, hand.IsDisjoint(played), "seed %d: hand %d overlaps played cards", seed, i)
				for j := i + 1; j < len(g.hands); j++ {
					require.True(t, hand.IsDisjoint(g.hands[j]), "seed %d: hands %d and %d overlap", seed, i, j)
				}
				everyCard = everyCard.Union(hand)
			}
			require.Equal(t, cards.EntireDeck(), everyCard, "seed %d: cards went missing", seed)
		}

		empty := 0
		for i, hand := range g.hands {
			if hand.IsEmpty() {
				empty++
				assert.Equal(t, g.winner, i, "seed %d", seed)
			}
		}
		assert.Equal(t, 1, empty, "seed %d", seed)
	}
}

func TestValidPlaysHonorFirstTurn(t *testing.T) {
	g := rigged(t,
		[]string{"3C", "3S", "8D"},
		[]string{"4C"},
	)

	for _, p := range g.validPlays() {
		assert.True(t, p.Cards.Contains(cards.ThreeOfClubs), "play %v", p.Cards)
	}
	assert.NotEmpty(t, g.validPlays())
}
