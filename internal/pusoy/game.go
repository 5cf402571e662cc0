/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package pusoy is the card-game tenant: lobbies addressed by word ids,
// four-seat games with bot fallback, and turn enforcement on the shared
// tick.
package pusoy

import (
	"errors"
	"math/rand/v2"

	"github.com/Seednode/arcade/internal/cards"
)

var (
	ErrDontHaveCard             = errors.New("cards are not in your hand")
	ErrMustOpenWithThreeOfClubs = errors.New("the first play must include the three of clubs")
	ErrCannotPassWithControl    = errors.New("cannot pass while holding control")
	ErrWrongLength              = errors.New("play must match the length of the cards on the table")
	ErrTooLow                   = errors.New("play does not beat the cards on the table")
)

const numSeats = 4

// game is the table state for one match. The holder of the three of
// clubs opens; control means the turn came back around to the last
// player who didn't pass.
type game struct {
	hands       []cards.Cards
	current     int
	table       cards.Play
	hasTable    bool
	turnIndex   int
	lastNonPass int
	winner      int
}

func newGame(rng *rand.Rand) *game {
	hands := deal(numSeats, rng)

	current := 0
	for i, hand := range hands {
		if hand.Contains(cards.ThreeOfClubs) {
			current = i
			break
		}
	}

	return &game{
		hands:       hands,
		current:     current,
		lastNonPass: current,
		winner:      -1,
	}
}

// deal hands the shuffled deck out round-robin.
func deal(players int, rng *rand.Rand) []cards.Cards {
	deck := cards.EntireDeck().All()
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	hands := make([]cards.Cards, players)
	for i, c := range deck {
		hands[i%players].Insert(c)
	}
	return hands
}

func (g *game) firstTurn() bool { return g.turnIndex == 0 }
func (g *game) control() bool   { return g.lastNonPass == g.current }
func (g *game) over() bool      { return g.winner >= 0 }

func (g *game) currentHand() cards.Cards { return g.hands[g.current] }

// canPlay checks a play for the current player without applying it.
func (g *game) canPlay(p cards.Play) error {
	if !g.currentHand().IsSupersetOf(p.Cards) {
		return ErrDontHaveCard
	}

	switch {
	case g.firstTurn():
		if !p.Cards.Contains(cards.ThreeOfClubs) {
			return ErrMustOpenWithThreeOfClubs
		}
	case g.control():
		if p.IsPass() {
			return ErrCannotPassWithControl
		}
	case !p.IsPass():
		if !p.LenEq(g.table) {
			return ErrWrongLength
		}
		if !p.CanPlayOn(g.table) {
			return ErrTooLow
		}
	}
	// passing without control is always legal

	return nil
}

// apply plays p for the current player. The caller validates first.
func (g *game) apply(p cards.Play) {
	g.hands[g.current].RemoveAll(p.Cards)

	if g.hands[g.current].IsEmpty() {
		g.winner = g.current
	}

	if !p.IsPass() {
		g.lastNonPass = g.current
		g.table = p
		g.hasTable = true
	}

	g.turnIndex++
	g.current = (g.current + 1) % len(g.hands)
}

// validPlays is every play the current player could legally make.
func (g *game) validPlays() []cards.Play {
	var out []cards.Play
	for _, p := range cards.AllPlays(g.currentHand()) {
		if g.canPlay(p) == nil {
			out = append(out, p)
		}
	}
	return out
}
