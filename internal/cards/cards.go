/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package cards

import (
	"math/bits"
	"strings"
)

// Cards is a set of cards in the low 52 bits of a uint64.
type Cards uint64

const deckMask = (Cards(1) << NumCards) - 1

// suit masks: every fourth bit, offset by the suit
const (
	clubsMask    Cards = 0x1111111111111 & deckMask
	spadesMask         = clubsMask << 1
	heartsMask         = clubsMask << 2
	diamondsMask       = clubsMask << 3
)

func EntireDeck() Cards { return deckMask }

func single(c Card) Cards { return 1 << c }

func (cs Cards) Contains(c Card) bool { return cs&single(c) != 0 }
func (cs Cards) IsEmpty() bool        { return cs == 0 }
func (cs Cards) Len() int             { return bits.OnesCount64(uint64(cs)) }

func (cs *Cards) Insert(c Card)  { *cs |= single(c) }
func (cs *Cards) Remove(c Card)  { *cs &^= single(c) }
func (cs *Cards) RemoveAll(o Cards) { *cs &^= o }

func (cs Cards) Union(o Cards) Cards     { return cs | o }
func (cs Cards) IsSupersetOf(o Cards) bool { return cs&o == o }
func (cs Cards) IsDisjoint(o Cards) bool   { return cs&o == 0 }

// Min returns the lowest card; cs must be non-empty.
func (cs Cards) Min() Card {
	return Card(bits.TrailingZeros64(uint64(cs)))
}

// Max returns the highest card; cs must be non-empty.
func (cs Cards) Max() Card {
	return Card(63 - bits.LeadingZeros64(uint64(cs)))
}

// AllSameSuit reports whether every card shares one suit. The empty set
// qualifies.
func (cs Cards) AllSameSuit() bool {
	for _, m := range [NumSuits]Cards{clubsMask, spadesMask, heartsMask, diamondsMask} {
		if cs&^m == 0 {
			return true
		}
	}
	return false
}

// OfRank returns the subset holding the given rank.
func (cs Cards) OfRank(r Rank) Cards {
	return cs & (0xf << (uint(r) * NumSuits))
}

// All iterates the set in ascending card order.
func (cs Cards) All() []Card {
	out := make([]Card, 0, cs.Len())
	for rest := cs; rest != 0; {
		c := rest.Min()
		out = append(out, c)
		rest.Remove(c)
	}
	return out
}

// FromCards builds a set from individual cards.
func FromCards(list ...Card) Cards {
	var cs Cards
	for _, c := range list {
		cs.Insert(c)
	}
	return cs
}

func (cs Cards) String() string {
	names := make([]string, 0, cs.Len())
	for _, c := range cs.All() {
		names = append(names, c.String())
	}
	return "[" + strings.Join(names, " ") + "]"
}
