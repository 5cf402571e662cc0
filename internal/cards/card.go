/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package cards implements the pusoy card engine: a 52-card bitset,
// play classification, and exhaustive move enumeration.
package cards

import (
	"errors"
	"fmt"
)

// Rank orders Three lowest through Two highest, pusoy style.
type Rank uint8

const (
	Three Rank = iota
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
	Two

	NumRanks = 13
)

// Suit orders Clubs lowest through Diamonds highest.
type Suit uint8

const (
	Clubs Suit = iota
	Spades
	Hearts
	Diamonds

	NumSuits = 4
)

const (
	rankChars = "3456789TJQKA2"
	suitChars = "CSHD"
)

// Card is an index 0..51, rank-major and suit-minor, so comparing two
// cards numerically compares them by pusoy value. ThreeOfClubs is 0.
type Card uint8

const (
	ThreeOfClubs Card = 0
	NumCards          = 52
)

func MakeCard(r Rank, s Suit) Card {
	return Card(uint8(r)*NumSuits + uint8(s))
}

func (c Card) Rank() Rank { return Rank(c / NumSuits) }
func (c Card) Suit() Suit { return Suit(c % NumSuits) }

// String renders the wire form, e.g. "3C", "TD", "2S".
func (c Card) String() string {
	return string([]byte{rankChars[c.Rank()], suitChars[c.Suit()]})
}

var errBadCard = errors.New("cards: unrecognized card")

// ParseCard parses the wire form produced by String.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: %q", errBadCard, s)
	}

	rank := -1
	for i := range rankChars {
		if rankChars[i] == s[0] {
			rank = i
			break
		}
	}

	suit := -1
	for i := range suitChars {
		if suitChars[i] == s[1] {
			suit = i
			break
		}
	}

	if rank < 0 || suit < 0 {
		return 0, fmt.Errorf("%w: %q", errBadCard, s)
	}

	return MakeCard(Rank(rank), Suit(suit)), nil
}
