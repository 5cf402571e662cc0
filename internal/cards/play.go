/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package cards

// PlayKind orders the play categories from weakest to strongest. Among
// five-card plays, any higher kind beats any lower kind.
type PlayKind uint8

const (
	Pass PlayKind = iota
	Single
	Pair
	Strait
	Flush
	FullHouse
	FourOfAKind
	StraitFlush
)

func (k PlayKind) String() string {
	switch k {
	case Pass:
		return "pass"
	case Single:
		return "single"
	case Pair:
		return "pair"
	case Strait:
		return "strait"
	case Flush:
		return "flush"
	case FullHouse:
		return "fullHouse"
	case FourOfAKind:
		return "fourOfAKind"
	case StraitFlush:
		return "straitFlush"
	}
	return "invalid"
}

// Len is the number of cards the kind requires.
func (k PlayKind) Len() int {
	switch k {
	case Pass:
		return 0
	case Single:
		return 1
	case Pair:
		return 2
	default:
		return 5
	}
}

// Play is a classified set of cards. Ranking is the card that decides
// ties between plays of the same kind; it is meaningless for Pass.
type Play struct {
	Kind    PlayKind
	Ranking Card
	Cards   Cards
}

func pass() Play {
	return Play{Kind: Pass}
}

func (p Play) IsPass() bool { return p.Kind == Pass }

// CanPlayOn reports whether p beats q under pusoy ordering. Both plays
// must already be the same length; comparing across lengths is the
// caller's error to reject.
func (p Play) CanPlayOn(q Play) bool {
	if p.Kind != q.Kind {
		return p.Kind > q.Kind
	}
	return p.Ranking > q.Ranking
}

// LenEq reports whether two plays use the same number of cards.
func (p Play) LenEq(q Play) bool {
	return p.Kind.Len() == q.Kind.Len()
}

// InferPlay classifies a set of cards as a play. It returns false for
// card counts and shapes that form no legal play category.
func InferPlay(cs Cards) (Play, bool) {
	switch cs.Len() {
	case 0:
		return pass(), true
	case 1:
		return Play{Kind: Single, Ranking: cs.Max(), Cards: cs}, true
	case 2:
		a := cs.Min()
		b := cs.Max()
		if a.Rank() != b.Rank() {
			return Play{}, false
		}
		return Play{Kind: Pair, Ranking: b, Cards: cs}, true
	case 5:
		return inferFive(cs)
	default:
		return Play{}, false
	}
}

func inferFive(cs Cards) (Play, bool) {
	counts := make(map[Rank]int, 5)
	for _, c := range cs.All() {
		counts[c.Rank()]++
	}

	isStrait := len(counts) == 5 && straitRanks(counts)
	isFlush := cs.AllSameSuit()

	switch {
	case isStrait && isFlush:
		return Play{Kind: StraitFlush, Ranking: cs.Max(), Cards: cs}, true
	case isStrait:
		return Play{Kind: Strait, Ranking: cs.Max(), Cards: cs}, true
	case isFlush:
		return Play{Kind: Flush, Ranking: cs.Max(), Cards: cs}, true
	}

	for rank, n := range counts {
		switch n {
		case 4:
			return Play{Kind: FourOfAKind, Ranking: cs.OfRank(rank).Max(), Cards: cs}, true
		case 3:
			if len(counts) == 2 {
				return Play{Kind: FullHouse, Ranking: cs.OfRank(rank).Max(), Cards: cs}, true
			}
		}
	}

	return Play{}, false
}

// straitRanks reports whether five distinct ranks form a run, counting
// runs that wrap past Two back to Three.
func straitRanks(counts map[Rank]int) bool {
	for start := 0; start < NumRanks; start++ {
		run := true
		for off := 0; off < 5; off++ {
			if counts[Rank((start+off)%NumRanks)] == 0 {
				run = false
				break
			}
		}
		if run {
			return true
		}
	}
	return false
}
