/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package cards

// AllPlays enumerates every play a hand can form, pass included. Plays
// are not filtered for legality against any table state.
func AllPlays(hand Cards) []Play {
	plays := []Play{pass()}

	var blocks [NumRanks]Cards
	for r := Rank(0); r < NumRanks; r++ {
		blocks[r] = hand.OfRank(r)
	}

	for _, c := range hand.All() {
		plays = append(plays, Play{Kind: Single, Ranking: c, Cards: single(c)})
	}

	for r := Rank(0); r < NumRanks; r++ {
		for _, pair := range subsets(blocks[r].All(), 2) {
			plays = append(plays, Play{Kind: Pair, Ranking: pair.Max(), Cards: pair})
		}
	}

	seen := make(map[Cards]bool)
	keep := func(cs Cards) {
		if seen[cs] {
			return
		}
		seen[cs] = true
		if p, ok := InferPlay(cs); ok {
			plays = append(plays, p)
		}
	}

	// straits: every window of five consecutive ranks, wrapping past
	// Two, crossed over every choice of suit per rank
	for start := 0; start < NumRanks; start++ {
		window := make([][]Card, 0, 5)
		full := true
		for off := 0; off < 5; off++ {
			block := blocks[(start+off)%NumRanks].All()
			if len(block) == 0 {
				full = false
				break
			}
			window = append(window, block)
		}
		if !full {
			continue
		}
		forEachChoice(window, func(choice []Card) {
			keep(FromCards(choice...))
		})
	}

	// flushes: every five-card subset within one suit
	for _, m := range [NumSuits]Cards{clubsMask, spadesMask, heartsMask, diamondsMask} {
		for _, five := range subsets((hand & m).All(), 5) {
			keep(five)
		}
	}

	for r3 := Rank(0); r3 < NumRanks; r3++ {
		triples := subsets(blocks[r3].All(), 3)
		if len(triples) == 0 {
			continue
		}
		for r2 := Rank(0); r2 < NumRanks; r2++ {
			if r2 == r3 {
				continue
			}
			for _, triple := range triples {
				for _, pair := range subsets(blocks[r2].All(), 2) {
					plays = append(plays, Play{
						Kind:    FullHouse,
						Ranking: triple.Max(),
						Cards:   triple.Union(pair),
					})
				}
			}
		}
	}

	for r := Rank(0); r < NumRanks; r++ {
		if blocks[r].Len() != 4 {
			continue
		}
		for _, kicker := range (hand &^ blocks[r]).All() {
			plays = append(plays, Play{
				Kind:    FourOfAKind,
				Ranking: blocks[r].Max(),
				Cards:   blocks[r].Union(single(kicker)),
			})
		}
	}

	return plays
}

// subsets returns every n-card subset of the given cards.
func subsets(from []Card, n int) []Cards {
	if n > len(from) {
		return nil
	}

	var out []Cards
	var walk func(start int, chosen Cards, left int)
	walk = func(start int, chosen Cards, left int) {
		if left == 0 {
			out = append(out, chosen)
			return
		}
		for i := start; i <= len(from)-left; i++ {
			next := chosen
			next.Insert(from[i])
			walk(i+1, next, left-1)
		}
	}
	walk(0, 0, n)

	return out
}

// forEachChoice visits the cartesian product of the groups, one card
// from each, driven by a mixed-radix counter.
func forEachChoice(groups [][]Card, visit func([]Card)) {
	counter := make([]int, len(groups))
	choice := make([]Card, len(groups))

	for {
		for i, g := range groups {
			choice[i] = g[counter[i]]
		}
		visit(choice)

		i := 0
		for ; i < len(counter); i++ {
			counter[i]++
			if counter[i] < len(groups[i]) {
				break
			}
			counter[i] = 0
		}
		if i == len(counter) {
			return
		}
	}
}
