/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package pusoy

import (
	"github.com/Seednode/arcade/internal/cards"
)

// chooseBotPlay picks the seatless player's move. Without a model the
// bot plays uniformly at random among its legal plays. With one, it
// prefers the candidate expected to sit unanswered the fewest
// pass-rounds, scoring a pass itself at the model's default.
func (t *Tenant) chooseBotPlay(g *game) cards.Play {
	valid := g.validPlays()

	if t.model == nil {
		return valid[t.rng.IntN(len(valid))]
	}

	best := valid[0]
	bestScore := t.scorePlay(g, best)
	for _, p := range valid[1:] {
		if score := t.scorePlay(g, p); score < bestScore {
			best, bestScore = p, score
		}
	}
	return best
}

func (t *Tenant) scorePlay(g *game, p cards.Play) float64 {
	switch {
	case p.IsPass():
		return defaultPassCount
	case !g.hasTable:
		// opening plays cannot be answered by definition
		return 1.0
	default:
		return t.model.Expected(g.table, p)
	}
}
