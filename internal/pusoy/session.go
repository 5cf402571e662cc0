/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package pusoy

import (
	"fmt"
	"time"

	"github.com/Seednode/arcade/internal/cards"
	"github.com/Seednode/arcade/internal/gate"
	"github.com/Seednode/arcade/internal/ws"
)

// seat is one of the four chairs at a table. Bots have no writer.
type seat struct {
	name  string
	human bool
	id    gate.PeerID
	w     *ws.Writer
}

type session struct {
	seats       [numSeats]seat
	game        *game
	turnStarted time.Time
}

// newSession seats the lobby members in join order and fills the rest
// of the table with bots.
func (t *Tenant) newSession(lob *lobby) *session {
	s := &session{
		game:        newGame(t.rng),
		turnStarted: t.now(),
	}

	humans := lob.members()
	for i := range s.seats {
		if i < len(humans) {
			s.seats[i] = seat{
				name:  humans[i].username,
				human: true,
				id:    humans[i].id,
				w:     humans[i].w,
			}
		} else {
			s.seats[i] = seat{name: fmt.Sprintf("bot %d", i-len(humans)+1)}
		}
	}

	return s
}

func (s *session) seatOf(id gate.PeerID) *seat {
	for i := range s.seats {
		if s.seats[i].human && s.seats[i].id == id {
			return &s.seats[i]
		}
	}
	return nil
}

func (s *session) currentSeat() *seat {
	return &s.seats[s.game.current]
}

func (s *session) anyHumans() bool {
	for i := range s.seats {
		if s.seats[i].human {
			return true
		}
	}
	return false
}

func (s *session) handSizes() map[string]int {
	sizes := make(map[string]int, numSeats)
	for i := range s.seats {
		sizes[s.seats[i].name] = s.game.hands[i].Len()
	}
	return sizes
}

func (s *session) broadcast(v any) {
	for i := range s.seats {
		if s.seats[i].human {
			send(s.seats[i].w, v)
		}
	}
}

// sendDeals tells each human their hand and whose turn it is.
func (s *session) sendDeals() {
	turn := s.currentSeat().name
	for i := range s.seats {
		if !s.seats[i].human {
			continue
		}
		send(s.seats[i].w, dealMsg{
			Kind: "deal",
			Hand: cardNames(s.game.hands[i]),
			Turn: turn,
		})
	}
}

// applyPlay commits a validated play, announces it, and tears the
// session down when it ends the game.
func (t *Tenant) applyPlay(gid GameID, s *session, play cards.Play) {
	player := s.currentSeat().name

	s.game.apply(play)
	s.turnStarted = t.now()

	s.broadcast(playMadeMsg{
		Kind:      "playMade",
		Player:    player,
		Cards:     cardNames(play.Cards),
		Passed:    play.IsPass(),
		Turn:      s.currentSeat().name,
		HandSizes: s.handSizes(),
	})

	if !s.game.over() {
		return
	}

	winner := s.seats[s.game.winner].name
	s.broadcast(gameOverMsg{Kind: "gameOver", Winner: winner})
	t.logf("PUSOY: Game %q won by %s", t.words.Encode(gid), winner)

	for i := range s.seats {
		if s.seats[i].human {
			delete(t.inGame, s.seats[i].id)
			t.unregistered[s.seats[i].id] = s.seats[i].w
		}
	}
	delete(t.games, gid)
	t.gen.free(gid)
}

// tickSession drives bot turns and the human turn timeout.
func (t *Tenant) tickSession(gid GameID, s *session) {
	waited := t.now().Sub(s.turnStarted)

	cur := s.currentSeat()
	if !cur.human {
		if waited >= t.botDelay {
			t.applyPlay(gid, s, t.chooseBotPlay(s.game))
		}
		return
	}

	if waited >= t.turnTimeout {
		valid := s.game.validPlays()
		forced := valid[0]
		for _, p := range valid {
			if p.IsPass() {
				forced = p
				break
			}
		}
		send(cur.w, invalidPlayMsg{Kind: "invalidPlay", Reason: "turn timed out"})
		t.applyPlay(gid, s, forced)
	}
}

func parsePlay(names []string) (cards.Play, string) {
	var cs cards.Cards
	for _, name := range names {
		c, err := cards.ParseCard(name)
		if err != nil {
			return cards.Play{}, fmt.Sprintf("unrecognized card %q", name)
		}
		cs.Insert(c)
	}

	play, ok := cards.InferPlay(cs)
	if !ok {
		return cards.Play{}, "cards do not form a play"
	}
	return play, ""
}

func cardNames(cs cards.Cards) []string {
	names := make([]string, 0, cs.Len())
	for _, c := range cs.All() {
		names = append(names, c.String())
	}
	return names
}
