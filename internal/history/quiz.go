/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package history

import (
	"github.com/Seednode/arcade/internal/gate"
)

// quizGame runs rounds of multiple choice: the host paces the game by
// asking for the next question, everyone else answers the current one.
type quizGame struct {
	host    gate.PeerID
	peers   []gate.PeerID
	query   *Query
	current MultipleChoiceQuestion
	answers map[gate.PeerID]int
	scores  map[gate.PeerID]float64
}

type initialStuffMsg struct {
	Kind     string           `json:"kind"`
	Question *questionPayload `json:"question,omitempty"`
}

type updateStuffMsg struct {
	Kind        string          `json:"kind"`
	NewQuestion questionPayload `json:"newQuestion"`
	WasCorrect  bool            `json:"wasCorrect"`
	Score       float64         `json:"score"`
}

func newQuizGame(t *Tenant, l *lobby) *quizGame {
	g := &quizGame{
		host:    l.host,
		peers:   l.peers,
		query:   l.query,
		current: t.vocab.MultipleChoice(l.query),
		answers: make(map[gate.PeerID]int),
		scores:  make(map[gate.PeerID]float64),
	}

	question := t.vocab.payload(g.current)
	for _, id := range g.peers {
		if w := t.writer(id); w != nil {
			send(w, initialStuffMsg{Kind: "initialStuff", Question: &question})
		}
	}
	// the host runs the scoreboard and never sees the options
	if w := t.writer(g.host); w != nil {
		send(w, initialStuffMsg{Kind: "initialStuff"})
	}

	return g
}

func (g *quizGame) receive(t *Tenant, id gate.PeerID, env envelope) error {
	switch env.Kind {
	case "nextQuestion":
		if id != g.host {
			return nil
		}
		g.advance(t)
	case "submitAnswer":
		if id == g.host {
			return nil
		}
		if env.Answer == nil {
			return gate.ErrDisconnect
		}
		g.answers[id] = *env.Answer
		t.vocab.LogAnswer(g.current, *env.Answer)
	default:
		return gate.ErrDisconnect
	}

	return nil
}

// advance scores the round that just ended and deals the next question.
func (g *quizGame) advance(t *Tenant) {
	for responder, answer := range g.answers {
		if g.current.IsCorrect(answer) {
			g.scores[responder]++
		}
	}

	next := t.vocab.MultipleChoice(g.query)
	question := t.vocab.payload(next)

	for _, id := range g.peers {
		answer, answered := g.answers[id]

		if w := t.writer(id); w != nil {
			send(w, updateStuffMsg{
				Kind:        "updateStuff",
				NewQuestion: question,
				WasCorrect:  answered && g.current.IsCorrect(answer),
				Score:       g.scores[id],
			})
		}
	}

	g.current = next
	clear(g.answers)
}

func (g *quizGame) leave(id gate.PeerID) {
	g.peers = removePeer(g.peers, id)
	delete(g.answers, id)
	delete(g.scores, id)
}
