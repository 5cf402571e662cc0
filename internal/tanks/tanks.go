/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package tanks is the arena tenant: a toroidal map of drifting tanks,
// quiz questions that recharge shields, and instant-hit lasers.
package tanks

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/Seednode/arcade/internal/gate"
	"github.com/Seednode/arcade/internal/ws"
)

const (
	mapWidth       = 500.0
	mapHeight      = 500.0
	numStars       = 30
	playerVelocity = 0.04  // units per millisecond
	playerRadius   = 10.0
	laserDuration  = 300.0 // milliseconds
	startingShield = 3
)

// QA is one term/definition pairing from the term bank.
type QA struct {
	Term       string
	Definition string
}

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type laser struct {
	x, y, facing float64
	expire       float64
}

type question struct {
	definition  string
	left, right string
	leftCorrect bool
}

func (q question) guess(isLeft bool) bool {
	return isLeft == q.leftCorrect
}

type player struct {
	x, y, facing float64
	color        string
	shield       int
	question     question
	w            *ws.Writer
}

func (p *player) velocity() (vx, vy float64) {
	return playerVelocity * math.Cos(p.facing), playerVelocity * math.Sin(p.facing)
}

// Tenant is the shared world state; the gate serializes all access.
type Tenant struct {
	questions   []QA
	stars       []point
	players     map[gate.PeerID]*player
	lasers      []laser
	lastUpdated float64
	rng         *rand.Rand
	nowMillis   func() float64
	logf        func(format string, args ...any)
}

type Option func(*Tenant)

func WithRand(rng *rand.Rand) Option {
	return func(t *Tenant) { t.rng = rng }
}

func WithClock(nowMillis func() float64) Option {
	return func(t *Tenant) { t.nowMillis = nowMillis }
}

func WithLogger(logf func(format string, args ...any)) Option {
	return func(t *Tenant) { t.logf = logf }
}

// New builds the world. The question list must be non-empty: every
// player carries a question at all times.
func New(questions []QA, opts ...Option) (*Tenant, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("tanks: no questions to ask")
	}

	t := &Tenant{
		questions: questions,
		players:   make(map[gate.PeerID]*player),
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		nowMillis: func() float64 { return float64(time.Now().UnixMilli()) },
		logf:      func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(t)
	}

	t.lastUpdated = t.nowMillis()
	for range numStars {
		t.stars = append(t.stars, point{
			X: t.rng.Float64() * mapWidth,
			Y: t.rng.Float64() * mapHeight,
		})
	}

	return t, nil
}

func (t *Tenant) newQuestion() question {
	correct := t.questions[t.rng.IntN(len(t.questions))]
	wrong := t.questions[t.rng.IntN(len(t.questions))]

	q := question{definition: correct.Definition}
	if t.rng.IntN(2) == 0 {
		q.left, q.right, q.leftCorrect = correct.Term, wrong.Term, true
	} else {
		q.left, q.right, q.leftCorrect = wrong.Term, correct.Term, false
	}
	return q
}

func (t *Tenant) OnConnect(id gate.PeerID, w *ws.Writer) {
	t.players[id] = &player{
		x:        t.rng.Float64() * mapWidth,
		y:        t.rng.Float64() * mapHeight,
		facing:   t.rng.Float64() * 2 * math.Pi,
		color:    fmt.Sprintf("rgb(%d,%d,%d)", t.rng.IntN(256), t.rng.IntN(256), t.rng.IntN(256)),
		shield:   startingShield,
		question: t.newQuestion(),
		w:        w,
	}
	t.announce()
}

type command struct {
	Kind        string   `json:"kind"`
	NewFacing   *float64 `json:"newFacing"`
	GuessIsLeft *bool    `json:"guessIsLeft"`
}

func (t *Tenant) OnMessage(id gate.PeerID, msg ws.Message) error {
	// a killed player's reader may still deliver; they are already gone
	p, ok := t.players[id]
	if !ok {
		return gate.ErrDisconnect
	}

	text, ok := msg.Text()
	if !ok {
		return gate.ErrDisconnect
	}

	var cmd command
	if err := json.Unmarshal([]byte(text), &cmd); err != nil {
		return gate.ErrDisconnect
	}

	switch cmd.Kind {
	case "updateFacing":
		if cmd.NewFacing == nil {
			return gate.ErrDisconnect
		}
		t.update()
		p.facing = *cmd.NewFacing
	case "guess":
		if cmd.GuessIsLeft == nil {
			return gate.ErrDisconnect
		}
		correct := p.question.guess(*cmd.GuessIsLeft)
		p.question = t.newQuestion()
		if !correct {
			return gate.ErrDisconnect
		}
		p.shield++
	case "fire":
		t.fire(id, p)
	default:
		return gate.ErrDisconnect
	}

	t.announce()
	return nil
}

func (t *Tenant) OnDisconnect(id gate.PeerID) {
	delete(t.players, id)
	t.announce()
}

func (t *Tenant) OnTick() {
	t.update()
	t.announce()
}

// fire advances physics, spends a shield, and resolves the shot against
// every other tank with the closed-form ray test.
func (t *Tenant) fire(shooter gate.PeerID, p *player) {
	t.update()

	if p.shield == 0 {
		return
	}
	p.shield--

	var toKill []gate.PeerID
	for otherID, other := range t.players {
		if otherID == shooter {
			continue
		}
		if !intersectCircle(other.x, other.y, playerRadius, p.x, p.y, p.facing) {
			continue
		}
		if other.shield > 0 {
			other.shield--
		} else {
			toKill = append(toKill, otherID)
		}
	}

	for _, id := range toKill {
		t.kill(id)
	}

	t.lasers = append(t.lasers, laser{
		x:      p.x,
		y:      p.y,
		facing: p.facing,
		expire: t.lastUpdated + laserDuration,
	})
}

// kill notifies the victim once and forgets them; their next message
// finds no player and drops the connection.
func (t *Tenant) kill(id gate.PeerID) {
	if p, ok := t.players[id]; ok {
		_ = p.w.WriteText(`{"kind":"kill"}`)
	}
	delete(t.players, id)
	t.logf("TANKS: %s destroyed", id)
}

// update advances every tank by the elapsed wall time and expires old
// lasers.
func (t *Tenant) update() {
	now := t.nowMillis()
	elapsed := now - t.lastUpdated
	t.lastUpdated = now

	live := t.lasers[:0]
	for _, l := range t.lasers {
		if l.expire >= now {
			live = append(live, l)
		}
	}
	t.lasers = live

	for _, p := range t.players {
		vx, vy := p.velocity()
		p.x = wrap(p.x+vx*elapsed, mapWidth)
		p.y = wrap(p.y-vy*elapsed, mapHeight)
	}
}

type playerState struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Color  string  `json:"color"`
	Shield int     `json:"shield"`
}

type laserState struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Facing float64 `json:"facing"`
	Expire float64 `json:"expire"`
}

type gameState struct {
	Time    float64       `json:"time"`
	Stars   []point       `json:"stars"`
	Players []playerState `json:"players"`
	Us      playerState   `json:"us"`
	Lasers  []laserState  `json:"lasers"`
}

type questionState struct {
	Definition string `json:"definition"`
	Left       string `json:"left"`
	Right      string `json:"right"`
}

type stateMsg struct {
	Kind      string        `json:"kind"`
	GameState gameState     `json:"gameState"`
	Question  questionState `json:"question"`
}

func (p *player) state() playerState {
	vx, vy := p.velocity()
	return playerState{X: p.x, Y: p.y, VX: vx, VY: vy, Color: p.color, Shield: p.shield}
}

// announce pushes each peer its own view: shared world, private question.
func (t *Tenant) announce() {
	players := make([]playerState, 0, len(t.players))
	for _, p := range t.players {
		players = append(players, p.state())
	}

	lasers := make([]laserState, 0, len(t.lasers))
	for _, l := range t.lasers {
		lasers = append(lasers, laserState{X: l.x, Y: l.y, Facing: l.facing, Expire: l.expire})
	}

	for _, p := range t.players {
		msg := stateMsg{
			Kind: "updateGameState",
			GameState: gameState{
				Time:    t.lastUpdated,
				Stars:   t.stars,
				Players: players,
				Us:      p.state(),
				Lasers:  lasers,
			},
			Question: questionState{
				Definition: p.question.definition,
				Left:       p.question.left,
				Right:      p.question.right,
			},
		}

		data, err := json.Marshal(msg)
		if err != nil {
			continue
		}
		_ = p.w.WriteText(string(data))
	}
}

// intersectCircle solves the ray/circle quadratic in closed form: the
// hit requires a real root that lies forward along the ray.
func intersectCircle(cx, cy, radius, rx, ry, angle float64) bool {
	sin, cos := math.Sincos(angle)

	b := cy*sin - cx*cos + rx*cos - ry*sin
	disc := b*b - rx*rx - ry*ry + 2*cx*rx + 2*cy*ry - cy*cy - cx*cx + radius*radius

	return disc >= 0 && -b+math.Sqrt(disc) >= 0
}

// wrap folds n into [0, range).
func wrap(n, bound float64) float64 {
	n = math.Mod(n, bound)
	if n < 0 {
		n += bound
	}
	return n
}
