/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package arena is the minimal shared-canvas tenant: peers report their
// own position and periodically learn everyone else's.
package arena

import (
	"encoding/json"
	"math/rand/v2"

	"github.com/Seednode/arcade/internal/gate"
	"github.com/Seednode/arcade/internal/ws"
)

const (
	mapWidth  = 9.0
	mapHeight = 9.0
)

type color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

type player struct {
	x, y  float64
	color color
	w     *ws.Writer
}

// Tenant holds every connected peer; the gate serializes all access.
type Tenant struct {
	players map[gate.PeerID]*player
	rng     *rand.Rand
}

type Option func(*Tenant)

func WithRand(rng *rand.Rand) Option {
	return func(t *Tenant) { t.rng = rng }
}

func New(opts ...Option) *Tenant {
	t := &Tenant{
		players: make(map[gate.PeerID]*player),
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tenant) OnConnect(id gate.PeerID, w *ws.Writer) {
	t.players[id] = &player{
		x: t.rng.Float64() * mapWidth,
		y: t.rng.Float64() * mapHeight,
		color: color{
			R: uint8(t.rng.IntN(256)),
			G: uint8(t.rng.IntN(256)),
			B: uint8(t.rng.IntN(256)),
		},
		w: w,
	}
}

type position struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func (t *Tenant) OnMessage(id gate.PeerID, msg ws.Message) error {
	text, ok := msg.Text()
	if !ok {
		return gate.ErrDisconnect
	}

	var pos position
	if err := json.Unmarshal([]byte(text), &pos); err != nil || pos.X == nil || pos.Y == nil {
		return gate.ErrDisconnect
	}

	p, ok := t.players[id]
	if !ok {
		return gate.ErrDisconnect
	}
	p.x = *pos.X
	p.y = *pos.Y

	return nil
}

func (t *Tenant) OnDisconnect(id gate.PeerID) {
	delete(t.players, id)
}

type playerState struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color color   `json:"color"`
}

// OnTick sends each peer the positions of everyone but themselves.
func (t *Tenant) OnTick() {
	for id, p := range t.players {
		others := make([]playerState, 0, len(t.players)-1)
		for otherID, other := range t.players {
			if otherID == id {
				continue
			}
			others = append(others, playerState{X: other.x, Y: other.y, Color: other.color})
		}

		data, err := json.Marshal(others)
		if err != nil {
			continue
		}
		_ = p.w.WriteText(string(data))
	}
}
