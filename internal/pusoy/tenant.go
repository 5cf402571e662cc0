/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package pusoy

import (
	"encoding/json"
	"math/rand/v2"
	"time"

	"github.com/Seednode/arcade/internal/gate"
	"github.com/Seednode/arcade/internal/ws"
)

const (
	// DefaultTurnTimeout forces a play for an idle human.
	DefaultTurnTimeout = 60 * time.Second

	// DefaultBotDelay keeps bot turns from resolving instantly.
	DefaultBotDelay = 2 * time.Second
)

type member struct {
	id       gate.PeerID
	w        *ws.Writer
	username string
}

type lobby struct {
	id      GameID
	host    member
	players []member
}

// playerNames lists the non-host members; the host always travels in
// its own field.
func (l *lobby) playerNames() []string {
	names := make([]string, 0, len(l.players))
	for _, p := range l.players {
		names = append(names, p.username)
	}
	return names
}

func (l *lobby) members() []member {
	return append([]member{l.host}, l.players...)
}

// Tenant runs lobbies and games. The gate serializes all callbacks, so
// no internal locking is needed.
type Tenant struct {
	words       *WordList
	gen         *idGenerator
	model       *PassModel
	rng         *rand.Rand
	now         func() time.Time
	turnTimeout time.Duration
	botDelay    time.Duration
	logf        func(format string, args ...any)

	unregistered map[gate.PeerID]*ws.Writer
	inGame       map[gate.PeerID]GameID
	lobbies      map[GameID]*lobby
	games        map[GameID]*session
}

type Option func(*Tenant)

func WithModel(m *PassModel) Option {
	return func(t *Tenant) { t.model = m }
}

func WithRand(rng *rand.Rand) Option {
	return func(t *Tenant) { t.rng = rng }
}

func WithClock(now func() time.Time) Option {
	return func(t *Tenant) { t.now = now }
}

func WithTurnTimeout(d time.Duration) Option {
	return func(t *Tenant) { t.turnTimeout = d }
}

func WithBotDelay(d time.Duration) Option {
	return func(t *Tenant) { t.botDelay = d }
}

func WithLogger(logf func(format string, args ...any)) Option {
	return func(t *Tenant) { t.logf = logf }
}

func New(words *WordList, opts ...Option) *Tenant {
	t := &Tenant{
		words:        words,
		rng:          rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:          time.Now,
		turnTimeout:  DefaultTurnTimeout,
		botDelay:     DefaultBotDelay,
		logf:         func(string, ...any) {},
		unregistered: make(map[gate.PeerID]*ws.Writer),
		inGame:       make(map[gate.PeerID]GameID),
		lobbies:      make(map[GameID]*lobby),
		games:        make(map[GameID]*session),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.gen = newIDGenerator(words.Len(), t.rng)

	return t
}

type envelope struct {
	Kind     string   `json:"kind"`
	Username string   `json:"username"`
	GameID   string   `json:"gameId"`
	Cards    []string `json:"cards"`
}

type createSuccessMsg struct {
	Kind   string `json:"kind"`
	Host   string `json:"host"`
	GameID string `json:"gameId"`
}

type joinSuccessMsg struct {
	Kind   string `json:"kind"`
	Host   string `json:"host"`
	GameID string `json:"gameId"`
}

type refreshLobbyMsg struct {
	Kind  string   `json:"kind"`
	Users []string `json:"users"`
}

type beginGameMsg struct {
	Kind  string   `json:"kind"`
	Host  string   `json:"host"`
	Users []string `json:"users"`
}

type kindOnlyMsg struct {
	Kind string `json:"kind"`
}

type dealMsg struct {
	Kind string   `json:"kind"`
	Hand []string `json:"hand"`
	Turn string   `json:"turn"`
}

type playMadeMsg struct {
	Kind      string         `json:"kind"`
	Player    string         `json:"player"`
	Cards     []string       `json:"cards"`
	Passed    bool           `json:"passed"`
	Turn      string         `json:"turn"`
	HandSizes map[string]int `json:"handSizes"`
}

type invalidPlayMsg struct {
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

type gameOverMsg struct {
	Kind   string `json:"kind"`
	Winner string `json:"winner"`
}

func send(w *ws.Writer, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	// a failed write means the peer is going away; the reader notices
	_ = w.WriteText(string(data))
}

func (t *Tenant) OnConnect(id gate.PeerID, w *ws.Writer) {
	t.unregistered[id] = w
}

func (t *Tenant) OnMessage(id gate.PeerID, msg ws.Message) error {
	text, ok := msg.Text()
	if !ok {
		return gate.ErrDisconnect
	}

	var env envelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return gate.ErrDisconnect
	}

	switch env.Kind {
	case "create":
		return t.handleCreate(id, env)
	case "join":
		return t.handleJoin(id, env)
	case "begin":
		return t.handleBegin(id)
	case "play":
		return t.handlePlay(id, env)
	default:
		return gate.ErrDisconnect
	}
}

func (t *Tenant) handleCreate(id gate.PeerID, env envelope) error {
	w, ok := t.unregistered[id]
	if !ok || env.Username == "" {
		return gate.ErrDisconnect
	}

	gid, err := t.gen.next()
	if err != nil {
		t.logf("PUSOY: %v", err)
		return gate.ErrDisconnect
	}

	delete(t.unregistered, id)
	t.inGame[id] = gid
	t.lobbies[gid] = &lobby{
		id:   gid,
		host: member{id: id, w: w, username: env.Username},
	}

	send(w, createSuccessMsg{Kind: "createSuccess", Host: env.Username, GameID: t.words.Encode(gid)})

	return nil
}

func (t *Tenant) handleJoin(id gate.PeerID, env envelope) error {
	w, ok := t.unregistered[id]
	if !ok || env.Username == "" {
		return gate.ErrDisconnect
	}

	gid, ok := t.words.Decode(env.GameID)
	if !ok {
		send(w, kindOnlyMsg{Kind: "invalidGameId"})
		return nil
	}

	lob, ok := t.lobbies[gid]
	if !ok {
		send(w, kindOnlyMsg{Kind: "invalidGameId"})
		return nil
	}

	if len(lob.players)+1 >= numSeats {
		send(w, kindOnlyMsg{Kind: "lobbyFull"})
		return nil
	}

	delete(t.unregistered, id)
	t.inGame[id] = gid
	lob.players = append(lob.players, member{id: id, w: w, username: env.Username})

	send(w, joinSuccessMsg{Kind: "joinSuccess", Host: lob.host.username, GameID: env.GameID})

	refresh := refreshLobbyMsg{Kind: "refreshLobby", Users: lob.playerNames()}
	for _, m := range lob.members() {
		send(m.w, refresh)
	}

	return nil
}

func (t *Tenant) handleBegin(id gate.PeerID) error {
	gid, ok := t.inGame[id]
	if !ok {
		return gate.ErrDisconnect
	}

	lob, ok := t.lobbies[gid]
	if !ok || lob.host.id != id {
		return gate.ErrDisconnect
	}

	delete(t.lobbies, gid)
	s := t.newSession(lob)
	t.games[gid] = s

	begin := beginGameMsg{Kind: "beginGame", Host: lob.host.username, Users: lob.playerNames()}
	for _, m := range lob.members() {
		send(m.w, begin)
	}

	s.sendDeals()

	return nil
}

func (t *Tenant) handlePlay(id gate.PeerID, env envelope) error {
	gid, ok := t.inGame[id]
	if !ok {
		return gate.ErrDisconnect
	}

	s, ok := t.games[gid]
	if !ok {
		// playing from inside a lobby is a protocol violation
		return gate.ErrDisconnect
	}

	seat := s.seatOf(id)
	if seat == nil {
		return gate.ErrDisconnect
	}

	if s.currentSeat() != seat {
		send(seat.w, invalidPlayMsg{Kind: "invalidPlay", Reason: "not your turn"})
		return nil
	}

	play, reason := parsePlay(env.Cards)
	if reason != "" {
		send(seat.w, invalidPlayMsg{Kind: "invalidPlay", Reason: reason})
		return nil
	}

	if err := s.game.canPlay(play); err != nil {
		send(seat.w, invalidPlayMsg{Kind: "invalidPlay", Reason: err.Error()})
		return nil
	}

	t.applyPlay(gid, s, play)

	return nil
}

func (t *Tenant) OnDisconnect(id gate.PeerID) {
	if _, ok := t.unregistered[id]; ok {
		delete(t.unregistered, id)
		return
	}

	gid, ok := t.inGame[id]
	if !ok {
		return
	}
	delete(t.inGame, id)

	if lob, ok := t.lobbies[gid]; ok {
		t.leaveLobby(gid, lob, id)
		return
	}

	if s, ok := t.games[gid]; ok {
		t.leaveGame(gid, s, id)
	}
}

// leaveLobby: a departing host strands the players, so the lobby is
// destroyed; a departing player just shrinks it.
func (t *Tenant) leaveLobby(gid GameID, lob *lobby, id gate.PeerID) {
	if lob.host.id == id {
		for _, p := range lob.players {
			send(p.w, kindOnlyMsg{Kind: "hostAbandoned"})
			delete(t.inGame, p.id)
			t.unregistered[p.id] = p.w
		}
		delete(t.lobbies, gid)
		t.gen.free(gid)
		return
	}

	for i, p := range lob.players {
		if p.id == id {
			lob.players = append(lob.players[:i], lob.players[i+1:]...)
			break
		}
	}

	refresh := refreshLobbyMsg{Kind: "refreshLobby", Users: lob.playerNames()}
	for _, m := range lob.members() {
		send(m.w, refresh)
	}
}

// leaveGame turns the vacated seat over to a bot; the session only dies
// once no humans remain.
func (t *Tenant) leaveGame(gid GameID, s *session, id gate.PeerID) {
	if seat := s.seatOf(id); seat != nil {
		seat.human = false
		seat.w = nil
	}

	if !s.anyHumans() {
		delete(t.games, gid)
		t.gen.free(gid)
	}
}

func (t *Tenant) OnTick() {
	for gid, s := range t.games {
		t.tickSession(gid, s)
	}
}
