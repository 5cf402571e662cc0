/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package history

import (
	"encoding/json"

	"github.com/Seednode/arcade/internal/gate"
	"github.com/Seednode/arcade/internal/ws"
)

// GameID numbers quiz lobbies in creation order.
type GameID int

type user struct {
	w        *ws.Writer
	username string
	gameID   GameID // zero means unassigned
}

type lobby struct {
	host  gate.PeerID
	peers []gate.PeerID
	query *Query
}

// Tenant tracks every connected peer and the lobbies and running games
// they belong to. The gate serializes all access.
type Tenant struct {
	users   map[gate.PeerID]*user
	lobbies map[GameID]*lobby
	games   map[GameID]*quizGame
	nextID  GameID
	vocab   *Vocabulary
	logf    func(format string, args ...any)
}

type Option func(*Tenant)

func WithLogger(logf func(format string, args ...any)) Option {
	return func(t *Tenant) { t.logf = logf }
}

func New(vocab *Vocabulary, opts ...Option) *Tenant {
	t := &Tenant{
		users:   make(map[gate.PeerID]*user),
		lobbies: make(map[GameID]*lobby),
		games:   make(map[GameID]*quizGame),
		vocab:   vocab,
		logf:    func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type envelope struct {
	Kind     string    `json:"kind"`
	Username string    `json:"username"`
	ID       *int      `json:"id"`
	Settings *settings `json:"settings"`
	Answer   *int      `json:"answer"`
}

type settings struct {
	StartSection string `json:"startSection"`
	EndSection   string `json:"endSection"`
}

type kindOnlyMsg struct {
	Kind string `json:"kind"`
}

type createSuccessMsg struct {
	Kind     string `json:"kind"`
	HostName string `json:"hostName"`
	GameID   int    `json:"gameId"`
}

type createFailedMsg struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type joinSuccessMsg struct {
	Kind     string `json:"kind"`
	HostName string `json:"hostName"`
}

type refreshLobbyMsg struct {
	Kind  string   `json:"kind"`
	Users []string `json:"users"`
}

type startingGameMsg struct {
	Kind  string   `json:"kind"`
	Host  string   `json:"host"`
	Users []string `json:"users"`
}

func send(w *ws.Writer, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = w.WriteText(string(data))
}

func (t *Tenant) OnConnect(id gate.PeerID, w *ws.Writer) {
	t.users[id] = &user{w: w}
}

func (t *Tenant) OnMessage(id gate.PeerID, msg ws.Message) error {
	u, ok := t.users[id]
	if !ok {
		return gate.ErrDisconnect
	}

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
		return t.handleCreate(id, u, env)
	case "join":
		return t.handleJoin(id, u, env)
	case "start":
		return t.handleStart(id, u)
	default:
		if game, ok := t.games[u.gameID]; ok {
			return game.receive(t, id, env)
		}
		return nil
	}
}

func (t *Tenant) handleCreate(id gate.PeerID, u *user, env envelope) error {
	if env.Username == "" || env.Settings == nil {
		return gate.ErrDisconnect
	}
	u.username = env.Username

	query, err := t.buildQuery(*env.Settings)
	if err != nil {
		send(u.w, createFailedMsg{Kind: "createFailed", Message: err.Error()})
		return nil
	}

	t.nextID++
	gameID := t.nextID
	t.lobbies[gameID] = &lobby{host: id, query: query}
	u.gameID = gameID

	t.logf("HISTORY: %s created game %d", id, gameID)
	send(u.w, createSuccessMsg{Kind: "createSuccess", HostName: u.username, GameID: int(gameID)})

	return nil
}

func (t *Tenant) buildQuery(s settings) (*Query, error) {
	start, err := parseLocation(s.StartSection)
	if err != nil {
		return nil, err
	}
	end, err := parseLocation(s.EndSection)
	if err != nil {
		return nil, err
	}
	return t.vocab.NewQuery(start, end)
}

func (t *Tenant) handleJoin(id gate.PeerID, u *user, env envelope) error {
	if env.Username == "" {
		return gate.ErrDisconnect
	}
	u.username = env.Username

	if env.ID == nil {
		send(u.w, kindOnlyMsg{Kind: "invalidGameId"})
		return nil
	}

	gameID := GameID(*env.ID)
	l, ok := t.lobbies[gameID]
	if !ok {
		send(u.w, kindOnlyMsg{Kind: "invalidGameId"})
		return nil
	}

	if containsPeer(l.peers, id) {
		return nil
	}

	l.peers = append(l.peers, id)
	u.gameID = gameID

	send(u.w, joinSuccessMsg{Kind: "joinSuccess", HostName: t.username(l.host)})
	t.broadcast(l.host, l.peers, refreshLobbyMsg{Kind: "refreshLobby", Users: t.usernames(l.peers)})

	return nil
}

func (t *Tenant) handleStart(id gate.PeerID, u *user) error {
	l, ok := t.lobbies[u.gameID]
	if !ok || l.host != id {
		return nil
	}
	delete(t.lobbies, u.gameID)

	t.broadcast(l.host, l.peers, startingGameMsg{
		Kind:  "startingGame",
		Host:  t.username(l.host),
		Users: t.usernames(l.peers),
	})

	t.games[u.gameID] = newQuizGame(t, l)
	t.logf("HISTORY: game %d started with %d players", u.gameID, len(l.peers))

	return nil
}

func (t *Tenant) OnDisconnect(id gate.PeerID) {
	u, ok := t.users[id]
	if !ok {
		return
	}
	defer delete(t.users, id)

	if l, ok := t.lobbies[u.gameID]; ok {
		if l.host == id {
			t.broadcast(l.host, l.peers, kindOnlyMsg{Kind: "hostAbandoned"})
			delete(t.lobbies, u.gameID)
		} else if containsPeer(l.peers, id) {
			l.peers = removePeer(l.peers, id)
			t.broadcast(l.host, l.peers, refreshLobbyMsg{Kind: "refreshLobby", Users: t.usernames(l.peers)})
		}
		return
	}

	if game, ok := t.games[u.gameID]; ok {
		if game.host == id {
			t.broadcast(game.host, game.peers, kindOnlyMsg{Kind: "hostAbandoned"})
			delete(t.games, u.gameID)
		} else {
			game.leave(id)
		}
	}
}

func (t *Tenant) OnTick() {}

func (t *Tenant) username(id gate.PeerID) string {
	if u, ok := t.users[id]; ok {
		return u.username
	}
	return ""
}

func (t *Tenant) usernames(peers []gate.PeerID) []string {
	names := make([]string, 0, len(peers))
	for _, id := range peers {
		names = append(names, t.username(id))
	}
	return names
}

func (t *Tenant) writer(id gate.PeerID) *ws.Writer {
	if u, ok := t.users[id]; ok {
		return u.w
	}
	return nil
}

// broadcast sends to the host and every peer still connected.
func (t *Tenant) broadcast(host gate.PeerID, peers []gate.PeerID, v any) {
	if w := t.writer(host); w != nil {
		send(w, v)
	}
	for _, id := range peers {
		if w := t.writer(id); w != nil {
			send(w, v)
		}
	}
}

func containsPeer(peers []gate.PeerID, id gate.PeerID) bool {
	for _, have := range peers {
		if have == id {
			return true
		}
	}
	return false
}

func removePeer(peers []gate.PeerID, id gate.PeerID) []gate.PeerID {
	out := peers[:0]
	for _, have := range peers {
		if have != id {
			out = append(out, have)
		}
	}
	return out
}
