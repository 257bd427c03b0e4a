package models

import (
	"sync"
	"time"
)

// ConnectionStats summarizes the derived neural-connection graph for one
// territory or one player's whole zone
type ConnectionStats struct {
	TotalPossible int     `json:"totalPossible"`
	Formed        int     `json:"formed"`
	Completion    float64 `json:"completion"`
}

// MatchConfig is consumed once at SETUP to seed players, territories and the
// timer
type MatchConfig struct {
	Mode            string             `json:"gameMode"` // "ai" or "multiplayer"
	Topic           string             `json:"topic"`
	PlayerName      string             `json:"playerName"`
	MaxPlayers      int                `json:"maxPlayers"`
	Invites         []string           `json:"invites"`
	DurationSeconds int                `json:"durationSeconds"`
	Descriptors     []ObjectDescriptor `json:"customObjects"`
}

// SSEMessage represents a message pushed to connected clients
type SSEMessage struct {
	Event string // event type (e.g. "state-update", "game-over")
	Data  string // JSON payload
}

// GameState holds everything about one match. It is exclusively owned by the
// engine; external consumers only ever see copies made by Clone.
type GameState struct {
	ID       string `json:"gameId"`
	JoinCode string `json:"joinCode"`
	Topic    string `json:"topic"`
	Mode     string `json:"mode"`

	Phase              Phase        `json:"phase"`
	CurrentPlayerIndex int          `json:"currentPlayerIndex"`
	Players            []*Player    `json:"players"`
	Territories        []*Territory `json:"territories"`
	Turn               int          `json:"turn"`
	TimerRemaining     int          `json:"timerSecondsRemaining"`
	Winner             string       `json:"winner"`
	EndReason          string       `json:"endReason"`

	UsedQuestions   map[string]bool            `json:"usedQuestions"`
	ConnectionStats map[string]ConnectionStats `json:"connectionStats"`
	Invites         []string                   `json:"invites,omitempty"`

	CreatedAt   time.Time `json:"createdAt"`
	LastUpdated time.Time `json:"lastUpdated"`

	mu         sync.RWMutex
	sseClients map[chan SSEMessage]string // channel -> playerID
}

// Lock acquires the state's write lock
func (g *GameState) Lock() { g.mu.Lock() }

// Unlock releases the state's write lock
func (g *GameState) Unlock() { g.mu.Unlock() }

// RLock acquires the state's read lock
func (g *GameState) RLock() { g.mu.RLock() }

// RUnlock releases the state's read lock
func (g *GameState) RUnlock() { g.mu.RUnlock() }

// CurrentPlayer returns the player whose turn it is (must be called with the
// lock held)
func (g *GameState) CurrentPlayer() *Player {
	if len(g.Players) == 0 {
		return nil
	}
	return g.Players[g.CurrentPlayerIndex%len(g.Players)]
}

// PlayerByID finds a player by id (must be called with the lock held)
func (g *GameState) PlayerByID(id string) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// TerritoryByID finds a territory by id (must be called with the lock held)
func (g *GameState) TerritoryByID(id string) *Territory {
	for _, t := range g.Territories {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Clone returns a deep copy safe to hand to renderers and persistence (must
// be called with at least the read lock held)
func (g *GameState) Clone() *GameState {
	cp := &GameState{
		ID:                 g.ID,
		JoinCode:           g.JoinCode,
		Topic:              g.Topic,
		Mode:               g.Mode,
		Phase:              g.Phase,
		CurrentPlayerIndex: g.CurrentPlayerIndex,
		Turn:               g.Turn,
		TimerRemaining:     g.TimerRemaining,
		Winner:             g.Winner,
		EndReason:          g.EndReason,
		CreatedAt:          g.CreatedAt,
		LastUpdated:        g.LastUpdated,
	}
	cp.Players = make([]*Player, len(g.Players))
	for i, p := range g.Players {
		pc := *p
		pc.Territories = append([]string(nil), p.Territories...)
		cp.Players[i] = &pc
	}
	cp.Territories = make([]*Territory, len(g.Territories))
	for i, t := range g.Territories {
		tc := *t
		cp.Territories[i] = &tc
	}
	cp.UsedQuestions = make(map[string]bool, len(g.UsedQuestions))
	for id, used := range g.UsedQuestions {
		cp.UsedQuestions[id] = used
	}
	cp.ConnectionStats = make(map[string]ConnectionStats, len(g.ConnectionStats))
	for id, cs := range g.ConnectionStats {
		cp.ConnectionStats[id] = cs
	}
	cp.Invites = append([]string(nil), g.Invites...)
	return cp
}

// GetSSEClients returns a copy of the SSE clients map (must be called with
// the lock held)
func (g *GameState) GetSSEClients() map[chan SSEMessage]string {
	clients := make(map[chan SSEMessage]string, len(g.sseClients))
	for ch, pid := range g.sseClients {
		clients[ch] = pid
	}
	return clients
}

// AddSSEClient registers a push channel for a player
func (g *GameState) AddSSEClient(client chan SSEMessage, playerID string) {
	if g.sseClients == nil {
		g.sseClients = make(map[chan SSEMessage]string)
	}
	g.sseClients[client] = playerID
}

// RemoveSSEClient removes a push channel
func (g *GameState) RemoveSSEClient(client chan SSEMessage) {
	delete(g.sseClients, client)
}

// SSEClientCount returns the number of connected push channels
func (g *GameState) SSEClientCount() int {
	return len(g.sseClients)
}
