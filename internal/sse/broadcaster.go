package sse

import (
	"log"
	"os"
	"time"

	"github.com/neuraledu/neural-conquest/internal/game"
	"github.com/neuraledu/neural-conquest/internal/models"
)

var debug bool

func init() {
	debug = os.Getenv("DEBUG") != ""
}

// AddClient registers a push channel for a player on a match
func AddClient(state *models.GameState, client chan models.SSEMessage, playerID string) {
	state.Lock()
	defer state.Unlock()

	// Warn if the same player has multiple SSE connections
	dup := 0
	for _, pid := range state.GetSSEClients() {
		if pid == playerID {
			dup++
		}
	}
	if dup > 0 {
		log.Printf("WARN: player %s opened %d additional SSE connection(s)", playerID, dup)
	}
	state.AddSSEClient(client, playerID)
}

// RemoveClient removes an SSE client from the match
func RemoveClient(state *models.GameState, client chan models.SSEMessage) {
	state.Lock()
	defer state.Unlock()
	state.RemoveSSEClient(client)
	if debug {
		log.Printf("removeSSEClient: client removed, now have %d total clients", state.SSEClientCount())
	}
}

// Broadcast sends a message to all connected SSE clients
func Broadcast(state *models.GameState, event, data string) {
	state.RLock()
	// Collect all client channels while holding the lock
	clients := state.GetSSEClients()
	state.RUnlock()

	if debug {
		log.Printf("broadcastSSE: event=%s to %d clients", event, len(clients))
	}

	// Send messages WITHOUT holding the lock
	msg := models.SSEMessage{Event: event, Data: data}
	for client := range clients {
		select {
		case client <- msg:
			// Message sent successfully
		case <-time.After(time.Duration(game.SSETimeoutSeconds) * time.Second):
			// Timeout - skip this client to avoid blocking
		}
	}
}
