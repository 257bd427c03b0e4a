package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/neuraledu/neural-conquest/internal/game"
	"github.com/neuraledu/neural-conquest/internal/models"
	"github.com/neuraledu/neural-conquest/internal/sse"
)

// HandleEvents streams match updates over SSE at /events/{sessionID}
func (ctx *Context) HandleEvents(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimPrefix(r.URL.Path, "/events/")
	if sessionID == "" || strings.Contains(sessionID, "/") {
		http.Error(w, "Invalid URL", http.StatusBadRequest)
		return
	}

	eng, playerID, err := ctx.getSessionAndPlayer(r, sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	client := make(chan models.SSEMessage, game.SSEBufferSize)
	state := eng.State()
	sse.AddClient(state, client, playerID)
	defer sse.RemoveClient(state, client)

	// Send the current state immediately so the client never renders blind
	if payload, err := json.Marshal(eng.Snapshot()); err == nil {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", sse.EventStateUpdate, payload)
		flusher.Flush()
	}

	log.Printf("SSE connected: session=%s player=%s", sessionID, playerID)
	for {
		select {
		case <-r.Context().Done():
			log.Printf("SSE disconnected: session=%s player=%s", sessionID, playerID)
			return
		case msg := <-client:
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			flusher.Flush()
		}
	}
}
