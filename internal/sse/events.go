package sse

// SSE event type constants
const (
	EventStateUpdate  = "state-update"
	EventGameOver     = "game-over"
	EventPlayerJoined = "player-joined"
	EventErrorMessage = "error-message"
)
