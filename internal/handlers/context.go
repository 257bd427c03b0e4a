package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/neuraledu/neural-conquest/internal/game"
	"github.com/neuraledu/neural-conquest/internal/store"
)

// Context holds shared application dependencies
type Context struct {
	Store   *store.SessionStore
	DB      *store.DB
	Saver   *store.Autosaver
	BaseURL string
}

// getSessionAndPlayer resolves the engine and the caller's player id from the
// session cookie
func (ctx *Context) getSessionAndPlayer(r *http.Request, sessionID string) (*game.Engine, string, error) {
	eng, exists := ctx.Store.Get(sessionID)
	if !exists {
		return nil, "", fmt.Errorf("session not found")
	}
	cookie, err := r.Cookie("player_id")
	if err != nil {
		return nil, "", fmt.Errorf("no session cookie")
	}
	return eng, cookie.Value, nil
}

func setPlayerCookie(w http.ResponseWriter, playerID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "player_id",
		Value:    playerID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		// Secure: true, // enable when serving over HTTPS
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeEngineError maps engine sentinels to HTTP statuses
func writeEngineError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, game.ErrOutOfTurn), errors.Is(err, game.ErrConquestPending),
		errors.Is(err, game.ErrTerritoryControlled), errors.Is(err, game.ErrMatchAlreadyStarted):
		status = http.StatusConflict
	case errors.Is(err, game.ErrUnknownTerritory), errors.Is(err, game.ErrUnknownPlayer),
		errors.Is(err, game.ErrNoQuestionAvailable):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrInsufficientSynapse), errors.Is(err, game.ErrInvalidAnswerIndex),
		errors.Is(err, game.ErrMatchFull):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]any{"success": false, "error": err.Error()})
}
