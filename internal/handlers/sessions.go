package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/neuraledu/neural-conquest/internal/game"
	"github.com/neuraledu/neural-conquest/internal/models"
	"github.com/neuraledu/neural-conquest/internal/sse"
)

// HandleCreateSession starts a new match from the setup configuration
func (ctx *Context) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var cfg models.MatchConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "Invalid configuration", http.StatusBadRequest)
		return
	}
	if cfg.DurationSeconds <= 0 {
		if cfg.Mode == "multiplayer" {
			cfg.DurationSeconds = game.MultiMatchSeconds
		} else {
			cfg.DurationSeconds = game.SingleMatchSeconds
		}
	}

	bank, err := ctx.DB.LoadQuestionBank(cfg.Topic)
	if err != nil {
		// Question provider degrades to synthesis; do not fail setup
		log.Printf("HandleCreateSession: question bank unavailable for %q: %v", cfg.Topic, err)
	}

	eng := game.NewEngine(cfg, bank, nil)
	ctx.wireEngine(eng)

	snap := eng.Snapshot()
	if ctx.Store.CodeExists(snap.JoinCode) {
		log.Printf("HandleCreateSession: join code collision on %s", snap.JoinCode)
	}
	ctx.Store.Set(snap.ID, snap.JoinCode, eng)

	log.Printf("Created session: id=%s topic=%q mode=%s players=%d territories=%d",
		snap.ID, snap.Topic, snap.Mode, len(snap.Players), len(snap.Territories))

	setPlayerCookie(w, snap.Players[0].ID)
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "state": snap})
}

// wireEngine connects an engine's change feed to persistence and SSE push
func (ctx *Context) wireEngine(eng *game.Engine) {
	eng.SetOnChange(func(snap *models.GameState) {
		ctx.Saver.Enqueue(snap)

		payload, err := json.Marshal(snap)
		if err != nil {
			log.Printf("wireEngine: encoding snapshot for %s: %v", snap.ID, err)
			return
		}
		event := sse.EventStateUpdate
		if snap.Phase == models.PhaseGameOver {
			event = sse.EventGameOver
		}
		sse.Broadcast(eng.State(), event, string(payload))
	})
}

// HandleJoinByCode lets a player join a multiplayer match by its code
func (ctx *Context) HandleJoinByCode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	req.Name = strings.TrimSpace(req.Name)
	if req.Code == "" || req.Name == "" {
		http.Error(w, "Code and name are required", http.StatusBadRequest)
		return
	}

	eng, exists := ctx.Store.GetByCode(req.Code)
	if !exists {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	player, err := eng.Join(req.Name)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	log.Printf("Player joined session: code=%s playerID=%s name=%s", req.Code, player.ID, player.Name)

	setPlayerCookie(w, player.ID)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "player": player, "state": eng.Snapshot()})
}

// HandleSessionRoutes dispatches everything under /api/sessions/
func (ctx *Context) HandleSessionRoutes(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/sessions/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		http.Error(w, "Invalid URL", http.StatusBadRequest)
		return
	}
	sessionID := parts[0]

	switch {
	case len(parts) == 1:
		ctx.handleSessionState(w, r, sessionID)
	case len(parts) == 2 && parts[1] == "join":
		ctx.handleJoinSession(w, r, sessionID)
	case len(parts) == 2 && parts[1] == "start":
		ctx.handleStartMatch(w, r, sessionID)
	case len(parts) == 2 && parts[1] == "answer":
		ctx.handleAnswer(w, r, sessionID)
	case len(parts) == 2 && parts[1] == "end":
		ctx.handleEndSession(w, r, sessionID)
	case len(parts) == 2 && parts[1] == "invite.png":
		ctx.handleInviteQR(w, r, sessionID)
	case len(parts) == 3 && parts[1] == "territories":
		http.Error(w, "Invalid URL", http.StatusBadRequest)
	case len(parts) == 4 && parts[1] == "territories" && parts[3] == "conquest":
		ctx.handleConquest(w, r, sessionID, parts[2])
	default:
		http.NotFound(w, r)
	}
}

// handleSessionState returns a snapshot; this is the polling fallback for
// clients not using the SSE stream
func (ctx *Context) handleSessionState(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	eng, exists := ctx.Store.Get(sessionID)
	if !exists {
		// Fall back to the persisted copy so abandoned matches can be resumed
		snap, err := ctx.DB.LoadSession(sessionID)
		if err != nil {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		bank, bankErr := ctx.DB.LoadQuestionBank(snap.Topic)
		if bankErr != nil {
			log.Printf("handleSessionState: question bank unavailable for %q: %v", snap.Topic, bankErr)
		}
		eng = game.NewEngineFromSnapshot(snap, bank, nil)
		ctx.wireEngine(eng)
		eng.Resume()
		ctx.Store.Set(snap.ID, snap.JoinCode, eng)
		log.Printf("Restored session from storage: id=%s", snap.ID)
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "state": eng.Snapshot()})
}

// handleJoinSession joins by session id; invite links resolve the id first
// and land here
func (ctx *Context) handleJoinSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	eng, exists := ctx.Store.Get(sessionID)
	if !exists {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	player, err := eng.Join(req.Name)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	setPlayerCookie(w, player.ID)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "player": player, "state": eng.Snapshot()})
}

func (ctx *Context) handleStartMatch(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	eng, _, err := ctx.getSessionAndPlayer(r, sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err := eng.Start(); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "state": eng.Snapshot()})
}

// handleConquest begins a conquest attempt on a territory and returns the
// question to answer. The answer index is never leaked to the client.
func (ctx *Context) handleConquest(w http.ResponseWriter, r *http.Request, sessionID, territoryID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	eng, playerID, err := ctx.getSessionAndPlayer(r, sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	question, err := eng.BeginConquest(playerID, territoryID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"question": map[string]any{
			"id":       question.ID,
			"question": question.Text,
			"options":  question.Options,
			"concept":  question.Concept,
			"topic":    question.Topic,
		},
	})
}

func (ctx *Context) handleAnswer(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	eng, playerID, err := ctx.getSessionAndPlayer(r, sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	var req struct {
		QuestionID  string `json:"questionId"`
		AnswerIndex int    `json:"answerIndex"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result, err := eng.SubmitAnswer(playerID, req.QuestionID, req.AnswerIndex)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "result": result, "state": eng.Snapshot()})
}

// handleEndSession tears the match down: the countdown must not keep running
// against a discarded state
func (ctx *Context) handleEndSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	eng, _, err := ctx.getSessionAndPlayer(r, sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	eng.Close()
	snap := eng.Snapshot()
	if err := ctx.DB.SaveSession(snap); err != nil {
		log.Printf("handleEndSession: final save for %s: %v", sessionID, err)
	}
	ctx.Store.Delete(sessionID)

	log.Printf("Session ended: id=%s phase=%s", sessionID, snap.Phase)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleInviteQR renders a QR code for the multiplayer join link
func (ctx *Context) handleInviteQR(w http.ResponseWriter, r *http.Request, sessionID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	eng, exists := ctx.Store.Get(sessionID)
	if !exists {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	snap := eng.Snapshot()
	joinURL := ctx.BaseURL + "/join?code=" + snap.JoinCode
	png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to render invite", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
