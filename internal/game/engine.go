package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/neuraledu/neural-conquest/internal/models"
)

// Engine is the turn and phase controller. It exclusively owns its GameState:
// every mutation (human action, AI action, timer tick) runs under the state's
// write lock, so attempts can never interleave their partial updates.
// External consumers only ever receive snapshots.
type Engine struct {
	state    *models.GameState
	provider *QuestionProvider
	rng      Rand
	timer    *MatchTimer

	maxPlayers int
	aiDelay    time.Duration
	autoAI     bool
	onChange   func(*models.GameState)

	pending *pendingConquest
}

// pendingConquest is the single in-flight attempt owned by the CONQUEST phase
type pendingConquest struct {
	playerID    string
	territoryID string
	questionID  string
	correct     int
	optionCount int
}

// NewEngine seeds a match from its configuration. The match stays in SETUP
// until Start is called.
func NewEngine(cfg models.MatchConfig, bank []models.Question, rng Rand) *Engine {
	if rng == nil {
		rng = NewRand()
	}

	mode := cfg.Mode
	if mode == "" {
		mode = "ai"
	}
	topic := cfg.Topic
	if topic == "" {
		topic = "General Knowledge"
	}
	duration := cfg.DurationSeconds
	if duration <= 0 {
		duration = DefaultMatchSeconds
	}
	maxPlayers := cfg.MaxPlayers
	if maxPlayers <= 0 {
		maxPlayers = 4
	}

	name := cfg.PlayerName
	if name == "" {
		name = "Player"
	}
	players := []*models.Player{{
		ID:      uuid.New().String(),
		Name:    name,
		Synapse: HumanStartingSynapse,
		Color:   DefaultPlayerColors[0],
	}}
	if mode == "ai" {
		players = append(players, &models.Player{
			ID:      uuid.New().String(),
			Name:    "Neural AI",
			IsAI:    true,
			Synapse: AIStartingSynapse,
			Color:   AIColor,
		})
	}

	now := time.Now()
	state := &models.GameState{
		ID:              uuid.New().String(),
		JoinCode:        GenerateJoinCode(),
		Topic:           topic,
		Mode:            mode,
		Phase:           models.PhaseSetup,
		Players:         players,
		Territories:     GenerateTerritories(cfg.Descriptors),
		Turn:            1,
		TimerRemaining:  duration,
		UsedQuestions:   make(map[string]bool),
		ConnectionStats: make(map[string]models.ConnectionStats),
		Invites:         cfg.Invites,
		CreatedAt:       now,
		LastUpdated:     now,
	}

	return &Engine{
		state:      state,
		provider:   NewQuestionProvider(bank, rng),
		rng:        rng,
		maxPlayers: maxPlayers,
		aiDelay:    1500 * time.Millisecond,
		autoAI:     true,
	}
}

// NewEngineFromSnapshot rebuilds an engine around a persisted state. A
// snapshot saved mid-CONQUEST is rewound to PLAYER_TURN because the pending
// question cannot be restored.
func NewEngineFromSnapshot(snap *models.GameState, bank []models.Question, rng Rand) *Engine {
	if rng == nil {
		rng = NewRand()
	}
	state := snap.Clone()
	if state.Phase == models.PhaseConquest {
		state.Phase = models.PhasePlayerTurn
	}
	if state.UsedQuestions == nil {
		state.UsedQuestions = make(map[string]bool)
	}
	if state.ConnectionStats == nil {
		state.ConnectionStats = make(map[string]models.ConnectionStats)
	}
	return &Engine{
		state:      state,
		provider:   NewQuestionProvider(bank, rng),
		rng:        rng,
		maxPlayers: len(state.Players),
		aiDelay:    1500 * time.Millisecond,
		autoAI:     true,
	}
}

// SetOnChange registers a callback invoked with a fresh snapshot after every
// completed mutation. The callback runs outside the state lock.
func (e *Engine) SetOnChange(fn func(*models.GameState)) { e.onChange = fn }

// SetAIDelay adjusts the simulated AI thinking delay
func (e *Engine) SetAIDelay(d time.Duration) { e.aiDelay = d }

// SetAutoAI controls whether the engine schedules AI turns itself. Disabled
// in tests, which drive RunAITurn directly.
func (e *Engine) SetAutoAI(enabled bool) { e.autoAI = enabled }

// State exposes the live state for SSE client registration only; all reads
// must go through its lock and all mutation through engine methods.
func (e *Engine) State() *models.GameState { return e.state }

// Snapshot returns a deep copy of the current state
func (e *Engine) Snapshot() *models.GameState {
	e.state.RLock()
	defer e.state.RUnlock()
	return e.state.Clone()
}

// Join adds a human player while the match is still in SETUP
func (e *Engine) Join(name string) (*models.Player, error) {
	e.state.Lock()
	if e.state.Mode != "multiplayer" {
		e.state.Unlock()
		return nil, fmt.Errorf("%w: single-opponent match", ErrMatchFull)
	}
	if e.state.Phase != models.PhaseSetup {
		e.state.Unlock()
		return nil, ErrMatchAlreadyStarted
	}
	if len(e.state.Players) >= e.maxPlayers {
		e.state.Unlock()
		return nil, ErrMatchFull
	}

	p := &models.Player{
		ID:      uuid.New().String(),
		Name:    name,
		Synapse: HumanStartingSynapse,
		Color:   DefaultPlayerColors[len(e.state.Players)%len(DefaultPlayerColors)],
	}
	e.state.Players = append(e.state.Players, p)
	joined := *p
	snap := e.touch()
	e.state.Unlock()

	e.emit(snap)
	return &joined, nil
}

// Start moves the match from SETUP to the first player turn and starts the
// countdown
func (e *Engine) Start() error {
	e.state.Lock()
	if e.state.Phase != models.PhaseSetup {
		e.state.Unlock()
		return ErrMatchAlreadyStarted
	}
	e.state.Phase = models.PhasePlayerTurn
	e.state.CurrentPlayerIndex = 0
	snap := e.touch()
	e.state.Unlock()

	e.timer = NewMatchTimer(time.Second, e.tick)
	e.emit(snap)
	return nil
}

// Resume restarts the countdown for a match rebuilt from a snapshot
func (e *Engine) Resume() {
	e.state.RLock()
	over := e.state.Phase == models.PhaseGameOver || e.state.Phase == models.PhaseSetup
	e.state.RUnlock()
	if over || e.timer != nil {
		return
	}
	e.timer = NewMatchTimer(time.Second, e.tick)
}

// BeginConquest validates a territory selection, moves the match into
// CONQUEST and fetches the question to answer. Nothing is charged here; on
// any error the phase reverts and no state has changed.
func (e *Engine) BeginConquest(playerID, territoryID string) (models.Question, error) {
	e.state.Lock()

	if e.state.Phase == models.PhaseConquest {
		e.state.Unlock()
		return models.Question{}, ErrConquestPending
	}
	if e.state.Phase != models.PhasePlayerTurn {
		e.state.Unlock()
		return models.Question{}, ErrOutOfTurn
	}
	current := e.state.CurrentPlayer()
	if current == nil || current.IsAI || current.ID != playerID {
		e.state.Unlock()
		return models.Question{}, ErrOutOfTurn
	}
	territory := e.state.TerritoryByID(territoryID)
	if territory == nil {
		e.state.Unlock()
		return models.Question{}, fmt.Errorf("%w: %s", ErrUnknownTerritory, territoryID)
	}
	if territory.Owner != "" {
		e.state.Unlock()
		return models.Question{}, ErrTerritoryControlled
	}
	if current.Synapse < territory.Cost {
		e.state.Unlock()
		return models.Question{}, fmt.Errorf("%w: need %d, have %d", ErrInsufficientSynapse, territory.Cost, current.Synapse)
	}

	e.state.Phase = models.PhaseConquest
	question, err := e.provider.Select(e.state, territory)
	if err != nil {
		// Conquest unavailable: return to the player's turn without charging
		e.state.Phase = models.PhasePlayerTurn
		e.state.Unlock()
		return models.Question{}, err
	}
	e.pending = &pendingConquest{
		playerID:    current.ID,
		territoryID: territory.ID,
		questionID:  question.ID,
		correct:     question.Correct,
		optionCount: len(question.Options),
	}
	snap := e.touch()
	e.state.Unlock()

	e.emit(snap)
	return question, nil
}

// SubmitAnswer resolves the pending conquest attempt with the player's answer
func (e *Engine) SubmitAnswer(playerID, questionID string, answerIndex int) (AttemptResult, error) {
	e.state.Lock()

	if e.state.Phase != models.PhaseConquest || e.pending == nil {
		e.state.Unlock()
		return AttemptResult{}, ErrOutOfTurn
	}
	if e.pending.playerID != playerID {
		e.state.Unlock()
		return AttemptResult{}, ErrOutOfTurn
	}
	if questionID != "" && questionID != e.pending.questionID {
		e.state.Unlock()
		return AttemptResult{}, fmt.Errorf("%w: stale question", ErrOutOfTurn)
	}
	if answerIndex < 0 || answerIndex >= e.pending.optionCount {
		// Recoverable: the attempt stays pending for a valid answer
		e.state.Unlock()
		return AttemptResult{}, fmt.Errorf("%w: %d", ErrInvalidAnswerIndex, answerIndex)
	}

	player := e.state.PlayerByID(e.pending.playerID)
	territory := e.state.TerritoryByID(e.pending.territoryID)
	correct := answerIndex == e.pending.correct
	result := e.resolveAttempt(player, territory, correct)
	e.pending = nil

	e.evaluateVictoryLocked()
	if e.state.Phase != models.PhaseGameOver {
		e.advanceTurnLocked()
	}
	scheduleAI := e.autoAI && e.state.Phase == models.PhaseAITurn
	snap := e.touch()
	e.state.Unlock()

	e.emit(snap)
	if scheduleAI {
		time.AfterFunc(e.aiDelay, func() { _ = e.RunAITurn() })
	}
	return result, nil
}

// RunAITurn executes the AI opponent's move. It is normally scheduled by the
// engine after the AI thinking delay; tests call it directly.
func (e *Engine) RunAITurn() (err error) {
	e.state.Lock()
	changed := false
	func() {
		defer func() {
			if r := recover(); r != nil {
				// A failed AI turn cannot be retried mid-game
				e.failLocked()
				changed = true
				err = fmt.Errorf("ai turn aborted: %v", r)
			}
		}()

		if e.state.Phase != models.PhaseAITurn {
			err = ErrOutOfTurn
			return
		}
		ai := e.state.CurrentPlayer()
		if ai == nil || !ai.IsAI {
			err = ErrOutOfTurn
			return
		}

		decision := DecideAI(e.state, ai)
		if decision.Action == "pass" {
			// No viable target: hand the turn back without touching
			// territories or currency
			e.advanceTurnLocked()
			changed = true
			return
		}

		success := e.rng.Float64() < aiSuccessProbability(decision.Territory.Difficulty, e.rng)
		e.resolveAttempt(ai, decision.Territory, success)
		e.evaluateVictoryLocked()
		if e.state.Phase != models.PhaseGameOver {
			e.advanceTurnLocked()
		}
		changed = true
	}()

	var snap *models.GameState
	if changed {
		snap = e.touch()
	}
	e.state.Unlock()

	e.emit(snap)
	return err
}

// Close cancels the countdown so a discarded match can never fire GAME_OVER
// on stale state
func (e *Engine) Close() {
	if e.timer != nil {
		e.timer.Stop()
	}
}

// tick runs once per second while the countdown is live
func (e *Engine) tick() {
	e.state.Lock()
	if e.state.Phase == models.PhaseGameOver || e.state.Phase == models.PhaseSetup {
		e.state.Unlock()
		return
	}
	e.state.TimerRemaining--
	if e.state.TimerRemaining <= 0 {
		e.state.TimerRemaining = 0
		func() {
			defer func() {
				if r := recover(); r != nil {
					e.failLocked()
				}
			}()
			e.finishByTimerLocked()
		}()
	}
	snap := e.touch()
	e.state.Unlock()

	e.emit(snap)
}

// advanceTurnLocked moves to the next player and the matching phase
func (e *Engine) advanceTurnLocked() {
	next := (e.state.CurrentPlayerIndex + 1) % len(e.state.Players)
	e.state.CurrentPlayerIndex = next
	if next == 0 {
		e.state.Turn++
	}
	if e.state.Players[next].IsAI {
		e.state.Phase = models.PhaseAITurn
	} else {
		e.state.Phase = models.PhasePlayerTurn
	}
}

// touch stamps the state and snapshots it (lock held)
func (e *Engine) touch() *models.GameState {
	e.state.LastUpdated = time.Now()
	return e.state.Clone()
}

func (e *Engine) emit(snap *models.GameState) {
	if snap != nil && e.onChange != nil {
		e.onChange(snap)
	}
}
