package game

import "github.com/neuraledu/neural-conquest/internal/models"

// evaluateVictoryLocked refreshes per-player connection stats and finishes
// the match if any zone reached full completion. Called after every resolved
// attempt, before the next phase transition is computed.
func (e *Engine) evaluateVictoryLocked() {
	for _, p := range e.state.Players {
		stats := ZoneStats(e.state, p.ID)
		e.state.ConnectionStats[p.ID] = stats
		if stats.TotalPossible > 0 && stats.Completion >= 1.0 {
			e.finishLocked(p.ID, models.EndReasonStructural)
			return
		}
	}
}

// finishByTimerLocked awards the match to the highest synapse. Equal scores
// go to the earlier player in Players; the tie-break is deliberate, not an
// iteration accident.
func (e *Engine) finishByTimerLocked() {
	if len(e.state.Players) == 0 {
		e.failLocked()
		return
	}
	winner := e.state.Players[0]
	for _, p := range e.state.Players[1:] {
		if p.Synapse > winner.Synapse {
			winner = p
		}
	}
	e.finishLocked(winner.ID, models.EndReasonTimer)
}

// finishLocked is the only place the match enters GAME_OVER. Any pending
// question is dismissed and the countdown stopped; no further mutation is
// accepted afterwards.
func (e *Engine) finishLocked(winnerID, reason string) {
	e.state.Phase = models.PhaseGameOver
	e.state.Winner = winnerID
	e.state.EndReason = reason
	e.pending = nil
	if e.timer != nil {
		e.timer.Stop()
	}
}

// failLocked ends the match after an internal failure rather than leaving an
// inconsistent state behind
func (e *Engine) failLocked() {
	e.finishLocked("", models.EndReasonError)
}
