package models

// Phase represents the current stage of a match
type Phase string

const (
	PhaseSetup      Phase = "SETUP"
	PhasePlayerTurn Phase = "PLAYER_TURN"
	PhaseConquest   Phase = "CONQUEST"
	PhaseAITurn     Phase = "AI_TURN"
	PhaseGameOver   Phase = "GAME_OVER"
)

// Reasons a match can end
const (
	EndReasonStructural = "structural"
	EndReasonTimer      = "timer"
	EndReasonError      = "error"
)
