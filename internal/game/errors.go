package game

import "errors"

// Engine errors. All are local and recoverable: the engine never mutates
// state before reporting one of these, and the match stays in its current
// turn phase.
var (
	ErrOutOfTurn           = errors.New("action attempted outside the acting player's turn")
	ErrTerritoryControlled = errors.New("territory is permanently controlled")
	ErrInsufficientSynapse = errors.New("not enough synapse for this territory")
	ErrNoQuestionAvailable = errors.New("no question available for this territory")
	ErrInvalidAnswerIndex  = errors.New("answer index out of range")
	ErrConquestPending     = errors.New("a conquest attempt is already in flight")
	ErrUnknownTerritory    = errors.New("unknown territory")
	ErrUnknownPlayer       = errors.New("unknown player")
	ErrMatchFull           = errors.New("match is full")
	ErrMatchAlreadyStarted = errors.New("match already started")
)
