package game

import "errors"

// Error codes reported to remote clients
const (
	CodeGameError = 1
	CodeRuleError = 2
)

// GameError is a structural problem: a full game, a missing player,
// a game that has not started.
type GameError struct {
	Reason string
}

func (e *GameError) Error() string {
	return e.Reason
}

// RuleError is an illegal move.
type RuleError struct {
	Reason string
}

func (e *RuleError) Error() string {
	return e.Reason
}

// NewGameError builds a GameError with the given reason
func NewGameError(reason string) error {
	return &GameError{Reason: reason}
}

var (
	ErrGameFull         = &GameError{"already 4 players registered"}
	ErrPlayerRegistered = &GameError{"player already registered to the game"}
	ErrAlreadyStarted   = &GameError{"game already started"}
	ErrNotEnoughPlayers = &GameError{"not enough players"}
	ErrNotInProgress    = &GameError{"game is not in progress"}
	ErrUnknownPlayer    = &GameError{"unknown player"}
	ErrUserQuit         = &GameError{"user quit"}

	ErrNotYourTurn     = &RuleError{"not your turn"}
	ErrSuitNotFollowed = &RuleError{"suit must be followed"}
	ErrInvalidCard     = &RuleError{"invalid card"}
)

// ErrorCode returns the client-facing code for err, or 0 if err is neither
// a GameError nor a RuleError.
func ErrorCode(err error) int {
	var ge *GameError
	if errors.As(err, &ge) {
		return CodeGameError
	}
	var re *RuleError
	if errors.As(err, &re) {
		return CodeRuleError
	}
	return 0
}
