package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrBackend           = errors.New("game backend request failed")
	ErrSessionExpired    = fmt.Errorf("%w: game session not found", ErrBackend)
	ErrGameAlreadyExists = errors.New("game already exists")
	ErrNoActiveGame      = errors.New("no active game")
	ErrGameEnded         = errors.New("game was ended")
	ErrInvalidConfig     = errors.New("invalid game configuration")
)

const (
	msgSessionExpired = "The game session has expired, probably because of a long inactivity. Please start a new game."
	msgGenericFailure = "Something went wrong with the game. Please try again."
)

// UserMessage - returns the wording shown to the player for a failed game.
func UserMessage(err error) string {
	if errors.Is(err, ErrSessionExpired) {
		return msgSessionExpired
	}

	return msgGenericFailure
}
