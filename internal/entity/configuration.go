package entity

import (
	"fmt"
	"maps"

	"github.com/go-playground/validator/v10"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
)

type FirstPlayer string

const (
	FirstPlayerX      FirstPlayer = "X"
	FirstPlayerO      FirstPlayer = "O"
	FirstPlayerRandom FirstPlayer = "RANDOM"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type BoardSize struct {
	Rows    int `json:"rows" validate:"min=1"`
	Columns int `json:"columns" validate:"min=1"`
}

// GameConfiguration - input of a round-set. It is never mutated, ForRound returns a copy.
type GameConfiguration struct {
	ConnectHowMany int              `json:"connectHowMany" validate:"min=3"`
	FirstPlayer    FirstPlayer      `json:"firstPlayer" validate:"oneof=X O RANDOM"`
	Board          BoardSize        `json:"board"`
	Players        map[Piece]Player `json:"players" validate:"len=2,dive"`
	Rounds         int              `json:"rounds" validate:"min=1"`
}

func (that GameConfiguration) Validate() error {
	if err := validate.Struct(that); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidConfig, err)
	}

	for _, piece := range Pieces {
		if _, ok := that.Players[piece]; !ok {
			return fmt.Errorf("%w: no player for piece %s", apperror.ErrInvalidConfig, piece)
		}
	}

	return nil
}

// ForRound - copies the configuration for one round, resolving a random first player with pick.
func (that GameConfiguration) ForRound(pick func() Piece) GameConfiguration {
	round := that
	round.Players = maps.Clone(that.Players)

	if that.FirstPlayer == FirstPlayerRandom {
		round.FirstPlayer = FirstPlayer(pick())
	}

	return round
}

func (that GameConfiguration) HasHuman() bool {
	for _, player := range that.Players {
		if player.IsHuman() {
			return true
		}
	}
	return false
}
