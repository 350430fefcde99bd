package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

const endTimeout = 10 * time.Second

// GameSession - client side mirror of one backend game.
// Turns are played by a single caller, the getters are safe to use concurrently.
type GameSession struct {
	logger  *slog.Logger
	backend backendClient

	mu    sync.RWMutex
	state entity.GameState

	endOnce sync.Once
}

func newGameSession(logger *slog.Logger, backend backendClient, state *entity.GameState) *GameSession {
	return &GameSession{
		logger:  logger.With("game_id", state.ID),
		backend: backend,
		state:   *state,
	}
}

func (that *GameSession) ID() string {
	return that.state.ID
}

// Snapshot - copy of the current state.
func (that *GameSession) Snapshot() entity.GameState {
	that.mu.RLock()
	defer that.mu.RUnlock()

	state := that.state
	state.Board = that.state.Board.Copy()

	return state
}

func (that *GameSession) NextPlayer() entity.Piece {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.state.NextPlayer
}

func (that *GameSession) TurnNumber() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.state.TurnNumber
}

func (that *GameSession) IsCellEmpty(cell entity.Cell) bool {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.state.Board.IsEmpty(cell)
}

// PlayTurn - submits the current turn. A nil cell lets the backend move for an AI player.
func (that *GameSession) PlayTurn(ctx context.Context, cell *entity.Cell) (*entity.TurnResult, error) {
	turnNumber := that.TurnNumber()

	turn, err := that.backend.PlayTurn(ctx, that.state.ID, turnNumber, cell)
	if err != nil {
		return nil, fmt.Errorf("failed to play turn: %w", err)
	}

	if turn.TurnNumber <= turnNumber {
		return nil, fmt.Errorf("%w: turn number went from %d to %d", apperror.ErrBackend, turnNumber, turn.TurnNumber)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.state.Board.Place(turn.Move.Cell, turn.Move.Piece); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrBackend, err)
	}

	that.state.NextPlayer = turn.NextPlayer
	that.state.TurnNumber = turn.TurnNumber

	return &entity.TurnResult{
		Move:            turn.Move,
		GameEnded:       turn.GameEnded,
		Winner:          turn.Winner,
		WinningSequence: turn.WinningSequence,
		TurnNumber:      turnNumber,
	}, nil
}

// End - asks the backend to delete the game. Only the first call does it, failures are logged.
func (that *GameSession) End(ctx context.Context) {
	that.endOnce.Do(func() {
		log := that.logger.With("method", "End")

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), endTimeout)
		defer cancel()

		if err := that.backend.DeleteGame(ctx, that.state.ID); err != nil {
			log.Error("failed to end game session", "error", err)
			return
		}

		log.Debug("game session ended")
	})
}
