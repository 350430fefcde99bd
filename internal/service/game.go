package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

type GameService interface {
	CreateSession(ctx context.Context, cfg entity.GameConfiguration) (*GameSession, error)
}

type backendClient interface {
	CreateGame(ctx context.Context, cfg entity.GameConfiguration) (*entity.GameState, error)
	PlayTurn(ctx context.Context, gameID string, turnNumber int, move *entity.Cell) (*entity.TurnState, error)
	DeleteGame(ctx context.Context, gameID string) error
}

type gameService struct {
	logger  *slog.Logger
	backend backendClient
}

func NewGameService(logger *slog.Logger, backend backendClient) GameService {
	return &gameService{
		logger:  logger.With("component", "game-service"),
		backend: backend,
	}
}

// CreateSession - starts a game on the backend for one round of cfg.
func (that *gameService) CreateSession(ctx context.Context, cfg entity.GameConfiguration) (*GameSession, error) {
	state, err := that.backend.CreateGame(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create game session: %w", err)
	}

	that.logger.Debug("game session created", "game_id", state.ID, "first_player", state.NextPlayer)

	return newGameSession(that.logger, that.backend, state), nil
}
