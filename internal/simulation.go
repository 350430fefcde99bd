package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/config"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/repository"
	"github.com/rocketscienceinc/tictactoe-client/internal/service"
	"github.com/rocketscienceinc/tictactoe-client/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-client/transport/console"
)

var ErrHumanPlayer = errors.New("simulation needs two AI players")

type playerFinder interface {
	FindByName(ctx context.Context, name string) (entity.Player, error)
}

// runSimulation - plays the configured rounds AI against AI and logs the statistics.
func runSimulation(
	ctx context.Context,
	logger *slog.Logger,
	game config.Game,
	sessions service.GameService,
	players playerFinder,
	statsRepo repository.StatisticsRepository,
) error {
	log := logger.With("component", "simulation")

	cfg, err := simulationConfig(ctx, game, players)
	if err != nil {
		return err
	}

	rounds := usecase.NewRoundManager(logger, sessions, console.NewPresenter(logger), statsRepo, nil)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			rounds.EndGame(context.Background())
		case <-done:
		}
	}()

	log.Info("Starting simulation", "rounds", cfg.Rounds, "x", cfg.Players[entity.PieceX].Name, "o", cfg.Players[entity.PieceO].Name)

	stats, err := rounds.Play(context.WithoutCancel(ctx), cfg)
	if errors.Is(err, apperror.ErrGameEnded) {
		log.Info("Simulation interrupted", "run_id", rounds.RunID())
		return nil
	}

	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	log.Info("Simulation finished",
		"run_id", rounds.RunID(),
		"rounds", stats.Completed(),
		"wins_x", stats.Wins[entity.PieceX],
		"wins_o", stats.Wins[entity.PieceO],
		"ties", stats.Ties,
	)

	return nil
}

func simulationConfig(ctx context.Context, game config.Game, players playerFinder) (entity.GameConfiguration, error) {
	names := map[entity.Piece]string{
		entity.PieceX: game.PlayerX,
		entity.PieceO: game.PlayerO,
	}

	cfg := entity.GameConfiguration{
		ConnectHowMany: game.ConnectHowMany,
		FirstPlayer:    entity.FirstPlayer(game.FirstPlayer),
		Board:          entity.BoardSize{Rows: game.Rows, Columns: game.Columns},
		Players:        make(map[entity.Piece]entity.Player, len(names)),
		Rounds:         game.Rounds,
	}

	for piece, name := range names {
		player, err := players.FindByName(ctx, name)
		if err != nil {
			return entity.GameConfiguration{}, fmt.Errorf("failed to find player %q: %w", name, err)
		}

		if !player.IsAI() {
			return entity.GameConfiguration{}, fmt.Errorf("%w: %s is %s", ErrHumanPlayer, name, player.Type)
		}

		cfg.Players[piece] = player
	}

	if err := cfg.Validate(); err != nil {
		return entity.GameConfiguration{}, err
	}

	return cfg, nil
}
