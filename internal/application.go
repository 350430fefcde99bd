package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-client/internal/config"
	"github.com/rocketscienceinc/tictactoe-client/internal/repository"
	"github.com/rocketscienceinc/tictactoe-client/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-client/internal/service"
	backend "github.com/rocketscienceinc/tictactoe-client/internal/transport/rest"
	"github.com/rocketscienceinc/tictactoe-client/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-client/transport/rest"
	"github.com/rocketscienceinc/tictactoe-client/transport/websocket"
)

// RunApp - runs the application. With simulate set it plays the configured rounds headless and exits.
func RunApp(logger *slog.Logger, conf *config.Config, simulate bool) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	statsRepo, closeStats, err := initStatistics(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeStats(); err != nil {
			log.Error("could not close statistics storage", "error", err)
		}
	}()

	client := backend.NewClient(logger, conf.Backend.URL, conf.Backend.Timeout)
	gameService := service.NewGameService(logger, client)
	playerService := service.NewPlayerService(client)

	if simulate {
		return runSimulation(ctx, logger, conf.Game, gameService, playerService, statsRepo)
	}

	hub := websocket.NewHub(logger)
	rounds := usecase.NewRoundManager(logger, gameService, hub, statsRepo, nil)
	defer rounds.EndGame(context.Background())

	handlers := rest.NewHandlers(logger, playerService, statsRepo)
	server := rest.NewServer(logger, conf.HTTPPort, handlers, websocket.New(logger, hub, rounds))

	if err = server.Start(ctx); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// initStatistics - redis when enabled, otherwise statistics only live as long as the process.
func initStatistics(ctx context.Context, conf *config.Config) (repository.StatisticsRepository, func() error, error) {
	if !conf.Redis.Enabled {
		return repository.NewMemoryStatisticsRepository(), func() error { return nil }, nil
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return repository.NewStatisticsRepository(redisStorage.Connection), redisStorage.Close, nil
}
