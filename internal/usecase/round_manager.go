package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/service"
	"github.com/rocketscienceinc/tictactoe-client/internal/tictactoe"
)

// Presenter - receives everything the player should see about a running game.
// Calls are made one at a time and must not call back into the RoundManager.
type Presenter interface {
	GameStarted(state entity.GameState)
	MoveCompleted(result entity.TurnResult)
	ShowLastMove()
	RoundCompleted(stats entity.RoundStatistics)
	GameFinished(stats entity.RoundStatistics)
	GameFailed(message string)
}

type sessionFactory interface {
	CreateSession(ctx context.Context, cfg entity.GameConfiguration) (*service.GameSession, error)
}

type statisticsRepo interface {
	Save(ctx context.Context, runID string, stats entity.RoundStatistics) error
}

// RoundManager - plays the configured number of rounds and keeps the statistics of the run.
type RoundManager struct {
	logger    *slog.Logger
	sessions  sessionFactory
	presenter Presenter
	statsRepo statisticsRepo
	pickPiece func() entity.Piece

	mu           sync.Mutex
	exists       bool
	running      bool
	paused       bool
	runID        string
	stats        entity.RoundStatistics
	orchestrator *tictactoe.TurnOrchestrator
	done         chan struct{}
}

func NewRoundManager(
	logger *slog.Logger,
	sessions sessionFactory,
	presenter Presenter,
	statsRepo statisticsRepo,
	pickPiece func() entity.Piece,
) *RoundManager {
	if pickPiece == nil {
		pickPiece = entity.RandomPiece
	}

	return &RoundManager{
		logger:    logger.With("component", "round-manager"),
		sessions:  sessions,
		presenter: presenter,
		statsRepo: statsRepo,
		pickPiece: pickPiece,
		stats:     entity.NewRoundStatistics(),
	}
}

// Start - ends the current game, waits for it to wind down and plays cfg in the background.
func (that *RoundManager) Start(ctx context.Context, cfg entity.GameConfiguration) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	that.EndGame(ctx)

	that.mu.Lock()
	done := that.done
	that.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return fmt.Errorf("failed to end previous game: %w", ctx.Err())
		}
	}

	go func() {
		log := that.logger.With("method", "Start")

		if _, err := that.Play(context.WithoutCancel(ctx), cfg); err != nil && !errors.Is(err, apperror.ErrGameEnded) {
			log.Error("game failed", "error", err)
		}
	}()

	return nil
}

// Play - plays all rounds of cfg and returns the final statistics.
func (that *RoundManager) Play(ctx context.Context, cfg entity.GameConfiguration) (entity.RoundStatistics, error) {
	if err := cfg.Validate(); err != nil {
		return entity.RoundStatistics{}, err
	}

	that.mu.Lock()
	if that.running {
		that.mu.Unlock()
		return entity.RoundStatistics{}, apperror.ErrGameAlreadyExists
	}

	runID := ulid.Make().String()
	done := make(chan struct{})

	that.running = true
	that.exists = true
	that.paused = false
	that.runID = runID
	that.stats = entity.NewRoundStatistics()
	that.done = done
	that.mu.Unlock()

	log := that.logger.With("method", "Play", "run_id", runID)
	log.Info("game started", "rounds", cfg.Rounds, "first_player", cfg.FirstPlayer)

	defer func() {
		that.mu.Lock()
		that.exists = false
		that.running = false
		that.orchestrator = nil
		stats := that.stats.Copy()
		that.mu.Unlock()

		that.presenter.GameFinished(stats)
		close(done)
	}()

	for round := 1; round <= cfg.Rounds; round++ {
		result, err := that.playRound(ctx, cfg.ForRound(that.pickPiece))
		if errors.Is(err, tictactoe.ErrRoundStopped) {
			log.Info("game ended before completion", "round", round)
			return that.Statistics(), apperror.ErrGameEnded
		}
		if err != nil {
			that.failGame()
			that.presenter.GameFailed(apperror.UserMessage(err))
			return that.Statistics(), fmt.Errorf("failed to play round %d: %w", round, err)
		}

		stats := that.recordRound(result.Winner)
		log.Info("round completed", "round", round, "winner", result.Winner)

		that.presenter.RoundCompleted(stats)
		that.saveStatistics(ctx, runID, stats)
	}

	stats := that.Statistics()
	log.Info("game finished", "wins_x", stats.Wins[entity.PieceX], "wins_o", stats.Wins[entity.PieceO], "ties", stats.Ties)

	return stats, nil
}

func (that *RoundManager) playRound(ctx context.Context, cfg entity.GameConfiguration) (*entity.TurnResult, error) {
	if !that.GameExists() {
		return nil, tictactoe.ErrRoundStopped
	}

	session, err := that.sessions.CreateSession(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start round: %w", err)
	}

	that.mu.Lock()
	if !that.exists {
		that.mu.Unlock()
		session.End(ctx)
		return nil, tictactoe.ErrRoundStopped
	}

	orchestrator := tictactoe.NewTurnOrchestrator(that.logger, session, cfg.Players, that.presenter, that.paused)
	that.orchestrator = orchestrator
	that.mu.Unlock()

	that.presenter.GameStarted(session.Snapshot())

	result, err := orchestrator.Run(ctx)
	if err != nil {
		session.End(ctx)
		return nil, err
	}

	return result, nil
}

// SetPaused - pauses or resumes the running round. The flag carries over to the next round.
func (that *RoundManager) SetPaused(paused bool) {
	that.mu.Lock()
	if !that.exists {
		that.mu.Unlock()
		return
	}

	that.paused = paused
	orchestrator := that.orchestrator
	that.mu.Unlock()

	if orchestrator != nil {
		orchestrator.SetPaused(paused)
	}
}

// EndGame - stops the game. Game existence is cleared right away, the running round winds down on its own.
func (that *RoundManager) EndGame(ctx context.Context) {
	that.mu.Lock()
	if !that.exists {
		that.mu.Unlock()
		return
	}

	that.exists = false
	orchestrator := that.orchestrator
	that.mu.Unlock()

	that.logger.Info("game ended by player")

	if orchestrator != nil {
		orchestrator.Stop(ctx)
	}
}

// SelectMove - forwards a selected cell to the running round.
func (that *RoundManager) SelectMove(cell entity.Cell) bool {
	that.mu.Lock()
	orchestrator := that.orchestrator
	that.mu.Unlock()

	if orchestrator == nil {
		return false
	}

	return orchestrator.SelectMove(cell)
}

func (that *RoundManager) GameExists() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.exists
}

func (that *RoundManager) Paused() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.paused
}

func (that *RoundManager) Statistics() entity.RoundStatistics {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.stats.Copy()
}

// RunID - id the statistics of the current or last run are stored under.
func (that *RoundManager) RunID() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.runID
}

func (that *RoundManager) recordRound(winner entity.Piece) entity.RoundStatistics {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.stats.Record(winner)

	return that.stats.Copy()
}

func (that *RoundManager) failGame() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.exists = false
}

func (that *RoundManager) saveStatistics(ctx context.Context, runID string, stats entity.RoundStatistics) {
	log := that.logger.With("method", "saveStatistics", "run_id", runID)

	if err := that.statsRepo.Save(ctx, runID, stats); err != nil {
		log.Error("failed to save statistics", "error", err)
	}
}
