package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

var (
	ErrRoundStopped  = errors.New("round was stopped")
	ErrUnknownPlayer = errors.New("no player for piece")
)

// Session - the game a round is played on.
type Session interface {
	ID() string
	NextPlayer() entity.Piece
	IsCellEmpty(cell entity.Cell) bool
	PlayTurn(ctx context.Context, cell *entity.Cell) (*entity.TurnResult, error)
	End(ctx context.Context)
}

// turnPublisher must not call back into the orchestrator.
type turnPublisher interface {
	MoveCompleted(result entity.TurnResult)
	ShowLastMove()
}

// TurnOrchestrator - plays one round, turn after turn, until the game ends, fails or is stopped.
type TurnOrchestrator struct {
	logger    *slog.Logger
	session   Session
	players   map[entity.Piece]entity.Player
	publisher turnPublisher

	// pubMu serializes publications, it is always taken before mu.
	pubMu sync.Mutex
	mu    sync.Mutex

	active  bool
	paused  bool
	pending pendingResult
	waiter  *moveWaiter

	wake     chan struct{}
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewTurnOrchestrator(
	logger *slog.Logger,
	session Session,
	players map[entity.Piece]entity.Player,
	publisher turnPublisher,
	startPaused bool,
) *TurnOrchestrator {
	return &TurnOrchestrator{
		logger:    logger.With("component", "turn-orchestrator", "game_id", session.ID()),
		session:   session,
		players:   players,
		publisher: publisher,
		active:    true,
		paused:    startPaused,
		wake:      make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Run - plays the round and returns the final turn. It is called once per orchestrator.
func (that *TurnOrchestrator) Run(ctx context.Context) (*entity.TurnResult, error) {
	log := that.logger.With("method", "Run")

	for {
		if err := that.waitWhilePaused(ctx); err != nil {
			return nil, err
		}

		piece := that.session.NextPlayer()

		player, ok := that.players[piece]
		if !ok {
			that.deactivate()
			return nil, fmt.Errorf("%w %q", ErrUnknownPlayer, piece)
		}

		cell, err := that.awaitMove(ctx, piece, player)
		if err != nil {
			return nil, err
		}

		result, err := that.session.PlayTurn(ctx, cell)
		if err != nil {
			if !that.isActive() {
				return nil, ErrRoundStopped
			}

			that.deactivate()
			log.Error("turn failed", "piece", piece, "error", err)

			return nil, fmt.Errorf("failed to play turn: %w", err)
		}

		log.Debug("turn played", "turn", result.TurnNumber, "piece", result.Move.Piece, "cell", result.Move.Cell)

		if !that.publishOrHold(*result) {
			return nil, ErrRoundStopped
		}

		if result.GameEnded {
			that.session.End(ctx)

			if err = that.waitUntilPublished(ctx); err != nil {
				return nil, err
			}

			that.deactivate()

			return result, nil
		}
	}
}

// SetPaused - a paused round holds the next result back and requests no further turns.
// Resuming publishes the held result before the loop continues.
func (that *TurnOrchestrator) SetPaused(paused bool) {
	that.pubMu.Lock()
	defer that.pubMu.Unlock()

	that.mu.Lock()
	if !that.active || that.paused == paused {
		that.mu.Unlock()
		return
	}

	that.paused = paused

	if paused {
		that.mu.Unlock()
		that.publisher.ShowLastMove()
		return
	}

	held, ok := that.pending.take()
	that.mu.Unlock()

	if ok {
		that.publisher.MoveCompleted(held)
	}

	select {
	case that.wake <- struct{}{}:
	default:
	}
}

func (that *TurnOrchestrator) Paused() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.paused
}

// SelectMove - resolves an awaited human move. It reports false when the selection was ignored.
func (that *TurnOrchestrator) SelectMove(cell entity.Cell) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.validateSelection(cell); err != nil {
		that.logger.Debug("move selection ignored", "cell", cell, "reason", err)
		return false
	}

	waiter := that.waiter
	that.waiter = nil
	waiter.resolve(cell)

	return true
}

// Stop - ends the round. A turn in flight still completes on the backend but its result is dropped.
func (that *TurnOrchestrator) Stop(ctx context.Context) {
	that.pubMu.Lock()
	that.mu.Lock()
	that.active = false
	that.pending.clear()
	that.waiter = nil
	that.mu.Unlock()
	that.pubMu.Unlock()

	that.stopOnce.Do(func() {
		close(that.stopCh)
	})

	that.session.End(ctx)
}

func (that *TurnOrchestrator) awaitMove(ctx context.Context, piece entity.Piece, player entity.Player) (*entity.Cell, error) {
	if player.IsAI() {
		return nil, nil
	}

	waiter := newMoveWaiter(piece)

	that.mu.Lock()
	if !that.active {
		that.mu.Unlock()
		return nil, ErrRoundStopped
	}
	that.waiter = waiter
	that.mu.Unlock()

	select {
	case cell := <-waiter.cells:
		return &cell, nil
	case <-that.stopCh:
		return nil, ErrRoundStopped
	case <-ctx.Done():
		that.deactivate()
		return nil, fmt.Errorf("round interrupted: %w", ctx.Err())
	}
}

func (that *TurnOrchestrator) waitWhilePaused(ctx context.Context) error {
	for {
		that.mu.Lock()
		active, paused := that.active, that.paused
		that.mu.Unlock()

		if !active {
			return ErrRoundStopped
		}
		if !paused {
			return nil
		}

		select {
		case <-that.wake:
		case <-that.stopCh:
			return ErrRoundStopped
		case <-ctx.Done():
			that.deactivate()
			return fmt.Errorf("round interrupted: %w", ctx.Err())
		}
	}
}

// waitUntilPublished - blocks while a result is held back by a pause.
func (that *TurnOrchestrator) waitUntilPublished(ctx context.Context) error {
	for {
		that.mu.Lock()
		active, held := that.active, that.pending.isHeld()
		that.mu.Unlock()

		if !active {
			return ErrRoundStopped
		}
		if !held {
			return nil
		}

		select {
		case <-that.wake:
		case <-that.stopCh:
			return ErrRoundStopped
		case <-ctx.Done():
			that.deactivate()
			return fmt.Errorf("round interrupted: %w", ctx.Err())
		}
	}
}

// publishOrHold - reports false when the round is no longer active and the result was dropped.
func (that *TurnOrchestrator) publishOrHold(result entity.TurnResult) bool {
	that.pubMu.Lock()
	defer that.pubMu.Unlock()

	that.mu.Lock()
	if !that.active {
		that.mu.Unlock()
		return false
	}

	if that.paused {
		that.pending.hold(result)
		that.mu.Unlock()
		return true
	}
	that.mu.Unlock()

	that.publisher.MoveCompleted(result)

	return true
}

func (that *TurnOrchestrator) isActive() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.active
}

func (that *TurnOrchestrator) deactivate() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.active = false
	that.waiter = nil
}
