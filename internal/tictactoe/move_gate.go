package tictactoe

import (
	"errors"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

var (
	ErrCellUnavailable = errors.New("cell is occupied or outside of the board")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrNoMoveAwaited   = errors.New("no move is awaited")
	ErrRoundPaused     = errors.New("round is paused")
)

// moveWaiter - single slot for the cell of one awaited human move.
type moveWaiter struct {
	piece entity.Piece
	cells chan entity.Cell
}

func newMoveWaiter(piece entity.Piece) *moveWaiter {
	return &moveWaiter{
		piece: piece,
		cells: make(chan entity.Cell, 1),
	}
}

// resolve - hands the cell to the waiting round. The slot is fresh and used once, so it never blocks.
func (that *moveWaiter) resolve(cell entity.Cell) {
	that.cells <- cell
}

// validateSelection - checks if a selected cell may resolve the awaited move. Caller holds the lock.
func (that *TurnOrchestrator) validateSelection(cell entity.Cell) error {
	if !that.active || that.waiter == nil {
		return ErrNoMoveAwaited
	}

	if that.paused {
		return ErrRoundPaused
	}

	if that.session.NextPlayer() != that.waiter.piece {
		return ErrNotYourTurn
	}

	if !that.session.IsCellEmpty(cell) {
		return ErrCellUnavailable
	}

	return nil
}

type pendingState int

const (
	pendingIdle pendingState = iota
	pendingHeld
)

// pendingResult - a published-later turn result, either idle or holding exactly one result.
type pendingResult struct {
	state  pendingState
	result entity.TurnResult
}

// hold - keeps result, replacing a previously held one.
func (that *pendingResult) hold(result entity.TurnResult) {
	that.state = pendingHeld
	that.result = result
}

func (that *pendingResult) take() (entity.TurnResult, bool) {
	if that.state != pendingHeld {
		return entity.TurnResult{}, false
	}

	result := that.result
	that.clear()

	return result, true
}

func (that *pendingResult) clear() {
	*that = pendingResult{}
}

func (that *pendingResult) isHeld() bool {
	return that.state == pendingHeld
}
