// Package console presents a running game through the application log.
package console

import (
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

type Presenter struct {
	logger *slog.Logger
}

func NewPresenter(logger *slog.Logger) *Presenter {
	return &Presenter{
		logger: logger.With("component", "console"),
	}
}

func (that *Presenter) GameStarted(state entity.GameState) {
	that.logger.Info("game started",
		"game_id", state.ID,
		"rows", state.Board.Rows(),
		"columns", state.Board.Columns(),
		"connect", state.ConnectHowMany,
		"first_player", state.NextPlayer,
	)
}

func (that *Presenter) MoveCompleted(result entity.TurnResult) {
	log := that.logger.With("turn", result.TurnNumber, "piece", result.Move.Piece, "cell", result.Move.Cell.String())

	if !result.GameEnded {
		log.Debug("move completed")
		return
	}

	if result.IsTie() {
		log.Info("round ended in a tie")
		return
	}

	attrs := []any{"winner", result.Winner}
	if result.WinningSequence != nil {
		attrs = append(attrs,
			"from", result.WinningSequence.Start.String(),
			"to", result.WinningSequence.End.String(),
		)
	}

	log.Info("round won", attrs...)
}

func (that *Presenter) ShowLastMove() {
	that.logger.Debug("game paused")
}

func (that *Presenter) RoundCompleted(stats entity.RoundStatistics) {
	that.logger.Info("round completed", statisticsAttrs(stats)...)
}

func (that *Presenter) GameFinished(stats entity.RoundStatistics) {
	that.logger.Info("game finished", statisticsAttrs(stats)...)
}

func (that *Presenter) GameFailed(message string) {
	that.logger.Error("game failed", "message", message)
}

func statisticsAttrs(stats entity.RoundStatistics) []any {
	return []any{
		"rounds", stats.Completed(),
		"wins_x", stats.Wins[entity.PieceX],
		"wins_o", stats.Wins[entity.PieceO],
		"ties", stats.Ties,
	}
}
