package console

import (
	"bufio"
	"bytes"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

func newTestPresenter() (*Presenter, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return NewPresenter(logger), &buf
}

func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var result []map[string]any
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var record map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &record))
		result = append(result, record)
	}

	return result
}

func TestPresenter(t *testing.T) {
	t.Run("Logs a won round with its winning sequence", func(t *testing.T) {
		presenter, buf := newTestPresenter()

		// When: a winning move is presented
		presenter.MoveCompleted(entity.TurnResult{
			Move:            entity.Move{Piece: entity.PieceO, Cell: entity.Cell{Row: 2, Column: 2}},
			GameEnded:       true,
			Winner:          entity.PieceO,
			WinningSequence: &entity.Sequence{Start: entity.Cell{}, End: entity.Cell{Row: 2, Column: 2}},
			TurnNumber:      6,
		})

		// Then: one record names the winner and the sequence
		logged := records(t, buf)
		require.Len(t, logged, 1)
		assert.Equal(t, "round won", logged[0]["msg"])
		assert.Equal(t, "O", logged[0]["winner"])
		assert.Equal(t, "(0,0)", logged[0]["from"])
		assert.Equal(t, "(2,2)", logged[0]["to"])
		assert.Equal(t, "console", logged[0]["component"])
	})

	t.Run("Tie and regular moves", func(t *testing.T) {
		presenter, buf := newTestPresenter()

		presenter.MoveCompleted(entity.TurnResult{Move: entity.Move{Piece: entity.PieceX}, TurnNumber: 1})
		presenter.MoveCompleted(entity.TurnResult{Move: entity.Move{Piece: entity.PieceO}, GameEnded: true, TurnNumber: 9})

		logged := records(t, buf)
		require.Len(t, logged, 2)
		assert.Equal(t, "DEBUG", logged[0]["level"])
		assert.Equal(t, "move completed", logged[0]["msg"])
		assert.Equal(t, "round ended in a tie", logged[1]["msg"])
	})

	t.Run("Statistics and failures", func(t *testing.T) {
		presenter, buf := newTestPresenter()
		stats := entity.NewRoundStatistics()
		stats.Record(entity.PieceX)
		stats.Record(entity.PieceNone)

		presenter.RoundCompleted(stats)
		presenter.GameFinished(stats)
		presenter.GameFailed("Something went wrong")

		logged := records(t, buf)
		require.Len(t, logged, 3)
		assert.Equal(t, "game finished", logged[1]["msg"])
		assert.EqualValues(t, 2, logged[1]["rounds"])
		assert.EqualValues(t, 1, logged[1]["wins_x"])
		assert.EqualValues(t, 1, logged[1]["ties"])
		assert.Equal(t, "ERROR", logged[2]["level"])
		assert.Equal(t, "Something went wrong", logged[2]["message"])
	})
}
