package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/testing/fakebackend"
)

func newTestClient(t *testing.T, opts fakebackend.Options) (*Client, *fakebackend.Server) {
	t.Helper()

	backend := fakebackend.New(t, opts)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return NewClient(logger, backend.URL, 5*time.Second), backend
}

func testConfiguration() entity.GameConfiguration {
	return entity.GameConfiguration{
		ConnectHowMany: 3,
		FirstPlayer:    entity.FirstPlayerX,
		Board:          entity.BoardSize{Rows: 3, Columns: 3},
		Players: map[entity.Piece]entity.Player{
			entity.PieceX: {ID: "mcts", Name: "Monte Carlo Tree Search", Type: entity.PlayerTypeAI},
			entity.PieceO: {ID: "naive", Name: "Naive", Type: entity.PlayerTypeAI},
		},
		Rounds: 1,
	}
}

func TestClient_CreateGame(t *testing.T) {
	ctx := context.Background()
	client, backend := newTestClient(t, fakebackend.Options{})

	// When: creating a 3x3 game
	state, err := client.CreateGame(ctx, testConfiguration())

	// Then: the initial state is decoded
	require.NoError(t, err)
	assert.NotEmpty(t, state.ID)
	assert.Equal(t, 1, state.TurnNumber)
	assert.Equal(t, entity.PieceX, state.NextPlayer)
	assert.Equal(t, 3, state.ConnectHowMany)
	assert.Equal(t, 3, state.Board.Rows())
	assert.True(t, state.Board.IsEmpty(entity.Cell{Row: 2, Column: 2}))
	assert.EqualValues(t, 1, backend.Creates.Load())
}

func TestClient_PlayTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("AI turn without a move", func(t *testing.T) {
		// Given: a fresh game
		client, _ := newTestClient(t, fakebackend.Options{})
		state, err := client.CreateGame(ctx, testConfiguration())
		require.NoError(t, err)

		// When: playing the first turn without a cell
		turn, err := client.PlayTurn(ctx, state.ID, state.TurnNumber, nil)

		// Then: the backend moved and reports the next turn number
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Piece: entity.PieceX, Cell: entity.Cell{}}, turn.Move)
		assert.Equal(t, 2, turn.TurnNumber)
		assert.Equal(t, entity.PieceO, turn.NextPlayer)
		assert.False(t, turn.GameEnded)
		assert.Equal(t, entity.PieceNone, turn.Winner)
		assert.Nil(t, turn.WinningSequence)
	})

	t.Run("Human turn with a move and a winner", func(t *testing.T) {
		// Given: a backend that ends the game after one turn with X winning
		client, _ := newTestClient(t, fakebackend.Options{EndAfter: 1, Winner: entity.PieceX})
		state, err := client.CreateGame(ctx, testConfiguration())
		require.NoError(t, err)

		// When: X plays the center
		cell := entity.Cell{Row: 1, Column: 1}
		turn, err := client.PlayTurn(ctx, state.ID, 1, &cell)

		// Then: the game ended with X as winner
		require.NoError(t, err)
		assert.Equal(t, cell, turn.Move.Cell)
		assert.True(t, turn.GameEnded)
		assert.Equal(t, entity.PieceX, turn.Winner)
		require.NotNil(t, turn.WinningSequence)
	})

	t.Run("Missing game is an expired session", func(t *testing.T) {
		client, _ := newTestClient(t, fakebackend.Options{})

		_, err := client.PlayTurn(ctx, "unknown", 1, nil)

		require.ErrorIs(t, err, apperror.ErrSessionExpired)
		assert.ErrorIs(t, err, apperror.ErrBackend)
	})

	t.Run("Server failure is a backend error", func(t *testing.T) {
		// Given: a backend failing the first turn
		client, _ := newTestClient(t, fakebackend.Options{FailAtTurn: 1, FailStatus: http.StatusInternalServerError})
		state, err := client.CreateGame(ctx, testConfiguration())
		require.NoError(t, err)

		// When: playing it
		_, err = client.PlayTurn(ctx, state.ID, 1, nil)

		// Then: it is a generic backend error
		require.ErrorIs(t, err, apperror.ErrBackend)
		assert.NotErrorIs(t, err, apperror.ErrSessionExpired)
	})
}

func TestClient_DeleteGame(t *testing.T) {
	ctx := context.Background()
	client, backend := newTestClient(t, fakebackend.Options{})

	state, err := client.CreateGame(ctx, testConfiguration())
	require.NoError(t, err)

	// When: deleting the game twice
	require.NoError(t, client.DeleteGame(ctx, state.ID))
	require.NoError(t, client.DeleteGame(ctx, state.ID))

	// Then: it is gone and the second delete was tolerated
	assert.Equal(t, 0, backend.ActiveGames())
	assert.EqualValues(t, 2, backend.Deletes.Load())
}

func TestClient_ListPlayers(t *testing.T) {
	client, _ := newTestClient(t, fakebackend.Options{})

	players, err := client.ListPlayers(context.Background())

	require.NoError(t, err)
	assert.Equal(t, fakebackend.DefaultPlayers(), players)
}

func TestClient_Unreachable(t *testing.T) {
	t.Run("Closed backend", func(t *testing.T) {
		// Given: a backend that went away
		client, backend := newTestClient(t, fakebackend.Options{})
		backend.Close()

		// When: creating a game
		_, err := client.CreateGame(context.Background(), testConfiguration())

		// Then: it is a backend error
		assert.ErrorIs(t, err, apperror.ErrBackend)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		client, backend := newTestClient(t, fakebackend.Options{})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.ListPlayers(ctx)

		require.ErrorIs(t, err, apperror.ErrBackend)
		assert.ErrorIs(t, err, context.Canceled)
		assert.EqualValues(t, 0, backend.Creates.Load())
	})
}
