package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/transport/rest"
	mockedService "github.com/rocketscienceinc/tictactoe-client/mocks/service"
	"github.com/rocketscienceinc/tictactoe-client/testing/fakebackend"
)

var errNetworkDown = errors.New("network down")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testConfiguration() entity.GameConfiguration {
	return entity.GameConfiguration{
		ConnectHowMany: 3,
		FirstPlayer:    entity.FirstPlayerX,
		Board:          entity.BoardSize{Rows: 3, Columns: 3},
		Players: map[entity.Piece]entity.Player{
			entity.PieceX: {ID: "human", Name: "Human", Type: entity.PlayerTypeHuman},
			entity.PieceO: {ID: "naive", Name: "Naive", Type: entity.PlayerTypeAI},
		},
		Rounds: 1,
	}
}

func initialState() *entity.GameState {
	return &entity.GameState{
		ID:             "game-1",
		Board:          entity.NewBoard(3, 3),
		NextPlayer:     entity.PieceX,
		TurnNumber:     1,
		ConnectHowMany: 3,
	}
}

func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Mirrors the initial backend state", func(t *testing.T) {
		// Given: a backend creating game-1
		backend := mockedService.NewMockbackendClient(t)
		backend.EXPECT().CreateGame(mock.Anything, testConfiguration()).Return(initialState(), nil).Once()

		// When: creating a session
		session, err := NewGameService(discardLogger(), backend).CreateSession(ctx, testConfiguration())

		// Then: the session reflects that state
		require.NoError(t, err)
		assert.Equal(t, "game-1", session.ID())
		assert.Equal(t, entity.PieceX, session.NextPlayer())
		assert.Equal(t, 1, session.TurnNumber())
		assert.True(t, session.IsCellEmpty(entity.Cell{Row: 0, Column: 0}))
	})

	t.Run("Propagates backend failures", func(t *testing.T) {
		backend := mockedService.NewMockbackendClient(t)
		backend.EXPECT().CreateGame(mock.Anything, mock.Anything).
			Return(nil, errors.Join(apperror.ErrBackend, errNetworkDown)).Once()

		session, err := NewGameService(discardLogger(), backend).CreateSession(ctx, testConfiguration())

		require.ErrorIs(t, err, apperror.ErrBackend)
		assert.Nil(t, session)
	})
}

func TestGameSession_PlayTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies the backend reply", func(t *testing.T) {
		// Given: a fresh session
		backend := mockedService.NewMockbackendClient(t)
		session := newGameSession(discardLogger(), backend, initialState())

		cell := entity.Cell{Row: 1, Column: 1}
		backend.EXPECT().PlayTurn(mock.Anything, "game-1", 1, &cell).Return(&entity.TurnState{
			Move:       entity.Move{Piece: entity.PieceX, Cell: cell},
			NextPlayer: entity.PieceO,
			TurnNumber: 2,
		}, nil).Once()

		// When: X plays the center
		result, err := session.PlayTurn(ctx, &cell)

		// Then: the result carries the played turn and the session moved on
		require.NoError(t, err)
		assert.Equal(t, 1, result.TurnNumber)
		assert.Equal(t, entity.PieceX, result.Move.Piece)
		assert.False(t, result.GameEnded)
		assert.False(t, session.IsCellEmpty(cell))
		assert.Equal(t, entity.PieceO, session.NextPlayer())
		assert.Equal(t, 2, session.TurnNumber())
	})

	t.Run("Snapshot is not affected by later turns", func(t *testing.T) {
		backend := mockedService.NewMockbackendClient(t)
		session := newGameSession(discardLogger(), backend, initialState())
		snapshot := session.Snapshot()

		backend.EXPECT().PlayTurn(mock.Anything, "game-1", 1, mock.Anything).Return(&entity.TurnState{
			Move:       entity.Move{Piece: entity.PieceX, Cell: entity.Cell{}},
			NextPlayer: entity.PieceO,
			TurnNumber: 2,
		}, nil).Once()

		_, err := session.PlayTurn(ctx, nil)

		require.NoError(t, err)
		assert.True(t, snapshot.Board.IsEmpty(entity.Cell{}))
		assert.Equal(t, 1, snapshot.TurnNumber)
	})

	t.Run("Expired session keeps state", func(t *testing.T) {
		// Given: a backend that lost the game
		backend := mockedService.NewMockbackendClient(t)
		session := newGameSession(discardLogger(), backend, initialState())
		backend.EXPECT().PlayTurn(mock.Anything, "game-1", 1, mock.Anything).
			Return(nil, apperror.ErrSessionExpired).Once()

		// When: playing a turn
		result, err := session.PlayTurn(ctx, nil)

		// Then: the error is passed on and nothing changed
		require.ErrorIs(t, err, apperror.ErrSessionExpired)
		assert.Nil(t, result)
		assert.Equal(t, 1, session.TurnNumber())
	})

	t.Run("Rejects a turn number that does not increase", func(t *testing.T) {
		backend := mockedService.NewMockbackendClient(t)
		session := newGameSession(discardLogger(), backend, initialState())
		backend.EXPECT().PlayTurn(mock.Anything, "game-1", 1, mock.Anything).Return(&entity.TurnState{
			Move:       entity.Move{Piece: entity.PieceX, Cell: entity.Cell{}},
			NextPlayer: entity.PieceO,
			TurnNumber: 1,
		}, nil).Once()

		_, err := session.PlayTurn(ctx, nil)

		require.ErrorIs(t, err, apperror.ErrBackend)
		assert.True(t, session.IsCellEmpty(entity.Cell{}))
	})
}

func TestGameSession_End(t *testing.T) {
	t.Run("Deletes once across concurrent calls", func(t *testing.T) {
		// Given: a session
		backend := mockedService.NewMockbackendClient(t)
		session := newGameSession(discardLogger(), backend, initialState())
		backend.EXPECT().DeleteGame(mock.Anything, "game-1").Return(nil).Once()

		// When: ending it from several goroutines
		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				session.End(context.Background())
			}()
		}
		wg.Wait()

		// Then: the mock saw exactly one delete
	})

	t.Run("Swallows delete failures and ignores cancellation", func(t *testing.T) {
		// Given: a cancelled context and a failing backend
		backend := mockedService.NewMockbackendClient(t)
		session := newGameSession(discardLogger(), backend, initialState())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		backend.EXPECT().DeleteGame(mock.Anything, "game-1").
			RunAndReturn(func(ctx context.Context, _ string) error {
				assert.NoError(t, ctx.Err())
				return errNetworkDown
			}).Once()

		// When/Then: End returns normally
		assert.NotPanics(t, func() { session.End(ctx) })
	})
}

func TestGameSession_AgainstBackend(t *testing.T) {
	ctx := context.Background()

	// Given: a backend ending the game after two turns without winner
	backend := fakebackend.New(t, fakebackend.Options{EndAfter: 2})
	client := rest.NewClient(discardLogger(), backend.URL, time.Second)
	service := NewGameService(discardLogger(), client)

	session, err := service.CreateSession(ctx, testConfiguration())
	require.NoError(t, err)

	// When: X plays a cell and O lets the backend move
	cell := entity.Cell{Row: 2, Column: 2}
	first, err := session.PlayTurn(ctx, &cell)
	require.NoError(t, err)
	second, err := session.PlayTurn(ctx, nil)
	require.NoError(t, err)
	session.End(ctx)

	// Then: turns were numbered 1 and 2, the second one tied the game and the game is gone
	assert.Equal(t, 1, first.TurnNumber)
	assert.Equal(t, 2, second.TurnNumber)
	assert.True(t, second.IsTie())
	assert.Equal(t, []int{1, 2}, backend.TurnNumbers())
	assert.Equal(t, 0, backend.ActiveGames())
}
