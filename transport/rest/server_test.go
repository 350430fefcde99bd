package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/repository"
	"github.com/rocketscienceinc/tictactoe-client/internal/service"
	backend "github.com/rocketscienceinc/tictactoe-client/internal/transport/rest"
	"github.com/rocketscienceinc/tictactoe-client/testing/fakebackend"
)

type testServer struct {
	handler   http.Handler
	statsRepo repository.StatisticsRepository
	backend   *fakebackend.Server
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	fake := fakebackend.New(t, fakebackend.Options{})
	client := backend.NewClient(logger, fake.URL, time.Second)
	statsRepo := repository.NewMemoryStatisticsRepository()

	socket := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusSwitchingProtocols)
	})

	server := NewServer(logger, "0", NewHandlers(logger, service.NewPlayerService(client), statsRepo), socket)

	return testServer{handler: server.Handler(), statsRepo: statsRepo, backend: fake}
}

func (that testServer) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()

	recorder := httptest.NewRecorder()
	that.handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))

	return recorder
}

func saveRun(t *testing.T, statsRepo repository.StatisticsRepository, at time.Time, winner entity.Piece) string {
	t.Helper()

	runID := ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy()).String()
	stats := entity.NewRoundStatistics()
	stats.Record(winner)
	require.NoError(t, statsRepo.Save(context.Background(), runID, stats))

	return runID
}

func TestServer_Routes(t *testing.T) {
	t.Run("Ping", func(t *testing.T) {
		response := newTestServer(t).get(t, "/ping")

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, "pong", response.Body.String())
	})

	t.Run("Players come from the backend", func(t *testing.T) {
		// When: listing players
		response := newTestServer(t).get(t, "/players")

		// Then: the backend players are returned
		require.Equal(t, http.StatusOK, response.Code)

		var players []entity.Player
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &players))
		assert.Equal(t, fakebackend.DefaultPlayers(), players)
	})

	t.Run("Players with the backend down", func(t *testing.T) {
		ts := newTestServer(t)
		ts.backend.Close()

		response := ts.get(t, "/players")

		assert.Equal(t, http.StatusBadGateway, response.Code)
	})

	t.Run("Recent statistics", func(t *testing.T) {
		// Given: two stored runs
		ts := newTestServer(t)
		start := time.Now().Add(-time.Hour)
		saveRun(t, ts.statsRepo, start, entity.PieceO)
		newest := saveRun(t, ts.statsRepo, start.Add(time.Minute), entity.PieceX)

		// When: asking for the latest one
		response := ts.get(t, "/statistics?limit=1")

		// Then: only the newest run is returned
		require.Equal(t, http.StatusOK, response.Code)

		var runs []entity.RunStatistics
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &runs))
		require.Len(t, runs, 1)
		assert.Equal(t, newest, runs[0].RunID)
		assert.Equal(t, 1, runs[0].Statistics.Wins[entity.PieceX])
	})

	t.Run("Bad limit", func(t *testing.T) {
		ts := newTestServer(t)

		for _, limit := range []string{"0", "-1", "many"} {
			response := ts.get(t, "/statistics?limit="+limit)
			assert.Equal(t, http.StatusBadRequest, response.Code, limit)
		}
	})

	t.Run("Statistics by run id", func(t *testing.T) {
		ts := newTestServer(t)
		runID := saveRun(t, ts.statsRepo, time.Now(), entity.PieceNone)

		response := ts.get(t, "/statistics/"+runID)

		require.Equal(t, http.StatusOK, response.Code)

		var run entity.RunStatistics
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &run))
		assert.Equal(t, 1, run.Statistics.Ties)
	})

	t.Run("Unknown run id", func(t *testing.T) {
		response := newTestServer(t).get(t, "/statistics/unknown")

		assert.Equal(t, http.StatusNotFound, response.Code)
	})

	t.Run("Websocket endpoint", func(t *testing.T) {
		response := newTestServer(t).get(t, "/ws")

		assert.Equal(t, http.StatusSwitchingProtocols, response.Code)
	})
}

func TestServer_Start(t *testing.T) {
	// Given: a server on a free port
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	statsRepo := repository.NewMemoryStatisticsRepository()
	server := NewServer(logger, "0", NewHandlers(logger, nil, statsRepo), http.NotFoundHandler())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- server.Start(ctx) }()

	// When: the context is canceled
	time.Sleep(50 * time.Millisecond)
	cancel()

	// Then: the server shuts down cleanly
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
