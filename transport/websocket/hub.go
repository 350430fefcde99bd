package websocket

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"nhooyr.io/websocket"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

// Hub - fans presenter events out to every connected browser.
type Hub struct {
	logger *slog.Logger

	connectionsMutex sync.RWMutex
	connections      map[string]*websocket.Conn
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:      logger.With("component", "websocket-hub"),
		connections: make(map[string]*websocket.Conn),
	}
}

func (that *Hub) register(conn *websocket.Conn) string {
	id := uuid.NewString()

	that.connectionsMutex.Lock()
	that.connections[id] = conn
	that.connectionsMutex.Unlock()

	return id
}

func (that *Hub) unregister(id string) {
	that.connectionsMutex.Lock()
	delete(that.connections, id)
	that.connectionsMutex.Unlock()
}

// Connections - number of connected browsers.
func (that *Hub) Connections() int {
	that.connectionsMutex.RLock()
	defer that.connectionsMutex.RUnlock()

	return len(that.connections)
}

func (that *Hub) GameStarted(state entity.GameState) {
	that.broadcast(ActionGameStarted, state)
}

func (that *Hub) MoveCompleted(result entity.TurnResult) {
	that.broadcast(ActionMoveCompleted, result)
}

func (that *Hub) ShowLastMove() {
	that.broadcast(ActionShowLastMove, nil)
}

func (that *Hub) RoundCompleted(stats entity.RoundStatistics) {
	that.broadcast(ActionRoundCompleted, stats)
}

func (that *Hub) GameFinished(stats entity.RoundStatistics) {
	that.broadcast(ActionGameFinished, stats)
}

func (that *Hub) GameFailed(message string) {
	that.broadcast(ActionGameFailed, failurePayload{Message: message})
}

// broadcast - a connection that can't be written to is closed and dropped.
func (that *Hub) broadcast(action string, payload any) {
	log := that.logger.With("method", "broadcast", "action", action)

	data, err := encodeMessage(action, payload)
	if err != nil {
		log.Error("failed to encode message", "error", err)
		return
	}

	that.connectionsMutex.RLock()
	connections := make(map[string]*websocket.Conn, len(that.connections))
	for id, conn := range that.connections {
		connections[id] = conn
	}
	that.connectionsMutex.RUnlock()

	for id, conn := range connections {
		if err = writeFrame(context.Background(), conn, data); err != nil {
			log.Error("failed to send message, dropping connection", "connection_id", id, "error", err)
			that.unregister(id)
			_ = conn.Close(websocket.StatusInternalError, "write failed")
		}
	}
}
