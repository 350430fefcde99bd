package websocket

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
	"nhooyr.io/websocket"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

const readLimit = 64 << 10

type roundManager interface {
	Start(ctx context.Context, cfg entity.GameConfiguration) error
	SetPaused(paused bool)
	EndGame(ctx context.Context)
	SelectMove(cell entity.Cell) bool

	GameExists() bool
	Paused() bool
	Statistics() entity.RoundStatistics
}

// Server - accepts browser connections and turns their commands into round manager calls.
type Server struct {
	logger *slog.Logger
	hub    *Hub
	rounds roundManager

	handlers map[string]func(ctx context.Context, message *Message, conn *websocket.Conn) error
}

func New(logger *slog.Logger, hub *Hub, rounds roundManager) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		hub:    hub,
		rounds: rounds,

		handlers: make(map[string]func(context.Context, *Message, *websocket.Conn) error),
	}

	server.handlers[actionGameStart] = server.handleGameStart
	server.handlers[actionGamePause] = server.handleGamePause
	server.handlers[actionGameResume] = server.handleGameResume
	server.handlers[actionGameEnd] = server.handleGameEnd
	server.handlers[actionMoveSelect] = server.handleMoveSelect

	return server
}

// ServeHTTP - upgrades the request and serves the connection until the browser goes away.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := websocket.Accept(writer, req, nil)
	if err != nil {
		log.Error("failed to accept connection", "error", err)
		return
	}

	conn.SetReadLimit(readLimit)

	id := that.hub.register(conn)
	defer that.hub.unregister(id)

	log = log.With("connection_id", id)
	log.Info("WebSocket connection established")

	ctx := req.Context()

	if err = that.sendState(ctx, conn); err != nil {
		log.Error("failed to send game state", "error", err)
		_ = conn.Close(websocket.StatusInternalError, "failed to send game state")
		return
	}

	err = that.handleMessages(ctx, conn)

	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		log.Info("WebSocket connection closed")
	default:
		log.Error("error handling messages", "error", err)
		_ = conn.Close(websocket.StatusInternalError, "")
	}
}

// handleMessages - processes messages from the browser.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			if err = that.sendErrorResponse(ctx, conn, "", "malformed message"); err != nil {
				return err
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err = that.sendErrorResponse(ctx, conn, message.Action, "unknown action"); err != nil {
				return err
			}
			continue
		}

		if err = handler(ctx, &message, conn); err != nil {
			return err
		}
	}
}

func (that *Server) sendState(ctx context.Context, conn *websocket.Conn) error {
	return that.sendMessage(ctx, conn, ActionGameState, that.state())
}

func (that *Server) state() StatePayload {
	return StatePayload{
		GameExists: that.rounds.GameExists(),
		Paused:     that.rounds.Paused(),
		Statistics: that.rounds.Statistics(),
	}
}

func (that *Server) sendMessage(ctx context.Context, conn *websocket.Conn, action string, payload any) error {
	data, err := encodeMessage(action, payload)
	if err != nil {
		return err
	}

	return writeFrame(ctx, conn, data)
}

func (that *Server) sendErrorResponse(ctx context.Context, conn *websocket.Conn, action, message string) error {
	return that.sendMessage(ctx, conn, ActionError, errorPayload{Action: action, Message: message})
}
