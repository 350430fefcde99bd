package websocket

import (
	"context"

	"github.com/goccy/go-json"
	"nhooyr.io/websocket"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
)

const (
	msgPayloadRequired = "payload is required"
	msgMalformed       = "malformed payload"
	msgCellRequired    = "cell is required"
	msgMoveRejected    = "move not accepted"
)

// Handlers only return errors the connection can't survive, everything else goes back as an error frame.

func (that *Server) handleGameStart(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameStart")

	if len(msg.Payload) == 0 {
		return that.sendErrorResponse(ctx, conn, msg.Action, msgPayloadRequired)
	}

	var payload startPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Warn("failed to unmarshal payload", "error", err)
		return that.sendErrorResponse(ctx, conn, msg.Action, msgMalformed)
	}

	if err := that.rounds.Start(ctx, payload.Config); err != nil {
		log.Warn("failed to start game", "error", err)
		return that.sendErrorResponse(ctx, conn, msg.Action, err.Error())
	}

	log.Info("game started", "rounds", payload.Config.Rounds)

	return nil
}

func (that *Server) handleGamePause(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	return that.setPaused(ctx, msg, conn, true)
}

func (that *Server) handleGameResume(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	return that.setPaused(ctx, msg, conn, false)
}

func (that *Server) setPaused(ctx context.Context, msg *Message, conn *websocket.Conn, paused bool) error {
	if !that.rounds.GameExists() {
		return that.sendErrorResponse(ctx, conn, msg.Action, apperror.ErrNoActiveGame.Error())
	}

	that.rounds.SetPaused(paused)
	that.hub.broadcast(ActionGameState, that.state())

	return nil
}

func (that *Server) handleGameEnd(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	if !that.rounds.GameExists() {
		return that.sendErrorResponse(ctx, conn, msg.Action, apperror.ErrNoActiveGame.Error())
	}

	that.rounds.EndGame(ctx)
	that.hub.broadcast(ActionGameState, that.state())

	return nil
}

func (that *Server) handleMoveSelect(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMoveSelect")

	var payload selectPayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			log.Warn("failed to unmarshal payload", "error", err)
			return that.sendErrorResponse(ctx, conn, msg.Action, msgMalformed)
		}
	}

	if payload.Cell == nil {
		return that.sendErrorResponse(ctx, conn, msg.Action, msgCellRequired)
	}

	if !that.rounds.SelectMove(*payload.Cell) {
		log.Debug("move not accepted", "cell", payload.Cell.String())
		return that.sendErrorResponse(ctx, conn, msg.Action, msgMoveRejected)
	}

	return nil
}
