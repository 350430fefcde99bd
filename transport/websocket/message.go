package websocket

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"nhooyr.io/websocket"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

// Commands sent by the browser.
const (
	actionGameStart  = "game:start"
	actionGamePause  = "game:pause"
	actionGameResume = "game:resume"
	actionGameEnd    = "game:end"
	actionMoveSelect = "move:select"
)

// Events sent to the browser.
const (
	ActionGameState      = "game:state"
	ActionGameStarted    = "game:started"
	ActionMoveCompleted  = "move:completed"
	ActionShowLastMove   = "move:last"
	ActionRoundCompleted = "round:completed"
	ActionGameFinished   = "game:finished"
	ActionGameFailed     = "game:failed"
	ActionError          = "error"
)

const writeTimeout = 5 * time.Second

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type startPayload struct {
	Config entity.GameConfiguration `json:"config"`
}

type selectPayload struct {
	Cell *entity.Cell `json:"cell"`
}

type errorPayload struct {
	Action  string `json:"action"`
	Message string `json:"message"`
}

type failurePayload struct {
	Message string `json:"message"`
}

// StatePayload - what a freshly connected browser needs to render the controls.
type StatePayload struct {
	GameExists bool                   `json:"gameExists"`
	Paused     bool                   `json:"paused"`
	Statistics entity.RoundStatistics `json:"statistics"`
}

func encodeMessage(action string, payload any) ([]byte, error) {
	message := Message{Action: action}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		message.Payload = raw
	}

	data, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return data, nil
}

func writeFrame(ctx context.Context, conn *websocket.Conn, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	return nil
}
