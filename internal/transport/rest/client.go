package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

const contentTypeJSON = "application/json"

// Client - talks to the game backend over its REST API.
type Client struct {
	logger  *slog.Logger
	baseURL string
	timeout time.Duration
	http    *fasthttp.Client
}

func NewClient(logger *slog.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		logger:  logger.With("component", "backend-client"),
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http: &fasthttp.Client{
			Name:                     "tictactoe-client",
			NoDefaultUserAgentHeader: true,
		},
	}
}

// CreateGame - creates a new game on the backend and returns its initial state.
func (that *Client) CreateGame(ctx context.Context, cfg entity.GameConfiguration) (*entity.GameState, error) {
	var detail gameDetailDTO
	if err := that.do(ctx, fasthttp.MethodPost, "/games", toNewGameRequest(cfg), fasthttp.StatusCreated, &detail); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return detail.toGameState(), nil
}

// PlayTurn - plays turn number turnNumber. A nil move asks the backend to move for an AI player.
func (that *Client) PlayTurn(ctx context.Context, gameID string, turnNumber int, move *entity.Cell) (*entity.TurnState, error) {
	path := "/games/" + url.PathEscape(gameID) + "/turns"

	var game gameDTO
	err := that.do(ctx, fasthttp.MethodPost, path, turnRequest{TurnNumber: turnNumber, Move: move}, fasthttp.StatusCreated, &game)
	if isNotFound(err) {
		return nil, fmt.Errorf("failed to play turn %d: %w", turnNumber, apperror.ErrSessionExpired)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to play turn %d: %w", turnNumber, err)
	}

	return game.toTurnState(), nil
}

// DeleteGame - removes the game from the backend. A game that is already gone counts as deleted.
func (that *Client) DeleteGame(ctx context.Context, gameID string) error {
	err := that.do(ctx, fasthttp.MethodDelete, "/games/"+url.PathEscape(gameID), nil, fasthttp.StatusNoContent, nil)
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

func (that *Client) ListPlayers(ctx context.Context) ([]entity.Player, error) {
	var players []entity.Player
	if err := that.do(ctx, fasthttp.MethodGet, "/players", nil, fasthttp.StatusOK, &players); err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	return players, nil
}

type statusError struct {
	status int
}

func (that *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", that.status)
}

func isNotFound(err error) bool {
	var statusErr *statusError
	return errors.As(err, &statusErr) && statusErr.status == fasthttp.StatusNotFound
}

func (that *Client) do(ctx context.Context, method, path string, body any, expected int, out any) error {
	log := that.logger.With("method", method, "path", path)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrBackend, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.SetRequestURI(that.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, contentTypeJSON)

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}

		req.Header.SetContentType(contentTypeJSON)
		req.SetBodyRaw(payload)
	}

	if err := that.send(ctx, req, resp); err != nil {
		log.Error("backend request failed", "error", err)
		return fmt.Errorf("%w: %w", apperror.ErrBackend, err)
	}

	status := resp.StatusCode()
	log.Debug("backend replied", "status", status)

	if status != expected && (status < 200 || status >= 300) {
		return fmt.Errorf("%w: %w", apperror.ErrBackend, &statusError{status: status})
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", apperror.ErrBackend, err)
	}

	return nil
}

// send - applies the smaller of the context deadline and the configured timeout.
func (that *Client) send(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	deadline, hasDeadline := ctx.Deadline()
	if that.timeout <= 0 && !hasDeadline {
		return that.http.Do(req, resp)
	}

	timeout := that.timeout
	if hasDeadline {
		if left := time.Until(deadline); that.timeout <= 0 || left < timeout {
			timeout = left
		}
	}

	if timeout <= 0 {
		return context.DeadlineExceeded
	}

	return that.http.DoTimeout(req, resp, timeout)
}
