// Package fakebackend serves a scripted game backend for tests.
package fakebackend

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

// Options - script of the fake backend. Zero values mean a game that only ends on a full board.
type Options struct {
	// EndAfter ends every game once that many turns were played.
	EndAfter int
	// Winner is reported when a game ends by EndAfter, PieceNone reports a tie.
	Winner entity.Piece
	// FailAtTurn makes the turn with this number answer with FailStatus.
	FailAtTurn int
	FailStatus int
	// BeforeTurn runs before a turn is applied, outside of the server lock.
	BeforeTurn func(gameID string, turnNumber int)
	Players    []entity.Player
}

type Server struct {
	*httptest.Server

	opts Options

	mu    sync.Mutex
	games map[string]*game
	turns []int

	Creates atomic.Int64
	Turns   atomic.Int64
	Deletes atomic.Int64
}

type game struct {
	id          string
	board       entity.Board
	next        entity.Piece
	turnNumber  int
	connect     int
	played      int
	ended       bool
	lastMove    *entity.Move
	winner      entity.Piece
	winningLine *entity.Sequence
}

type newGameRequest struct {
	ConnectHowMany int              `json:"connectHowMany"`
	FirstPlayer    entity.Piece     `json:"firstPlayer"`
	Board          entity.BoardSize `json:"board"`
	Players        map[string]any   `json:"players"`
}

type turnRequest struct {
	TurnNumber int          `json:"turnNumber"`
	Move       *entity.Cell `json:"move"`
}

type gameResponse struct {
	ID              string           `json:"id"`
	Move            *entity.Move     `json:"move"`
	TurnNumber      int              `json:"turnNumber"`
	NextPlayer      entity.Piece     `json:"nextPlayer"`
	GameEnded       bool             `json:"gameEnded"`
	Winner          *entity.Piece    `json:"winner"`
	WinningSequence *entity.Sequence `json:"winningSequence"`
	ConnectHowMany  int              `json:"connectHowMany,omitempty"`
	Board           [][]*string      `json:"board,omitempty"`
}

// New - starts the fake backend, it is closed when the test ends.
func New(t *testing.T, opts Options) *Server {
	t.Helper()

	gin.SetMode(gin.TestMode)

	if opts.Players == nil {
		opts.Players = DefaultPlayers()
	}

	server := &Server{
		opts:  opts,
		games: make(map[string]*game),
	}

	router := gin.New()
	router.POST("/games", server.createGame)
	router.POST("/games/:id/turns", server.playTurn)
	router.DELETE("/games/:id", server.deleteGame)
	router.GET("/players", server.listPlayers)

	server.Server = httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server
}

func DefaultPlayers() []entity.Player {
	return []entity.Player{
		{ID: "human", Name: "Human", Type: entity.PlayerTypeHuman},
		{ID: "mcts", Name: "Monte Carlo Tree Search", Type: entity.PlayerTypeAI},
		{ID: "naive", Name: "Naive", Type: entity.PlayerTypeAI},
	}
}

// ActiveGames - number of games created and not yet deleted.
func (that *Server) ActiveGames() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.games)
}

// TurnNumbers - turn numbers of all requests that were applied, in arrival order.
func (that *Server) TurnNumbers() []int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]int(nil), that.turns...)
}

func (that *Server) createGame(c *gin.Context) {
	var req newGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	that.Creates.Add(1)

	g := &game{
		id:         uuid.NewString(),
		board:      entity.NewBoard(req.Board.Rows, req.Board.Columns),
		next:       req.FirstPlayer,
		turnNumber: 1,
		connect:    req.ConnectHowMany,
	}

	that.mu.Lock()
	that.games[g.id] = g
	resp := g.response(true)
	that.mu.Unlock()

	c.JSON(http.StatusCreated, resp)
}

func (that *Server) playTurn(c *gin.Context) {
	gameID := c.Param("id")

	var req turnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	that.Turns.Add(1)

	if that.opts.BeforeTurn != nil {
		that.opts.BeforeTurn(gameID, req.TurnNumber)
	}

	if that.opts.FailAtTurn != 0 && req.TurnNumber == that.opts.FailAtTurn {
		c.JSON(that.opts.FailStatus, gin.H{"error": "scripted failure"})
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	g, ok := that.games[gameID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	if g.ended || req.TurnNumber != g.turnNumber {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unexpected turn"})
		return
	}

	cell, ok := g.pickCell(req.Move)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid move"})
		return
	}

	that.turns = append(that.turns, req.TurnNumber)
	g.apply(cell, that.opts)

	c.JSON(http.StatusCreated, g.response(false))
}

func (that *Server) deleteGame(c *gin.Context) {
	that.Deletes.Add(1)

	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[c.Param("id")]; !ok {
		c.Status(http.StatusNotFound)
		return
	}

	delete(that.games, c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (that *Server) listPlayers(c *gin.Context) {
	c.JSON(http.StatusOK, that.opts.Players)
}

// pickCell - uses the requested cell, or the first empty cell for an AI turn.
func (that *game) pickCell(move *entity.Cell) (entity.Cell, bool) {
	if move != nil {
		return *move, that.board.IsEmpty(*move)
	}

	for row := range that.board {
		for column := range that.board[row] {
			cell := entity.Cell{Row: row, Column: column}
			if that.board.IsEmpty(cell) {
				return cell, true
			}
		}
	}

	return entity.Cell{}, false
}

func (that *game) apply(cell entity.Cell, opts Options) {
	_ = that.board.Place(cell, that.next)

	that.lastMove = &entity.Move{Piece: that.next, Cell: cell}
	that.played++
	that.turnNumber++
	that.next = that.next.Other()

	if opts.EndAfter != 0 && that.played >= opts.EndAfter {
		that.ended = true
		that.winner = opts.Winner
		if that.winner.IsValid() {
			that.winningLine = &entity.Sequence{Start: cell, End: cell}
		}
		return
	}

	if _, free := that.pickCell(nil); !free {
		that.ended = true
	}
}

func (that *game) response(detail bool) gameResponse {
	resp := gameResponse{
		ID:              that.id,
		Move:            that.lastMove,
		TurnNumber:      that.turnNumber,
		NextPlayer:      that.next,
		GameEnded:       that.ended,
		WinningSequence: that.winningLine,
	}

	if that.winner.IsValid() {
		winner := that.winner
		resp.Winner = &winner
	}

	if detail {
		resp.ConnectHowMany = that.connect
		resp.Board = make([][]*string, len(that.board))
		for i, row := range that.board {
			resp.Board[i] = make([]*string, len(row))
			for j, piece := range row {
				if piece != entity.PieceNone {
					value := string(piece)
					resp.Board[i][j] = &value
				}
			}
		}
	}

	return resp
}
