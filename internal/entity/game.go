package entity

import (
	"errors"
	"fmt"
	"math/rand"
)

type Piece string

const (
	PieceX    Piece = "X"
	PieceO    Piece = "O"
	PieceNone Piece = ""
)

// Pieces lists the two playable pieces in a stable order.
var Pieces = [2]Piece{PieceX, PieceO}

var ErrInvalidCell = errors.New("invalid cell")

func (that Piece) Other() Piece {
	switch that {
	case PieceX:
		return PieceO
	case PieceO:
		return PieceX
	default:
		return PieceNone
	}
}

func (that Piece) IsValid() bool {
	return that == PieceX || that == PieceO
}

// RandomPiece - picks X or O uniformly.
func RandomPiece() Piece {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return PieceX
	}
	return PieceO
}

// Cell - position on the board, row 0 column 0 is the upper left corner.
type Cell struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func (that Cell) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Column)
}

type Move struct {
	Piece Piece `json:"piece"`
	Cell  Cell  `json:"cell"`
}

type Sequence struct {
	Start Cell `json:"start"`
	End   Cell `json:"end"`
}

// Board - row-major grid, an empty cell holds PieceNone.
type Board [][]Piece

func NewBoard(rows, columns int) Board {
	board := make(Board, rows)
	for i := range board {
		board[i] = make([]Piece, columns)
	}
	return board
}

func (that Board) Rows() int {
	return len(that)
}

func (that Board) Columns() int {
	if len(that) == 0 {
		return 0
	}
	return len(that[0])
}

func (that Board) Contains(cell Cell) bool {
	return cell.Row >= 0 && cell.Row < len(that) &&
		cell.Column >= 0 && cell.Column < len(that[cell.Row])
}

func (that Board) IsEmpty(cell Cell) bool {
	return that.Contains(cell) && that[cell.Row][cell.Column] == PieceNone
}

func (that Board) Place(cell Cell, piece Piece) error {
	if !that.Contains(cell) {
		return fmt.Errorf("%w: %s", ErrInvalidCell, cell)
	}

	that[cell.Row][cell.Column] = piece

	return nil
}

func (that Board) Copy() Board {
	board := make(Board, len(that))
	for i, row := range that {
		board[i] = append([]Piece(nil), row...)
	}
	return board
}

// GameState - snapshot of a server side game as seen by the client.
type GameState struct {
	ID             string `json:"id"`
	Board          Board  `json:"board"`
	NextPlayer     Piece  `json:"nextPlayer"`
	TurnNumber     int    `json:"turnNumber"`
	ConnectHowMany int    `json:"connectHowMany"`
}

// TurnState - backend reply to a played turn. TurnNumber is the number of the next turn.
type TurnState struct {
	Move            Move      `json:"move"`
	NextPlayer      Piece     `json:"nextPlayer"`
	TurnNumber      int       `json:"turnNumber"`
	GameEnded       bool      `json:"gameEnded"`
	Winner          Piece     `json:"winner"`
	WinningSequence *Sequence `json:"winningSequence,omitempty"`
}

// TurnResult - outcome of one played turn. A finished game without winner is a tie.
type TurnResult struct {
	Move            Move      `json:"move"`
	GameEnded       bool      `json:"gameEnded"`
	Winner          Piece     `json:"winner"`
	WinningSequence *Sequence `json:"winningSequence,omitempty"`
	TurnNumber      int       `json:"turnNumber"`
}

func (that *TurnResult) IsTie() bool {
	return that.GameEnded && that.Winner == PieceNone
}
