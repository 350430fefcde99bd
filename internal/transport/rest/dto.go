package rest

import "github.com/rocketscienceinc/tictactoe-client/internal/entity"

type boardDTO struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

type newGameRequest struct {
	ConnectHowMany int                            `json:"connectHowMany"`
	FirstPlayer    entity.FirstPlayer             `json:"firstPlayer"`
	Board          boardDTO                       `json:"board"`
	Players        map[entity.Piece]entity.Player `json:"players"`
	Rounds         int                            `json:"rounds"`
}

type turnRequest struct {
	TurnNumber int          `json:"turnNumber"`
	Move       *entity.Cell `json:"move,omitempty"`
}

type sequenceDTO struct {
	Start entity.Cell `json:"start"`
	End   entity.Cell `json:"end"`
}

// gameDTO - reply to a played turn.
type gameDTO struct {
	ID              string       `json:"id"`
	Move            *entity.Move `json:"move"`
	TurnNumber      int          `json:"turnNumber"`
	NextPlayer      entity.Piece `json:"nextPlayer"`
	GameEnded       bool         `json:"gameEnded"`
	Winner          entity.Piece `json:"winner"`
	WinningSequence *sequenceDTO `json:"winningSequence"`
}

// gameDetailDTO - reply to a created game, carries the full board.
type gameDetailDTO struct {
	gameDTO
	ConnectHowMany int          `json:"connectHowMany"`
	Board          entity.Board `json:"board"`
}

func toNewGameRequest(cfg entity.GameConfiguration) newGameRequest {
	return newGameRequest{
		ConnectHowMany: cfg.ConnectHowMany,
		FirstPlayer:    cfg.FirstPlayer,
		Board:          boardDTO{Rows: cfg.Board.Rows, Columns: cfg.Board.Columns},
		Players:        cfg.Players,
		Rounds:         cfg.Rounds,
	}
}

func (that *gameDetailDTO) toGameState() *entity.GameState {
	return &entity.GameState{
		ID:             that.ID,
		Board:          that.Board,
		NextPlayer:     that.NextPlayer,
		TurnNumber:     that.TurnNumber,
		ConnectHowMany: that.ConnectHowMany,
	}
}

func (that *gameDTO) toTurnState() *entity.TurnState {
	state := &entity.TurnState{
		NextPlayer: that.NextPlayer,
		TurnNumber: that.TurnNumber,
		GameEnded:  that.GameEnded,
		Winner:     that.Winner,
	}

	if that.Move != nil {
		state.Move = *that.Move
	}

	if that.WinningSequence != nil {
		state.WinningSequence = &entity.Sequence{
			Start: that.WinningSequence.Start,
			End:   that.WinningSequence.End,
		}
	}

	return state
}
