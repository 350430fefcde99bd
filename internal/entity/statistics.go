package entity

import (
	"maps"
	"time"
)

type RoundStatistics struct {
	CurrentRound int           `json:"currentRound"`
	Wins         map[Piece]int `json:"wins"`
	Ties         int           `json:"ties"`
}

func NewRoundStatistics() RoundStatistics {
	return RoundStatistics{
		CurrentRound: 1,
		Wins:         map[Piece]int{PieceX: 0, PieceO: 0},
	}
}

// Record - counts a completed round, PieceNone as winner is a tie.
func (that *RoundStatistics) Record(winner Piece) {
	if that.Wins == nil {
		that.Wins = make(map[Piece]int, len(Pieces))
	}

	if winner.IsValid() {
		that.Wins[winner]++
	} else {
		that.Ties++
	}

	that.CurrentRound++
}

// Completed - number of rounds recorded so far.
func (that RoundStatistics) Completed() int {
	total := that.Ties
	for _, wins := range that.Wins {
		total += wins
	}
	return total
}

func (that RoundStatistics) Copy() RoundStatistics {
	that.Wins = maps.Clone(that.Wins)
	return that
}

// RunStatistics - statistics of one run of rounds as stored after every round.
type RunStatistics struct {
	RunID      string          `json:"runId"`
	Statistics RoundStatistics `json:"statistics"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
