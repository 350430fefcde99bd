package entity

type PlayerType string

const (
	PlayerTypeAI    PlayerType = "AI"
	PlayerTypeHuman PlayerType = "HUMAN"
)

type Player struct {
	ID   string     `json:"id" validate:"required"`
	Name string     `json:"name" validate:"required"`
	Type PlayerType `json:"type" validate:"oneof=AI HUMAN"`
}

func (that Player) IsHuman() bool {
	return that.Type == PlayerTypeHuman
}

func (that Player) IsAI() bool {
	return that.Type == PlayerTypeAI
}
