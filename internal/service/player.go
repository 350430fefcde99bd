package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

var ErrPlayerNotFound = errors.New("player not found")

type PlayerService interface {
	ListPlayers(ctx context.Context) ([]entity.Player, error)
	GetPlayerByID(ctx context.Context, id string) (entity.Player, error)
	FindByName(ctx context.Context, name string) (entity.Player, error)
}

type playerService struct {
	playerRepo playerRepo
}

type playerRepo interface {
	ListPlayers(ctx context.Context) ([]entity.Player, error)
}

func NewPlayerService(playerRepo playerRepo) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
	}
}

func (that *playerService) ListPlayers(ctx context.Context) ([]entity.Player, error) {
	players, err := that.playerRepo.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players %w", err)
	}

	return players, nil
}

func (that *playerService) GetPlayerByID(ctx context.Context, id string) (entity.Player, error) {
	return that.find(ctx, func(player entity.Player) bool { return player.ID == id })
}

func (that *playerService) FindByName(ctx context.Context, name string) (entity.Player, error) {
	return that.find(ctx, func(player entity.Player) bool { return player.Name == name })
}

func (that *playerService) find(ctx context.Context, match func(entity.Player) bool) (entity.Player, error) {
	players, err := that.ListPlayers(ctx)
	if err != nil {
		return entity.Player{}, err
	}

	for _, player := range players {
		if match(player) {
			return player, nil
		}
	}

	return entity.Player{}, ErrPlayerNotFound
}
