package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/repository"
)

const (
	defaultStatisticsLimit = 10
	maxStatisticsLimit     = 100
)

type Handlers interface {
	PingHandler(c *gin.Context)

	ListPlayers(c *gin.Context)

	ListStatistics(c *gin.Context)
	GetStatistics(c *gin.Context)
}

type playerService interface {
	ListPlayers(ctx context.Context) ([]entity.Player, error)
}

type statisticsRepo interface {
	GetByID(ctx context.Context, runID string) (*entity.RunStatistics, error)
	ListRecent(ctx context.Context, limit int) ([]entity.RunStatistics, error)
}

type handlers struct {
	logger    *slog.Logger
	players   playerService
	statsRepo statisticsRepo
}

func NewHandlers(logger *slog.Logger, players playerService, statsRepo statisticsRepo) Handlers {
	return &handlers{
		logger:    logger.With("component", "rest"),
		players:   players,
		statsRepo: statsRepo,
	}
}

// ListPlayers - players known to the game backend.
func (that *handlers) ListPlayers(c *gin.Context) {
	log := that.logger.With("method", "ListPlayers")

	players, err := that.players.ListPlayers(c.Request.Context())
	if err != nil {
		log.Error("failed to list players", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to list players"})
		return
	}

	c.JSON(http.StatusOK, players)
}

// ListStatistics - most recent runs first, ?limit= caps the result.
func (that *handlers) ListStatistics(c *gin.Context) {
	log := that.logger.With("method", "ListStatistics")

	limit := defaultStatisticsLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive number"})
			return
		}
		limit = min(parsed, maxStatisticsLimit)
	}

	stats, err := that.statsRepo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		log.Error("failed to list statistics", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (that *handlers) GetStatistics(c *gin.Context) {
	log := that.logger.With("method", "GetStatistics")

	stats, err := that.statsRepo.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrStatisticsNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if err != nil {
		log.Error("failed to get statistics", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
