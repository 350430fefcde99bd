package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

const (
	statisticsKeyPrefix = "statistics:"
	statisticsRunsKey   = "statistics:runs"
)

var ErrStatisticsNotFound = errors.New("statistics not found")

type StatisticsRepository interface {
	Save(ctx context.Context, runID string, stats entity.RoundStatistics) error
	GetByID(ctx context.Context, runID string) (*entity.RunStatistics, error)
	ListRecent(ctx context.Context, limit int) ([]entity.RunStatistics, error)
}

type dbStatistics struct {
	client *redis.Client
	now    func() time.Time
}

func NewStatisticsRepository(client *redis.Client) StatisticsRepository {
	return &dbStatistics{
		client: client,
		now:    time.Now,
	}
}

// Save - stores the statistics of a run and indexes the run by the time it started.
func (that *dbStatistics) Save(ctx context.Context, runID string, stats entity.RoundStatistics) error {
	statsJSON, err := json.Marshal(entity.RunStatistics{
		RunID:      runID,
		Statistics: stats,
		UpdatedAt:  that.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("could not marshal statistics: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, statisticsKeyPrefix+runID, statsJSON, 0)
		pipe.ZAdd(ctx, statisticsRunsKey, redis.Z{Score: that.runScore(runID), Member: runID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set statistics: %w", err)
	}

	return nil
}

func (that *dbStatistics) GetByID(ctx context.Context, runID string) (*entity.RunStatistics, error) {
	response, err := that.client.Get(ctx, statisticsKeyPrefix+runID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrStatisticsNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("%w by id", err)
	}

	var stats entity.RunStatistics
	if err = json.Unmarshal([]byte(response), &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal statistics: %w", err)
	}

	return &stats, nil
}

// ListRecent - newest runs first.
func (that *dbStatistics) ListRecent(ctx context.Context, limit int) ([]entity.RunStatistics, error) {
	if limit <= 0 {
		return []entity.RunStatistics{}, nil
	}

	runIDs, err := that.client.ZRevRange(ctx, statisticsRunsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runIDs) == 0 {
		return []entity.RunStatistics{}, nil
	}

	keys := make([]string, 0, len(runIDs))
	for _, runID := range runIDs {
		keys = append(keys, statisticsKeyPrefix+runID)
	}

	values, err := that.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}

	result := make([]entity.RunStatistics, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var stats entity.RunStatistics
		if err = json.Unmarshal([]byte(raw), &stats); err != nil {
			return nil, fmt.Errorf("failed to unmarshal statistics: %w", err)
		}

		result = append(result, stats)
	}

	return result, nil
}

func (that *dbStatistics) runScore(runID string) float64 {
	id, err := ulid.ParseStrict(runID)
	if err != nil {
		return float64(that.now().UnixMilli())
	}

	return float64(id.Time())
}
