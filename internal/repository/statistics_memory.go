package repository

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

// memoryStatistics keeps statistics in process when redis is disabled.
type memoryStatistics struct {
	mu   sync.RWMutex
	runs map[string]entity.RunStatistics
}

func NewMemoryStatisticsRepository() StatisticsRepository {
	return &memoryStatistics{
		runs: make(map[string]entity.RunStatistics),
	}
}

func (that *memoryStatistics) Save(_ context.Context, runID string, stats entity.RoundStatistics) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.runs[runID] = entity.RunStatistics{
		RunID:      runID,
		Statistics: stats.Copy(),
		UpdatedAt:  time.Now().UTC(),
	}

	return nil
}

func (that *memoryStatistics) GetByID(_ context.Context, runID string) (*entity.RunStatistics, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	stats, ok := that.runs[runID]
	if !ok {
		return nil, ErrStatisticsNotFound
	}

	stats.Statistics = stats.Statistics.Copy()

	return &stats, nil
}

// ListRecent - run ids are ULIDs, so sorting them descending puts the newest first.
func (that *memoryStatistics) ListRecent(_ context.Context, limit int) ([]entity.RunStatistics, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	result := make([]entity.RunStatistics, 0, len(that.runs))
	for _, stats := range that.runs {
		stats.Statistics = stats.Statistics.Copy()
		result = append(result, stats)
	}

	slices.SortFunc(result, func(a, b entity.RunStatistics) int {
		return strings.Compare(b.RunID, a.RunID)
	})

	if limit < 0 {
		limit = 0
	}
	if len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}
