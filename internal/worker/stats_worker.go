package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DaviCMachado/my-price-tracker/internal/derived"
	"github.com/DaviCMachado/my-price-tracker/internal/repository"
)

// StatsCacheKey holds the pre-serialized dashboard stats. Readers treat the
// cache as advisory: a miss means compute on demand.
const StatsCacheKey = "dashboard:stats"

// StatsCacheTTL bounds staleness if a recompute job is ever lost.
const StatsCacheTTL = 4 * time.Hour

// StatsWorker recomputes the dashboard aggregates from the full record
// snapshot and warms the Redis cache.
type StatsWorker struct {
	records repository.PriceRecordRepository
	rdb     *redis.Client
}

func NewStatsWorker(records repository.PriceRecordRepository, rdb *redis.Client) *StatsWorker {
	return &StatsWorker{records: records, rdb: rdb}
}

func (w *StatsWorker) Process(ctx context.Context) error {
	records, err := w.records.ListAll(ctx)
	if err != nil {
		return err
	}
	stats := derived.Aggregate(records)
	b, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return w.rdb.Set(ctx, StatsCacheKey, b, StatsCacheTTL).Err()
}
