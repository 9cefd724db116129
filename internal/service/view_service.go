package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DaviCMachado/my-price-tracker/internal/derived"
	"github.com/DaviCMachado/my-price-tracker/internal/dto"
	"github.com/DaviCMachado/my-price-tracker/internal/model"
	"github.com/DaviCMachado/my-price-tracker/internal/repository"
	"github.com/DaviCMachado/my-price-tracker/internal/worker"
)

// ViewService serves the read-only derived views. All computation is delegated
// to the pure functions in internal/derived; this layer only loads snapshots
// and handles the dashboard-stats cache.
type ViewService interface {
	DashboardStats(ctx context.Context) (*dto.StatsResponse, error)
	ProductIndex(ctx context.Context) (*dto.ProductIndexResponse, error)
	Comparison(ctx context.Context, product string) (*dto.ComparisonResponse, error)
}

type viewService struct {
	records repository.PriceRecordRepository
	stores  repository.StoreRepository
	rdb     *redis.Client
}

func NewViewService(records repository.PriceRecordRepository, stores repository.StoreRepository, rdb *redis.Client) ViewService {
	return &viewService{records: records, stores: stores, rdb: rdb}
}

// DashboardStats tries the worker-warmed cache first and computes from the
// full snapshot on a miss, repopulating the cache best-effort.
func (s *viewService) DashboardStats(ctx context.Context) (*dto.StatsResponse, error) {
	if cached, err := s.rdb.Get(ctx, worker.StatsCacheKey).Bytes(); err == nil {
		var stats derived.Stats
		if jsonErr := json.Unmarshal(cached, &stats); jsonErr == nil {
			return statsToDTO(stats), nil
		}
	}

	records, err := s.records.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stats := derived.Aggregate(records)

	if b, jsonErr := json.Marshal(stats); jsonErr == nil {
		_ = s.rdb.Set(ctx, worker.StatsCacheKey, b, worker.StatsCacheTTL).Err()
	}
	return statsToDTO(stats), nil
}

func (s *viewService) ProductIndex(ctx context.Context) (*dto.ProductIndexResponse, error) {
	records, err := s.records.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ProductIndexResponse{Products: derived.DistinctProducts(records)}, nil
}

func (s *viewService) Comparison(ctx context.Context, product string) (*dto.ComparisonResponse, error) {
	records, err := s.records.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stores, err := s.stores.List(ctx)
	if err != nil {
		return nil, err
	}

	colors := make(map[string]string, len(stores))
	for _, st := range stores {
		colors[st.Name] = st.ColorTag
	}

	entries := derived.LatestPricePerStore(records, product)
	cmp := derived.NewComparison(entries)

	resp := &dto.ComparisonResponse{
		Product: product,
		Entries: make([]dto.ComparisonEntry, 0, len(entries)),
		Spread:  cmp.Spread.StringFixed(2),
	}
	for i := range entries {
		resp.Entries = append(resp.Entries, entryToDTO(&entries[i], colors))
	}
	if cmp.Cheapest != nil {
		e := entryToDTO(cmp.Cheapest, colors)
		resp.Cheapest = &e
	}
	if cmp.MostExpensive != nil {
		e := entryToDTO(cmp.MostExpensive, colors)
		resp.MostExpensive = &e
	}
	return resp, nil
}

func statsToDTO(s derived.Stats) *dto.StatsResponse {
	return &dto.StatsResponse{Count: s.Count, Mean: s.Mean, Min: s.Min, Max: s.Max}
}

func entryToDTO(r *model.PriceRecord, colors map[string]string) dto.ComparisonEntry {
	color, ok := colors[r.StoreName]
	if !ok {
		// Store renamed or deleted since the record was captured.
		color = model.DefaultColorTag
	}
	return dto.ComparisonEntry{
		Store:       r.StoreName,
		ColorTag:    color,
		Price:       r.Price.StringFixed(2),
		PromoFlag:   r.PromoFlag,
		DisplayDate: r.DisplayDate,
		RecordedAt:  r.RecordedAt.UTC().Format(time.RFC3339),
	}
}
