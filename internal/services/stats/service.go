package stats

import (
	"context"
	"encoding/json"
	"time"

	"tableside/internal/cache"
	"tableside/internal/logger"
	"tableside/internal/models"
)

const (
	topItemsLimit = 10
	cacheTTL      = 30 * time.Second
)

// Store is the read-only aggregation surface over stored orders
type Store interface {
	OrderStats(ctx context.Context, since time.Time) ([]models.StatusStat, error)
	CategoryRevenue(ctx context.Context, since time.Time) ([]models.CategoryRevenue, error)
	TopItems(ctx context.Context, since time.Time, limit int) ([]models.TopItem, error)
}

// Service aggregates revenue and popularity rollups over today's orders.
// Results are cached briefly; the cache may be nil.
type Service struct {
	store  Store
	cache  cache.Cache
	logger *logger.Logger
	now    func() time.Time
}

// NewService creates the stats aggregator. c may be nil.
func NewService(store Store, c cache.Cache, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		cache:  c,
		logger: log,
		now:    time.Now,
	}
}

// GetStats returns today's per-status counts, per-category revenue and top
// items. A day with no orders yields empty result sets, not an error.
func (s *Service) GetStats(ctx context.Context, requestID string) (*models.StatsResponse, error) {
	since := startOfDay(s.now())

	var key string
	if s.cache != nil {
		key = s.cache.GenerateKey("stats", since.Format("20060102"))
		if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
			var resp models.StatsResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
		}
	}

	orderStats, err := s.store.OrderStats(ctx, since)
	if err != nil {
		return nil, err
	}

	categoryRevenue, err := s.store.CategoryRevenue(ctx, since)
	if err != nil {
		return nil, err
	}

	topItems, err := s.store.TopItems(ctx, since, topItemsLimit)
	if err != nil {
		return nil, err
	}

	resp := &models.StatsResponse{
		OrderStats:      orderStats,
		CategoryRevenue: categoryRevenue,
		TopItems:        topItems,
	}
	if resp.OrderStats == nil {
		resp.OrderStats = []models.StatusStat{}
	}
	if resp.CategoryRevenue == nil {
		resp.CategoryRevenue = []models.CategoryRevenue{}
	}
	if resp.TopItems == nil {
		resp.TopItems = []models.TopItem{}
	}

	if s.cache != nil {
		if body, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, key, string(body), cacheTTL); err != nil {
				s.logger.Error("stats_cache_failed", "Failed to cache stats snapshot", requestID, err, nil)
			}
		}
	}

	return resp, nil
}

// startOfDay returns local midnight of the day containing t.
func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
