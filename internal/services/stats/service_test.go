package stats

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableside/internal/logger"
	"tableside/internal/models"
)

type fakeStore struct {
	orderStats      []models.StatusStat
	categoryRevenue []models.CategoryRevenue
	topItems        []models.TopItem
	calls           int
	lastSince       time.Time
	lastLimit       int
}

func (f *fakeStore) OrderStats(_ context.Context, since time.Time) ([]models.StatusStat, error) {
	f.calls++
	f.lastSince = since
	return f.orderStats, nil
}

func (f *fakeStore) CategoryRevenue(_ context.Context, since time.Time) ([]models.CategoryRevenue, error) {
	return f.categoryRevenue, nil
}

func (f *fakeStore) TopItems(_ context.Context, since time.Time, limit int) ([]models.TopItem, error) {
	f.lastLimit = limit
	return f.topItems, nil
}

// fakeCache is a map-backed Cache for tests
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value.(string)
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *fakeCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *fakeCache) GenerateKey(operation, key string) string {
	return "test:" + operation + ":" + key
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+6", 6*3600)
	now := time.Date(2025, 6, 15, 18, 42, 7, 0, loc)

	got := startOfDay(now)

	want := time.Date(2025, 6, 15, 0, 0, 0, 0, loc)
	assert.True(t, got.Equal(want), "startOfDay() = %v, want %v", got, want)
}

func TestGetStatsEmptyDay(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil, logger.New("stats-test"))

	resp, err := svc.GetStats(context.Background(), "req")
	require.NoError(t, err)

	// Empty result sets, never nil, never an error.
	assert.NotNil(t, resp.OrderStats)
	assert.NotNil(t, resp.CategoryRevenue)
	assert.NotNil(t, resp.TopItems)
	assert.Empty(t, resp.OrderStats)
	assert.Equal(t, 10, store.lastLimit)
}

func TestGetStatsQueriesTodayWindow(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil, logger.New("stats-test"))
	svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	}

	_, err := svc.GetStats(context.Background(), "req")
	require.NoError(t, err)

	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.True(t, store.lastSince.Equal(want), "since = %v, want %v", store.lastSince, want)
}

func TestGetStatsCachesSnapshot(t *testing.T) {
	store := &fakeStore{
		orderStats: []models.StatusStat{
			{Status: models.StatusPlaced, Count: 3, Revenue: 120.50},
		},
	}
	svc := NewService(store, newFakeCache(), logger.New("stats-test"))

	first, err := svc.GetStats(context.Background(), "req")
	require.NoError(t, err)
	require.Equal(t, 1, store.calls)

	second, err := svc.GetStats(context.Background(), "req")
	require.NoError(t, err)

	// Served from cache, store untouched.
	assert.Equal(t, 1, store.calls)
	assert.Equal(t, first.OrderStats, second.OrderStats)
}
