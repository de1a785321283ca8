package stats

import (
	"context"
	"fmt"
	"time"

	"tableside/internal/database"
	"tableside/internal/models"
)

// Repository runs the aggregation queries against PostgreSQL
type Repository struct {
	db *database.DB
}

// NewRepository creates a new stats repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) OrderStats(ctx context.Context, since time.Time) ([]models.StatusStat, error) {
	rows, err := r.db.Query(ctx, database.OrderStatsSQL, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query order stats: %w", err)
	}
	defer rows.Close()

	stats := []models.StatusStat{}
	for rows.Next() {
		var s models.StatusStat
		if err := rows.Scan(&s.Status, &s.Count, &s.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan order stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *Repository) CategoryRevenue(ctx context.Context, since time.Time) ([]models.CategoryRevenue, error) {
	rows, err := r.db.Query(ctx, database.CategoryRevenueSQL, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query category revenue: %w", err)
	}
	defer rows.Close()

	revenue := []models.CategoryRevenue{}
	for rows.Next() {
		var c models.CategoryRevenue
		if err := rows.Scan(&c.Category, &c.Revenue, &c.ItemsSold); err != nil {
			return nil, fmt.Errorf("failed to scan category revenue: %w", err)
		}
		revenue = append(revenue, c)
	}
	return revenue, rows.Err()
}

func (r *Repository) TopItems(ctx context.Context, since time.Time, limit int) ([]models.TopItem, error) {
	rows, err := r.db.Query(ctx, database.TopItemsSQL, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top items: %w", err)
	}
	defer rows.Close()

	items := []models.TopItem{}
	for rows.Next() {
		var i models.TopItem
		if err := rows.Scan(&i.MenuItemID, &i.Name, &i.TotalQuantity, &i.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan top item: %w", err)
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
