package table

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"tableside/internal/apperr"
	"tableside/internal/database"
	"tableside/internal/models"
)

// Repository is the PostgreSQL-backed table registry store
type Repository struct {
	db *database.DB
}

// NewRepository creates a new table repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, table *models.Table) error {
	err := r.db.QueryRow(ctx, database.InsertTableSQL, table.Number, table.QRSlug).Scan(
		&table.ID, &table.CreatedAt, &table.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert table: %w", err)
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]models.Table, error) {
	rows, err := r.db.Query(ctx, database.ListTablesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	tables := []models.Table{}
	for rows.Next() {
		var t models.Table
		if err := rows.Scan(&t.ID, &t.Number, &t.QRSlug, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	return r.scanOne(r.db.QueryRow(ctx, database.GetTableSQL, id))
}

func (r *Repository) GetByNumber(ctx context.Context, number int) (*models.Table, error) {
	return r.scanOne(r.db.QueryRow(ctx, database.GetTableByNumberSQL, number))
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (*models.Table, error) {
	return r.scanOne(r.db.QueryRow(ctx, database.GetTableBySlugSQL, slug))
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, req *models.UpdateTableRequest) (*models.Table, error) {
	return r.scanOne(r.db.QueryRow(ctx, database.UpdateTableSQL, id, req.Number, req.Status))
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, database.DeleteTableSQL, id)
	if err != nil {
		return fmt.Errorf("failed to delete table: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("table")
	}
	return nil
}

func (r *Repository) scanOne(row pgx.Row) (*models.Table, error) {
	var t models.Table
	err := row.Scan(&t.ID, &t.Number, &t.QRSlug, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("table")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan table: %w", err)
	}
	return &t, nil
}
