package menu

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

// Repository is the PostgreSQL-backed menu catalog store
type Repository struct {
	db *database.DB
}

// NewRepository creates a new menu repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListCategories(ctx context.Context) ([]models.MenuCategory, error) {
	rows, err := r.db.Query(ctx, database.ListCategoriesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []models.MenuCategory{}
	for rows.Next() {
		var c models.MenuCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.DisplayOrder, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *Repository) CreateCategory(ctx context.Context, category *models.MenuCategory) error {
	err := r.db.QueryRow(ctx, database.InsertCategorySQL,
		category.Name, category.DisplayOrder, category.Active,
	).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (r *Repository) UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.MenuCategory, error) {
	var c models.MenuCategory
	err := r.db.QueryRow(ctx, database.UpdateCategorySQL,
		id, req.Name, req.DisplayOrder, req.Active,
	).Scan(&c.ID, &c.Name, &c.DisplayOrder, &c.Active, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("category")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return &c, nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, database.DeleteCategorySQL, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("category")
	}
	return nil
}

func (r *Repository) ListItems(ctx context.Context, filter models.MenuItemFilter) ([]models.MenuItem, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND i.name ILIKE $%d", len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where += fmt.Sprintf(" AND i.category_id = $%d", len(args))
	}
	if filter.Availability != nil {
		args = append(args, *filter.Availability)
		where += fmt.Sprintf(" AND i.availability = $%d", len(args))
	}

	var total int
	countSQL := "SELECT COUNT(*) FROM menu_items i " + where
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count menu items: %w", err)
	}

	orderBy := "i.name ASC"
	switch filter.Sort {
	case "price-asc":
		orderBy = "i.price ASC"
	case "price-desc":
		orderBy = "i.price DESC"
	case "popularity":
		orderBy = "i.popularity DESC"
	}

	listSQL := fmt.Sprintf(`
		SELECT i.id, i.category_id, c.name, i.name, i.description, i.price,
			   i.image_url, i.availability, i.popularity, i.created_at, i.updated_at
		FROM menu_items i
		JOIN menu_categories c ON c.id = i.category_id
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`, where, orderBy, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.ID, &item.CategoryID, &item.CategoryName,
			&item.Name, &item.Description, &item.Price, &item.ImageURL,
			&item.Availability, &item.Popularity, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *Repository) GetItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.QueryRow(ctx, database.GetMenuItemSQL, id).Scan(
		&item.ID, &item.CategoryID, &item.CategoryName, &item.Name, &item.Description,
		&item.Price, &item.ImageURL, &item.Availability, &item.Popularity,
		&item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("menu item")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return &item, nil
}

func (r *Repository) CreateItem(ctx context.Context, item *models.MenuItem) error {
	err := r.db.QueryRow(ctx, database.InsertMenuItemSQL,
		item.CategoryID, item.Name, item.Description, item.Price, item.Availability,
	).Scan(&item.ID, &item.Popularity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert menu item: %w", err)
	}
	return nil
}

func (r *Repository) UpdateItem(ctx context.Context, id uuid.UUID, req *models.UpdateMenuItemRequest) (*models.MenuItem, error) {
	var updatedID uuid.UUID
	err := r.db.QueryRow(ctx, database.UpdateMenuItemSQL,
		id, req.CategoryID, req.Name, req.Description, req.Price, req.Availability,
	).Scan(&updatedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("menu item")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	return r.GetItem(ctx, id)
}

func (r *Repository) SetItemImage(ctx context.Context, id uuid.UUID, imageURL string) error {
	tag, err := r.db.Pool.Exec(ctx, database.SetMenuItemImageSQL, id, imageURL)
	if err != nil {
		return fmt.Errorf("failed to set item image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("menu item")
	}
	return nil
}

func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, database.DeleteMenuItemSQL, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("menu item")
	}
	return nil
}
