package menu

import (
	"context"

	"github.com/google/uuid"

	"tableside/internal/logger"
	"tableside/internal/models"
)

// Store is the storage surface of the menu catalog
type Store interface {
	ListCategories(ctx context.Context) ([]models.MenuCategory, error)
	CreateCategory(ctx context.Context, category *models.MenuCategory) error
	UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.MenuCategory, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListItems(ctx context.Context, filter models.MenuItemFilter) ([]models.MenuItem, int, error)
	GetItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	CreateItem(ctx context.Context, item *models.MenuItem) error
	UpdateItem(ctx context.Context, id uuid.UUID, req *models.UpdateMenuItemRequest) (*models.MenuItem, error)
	SetItemImage(ctx context.Context, id uuid.UUID, imageURL string) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

// Service manages the menu catalog: categories and items
type Service struct {
	store  Store
	logger *logger.Logger
}

// NewService creates the menu catalog service
func NewService(store Store, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: log,
	}
}

// ListCategories returns the active categories in display order
func (s *Service) ListCategories(ctx context.Context) ([]models.MenuCategory, error) {
	return s.store.ListCategories(ctx)
}

// CreateCategory adds a new category
func (s *Service) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.MenuCategory, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	category := &models.MenuCategory{
		Name:         req.Name,
		DisplayOrder: req.DisplayOrder,
		Active:       active,
	}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory patches a category; nil fields are left unchanged
func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.MenuCategory, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.store.UpdateCategory(ctx, id, req)
}

// DeleteCategory removes a category
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteCategory(ctx, id)
}

// ListItems returns a page of menu items. Defaults: available items only,
// sorted by name, page 1, limit 20.
func (s *Service) ListItems(ctx context.Context, filter models.MenuItemFilter) ([]models.MenuItem, models.Pagination, error) {
	filter.Normalize()

	items, total, err := s.store.ListItems(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return items, models.NewPagination(total, filter.Page, filter.Limit), nil
}

// GetItem returns a single menu item with its category name resolved
func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	return s.store.GetItem(ctx, id)
}

// CreateItem adds a new menu item
func (s *Service) CreateItem(ctx context.Context, req *models.CreateMenuItemRequest) (*models.MenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	availability := true
	if req.Availability != nil {
		availability = *req.Availability
	}

	item := &models.MenuItem{
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        models.Round2(req.Price),
		Availability: availability,
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem patches a menu item; nil fields are left unchanged
func (s *Service) UpdateItem(ctx context.Context, id uuid.UUID, req *models.UpdateMenuItemRequest) (*models.MenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Price != nil {
		rounded := models.Round2(*req.Price)
		req.Price = &rounded
	}
	return s.store.UpdateItem(ctx, id, req)
}

// SetItemImage records an uploaded image URL on the item
func (s *Service) SetItemImage(ctx context.Context, id uuid.UUID, imageURL string) error {
	return s.store.SetItemImage(ctx, id, imageURL)
}

// DeleteItem removes a menu item
func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteItem(ctx, id)
}
