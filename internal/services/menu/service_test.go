package menu

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableside/internal/apperr"
	"tableside/internal/logger"
	"tableside/internal/models"
)

type fakeStore struct {
	lastFilter models.MenuItemFilter
	created    []*models.MenuItem
}

func (f *fakeStore) ListCategories(context.Context) ([]models.MenuCategory, error) {
	return []models.MenuCategory{}, nil
}

func (f *fakeStore) CreateCategory(_ context.Context, c *models.MenuCategory) error {
	c.ID = uuid.New()
	return nil
}

func (f *fakeStore) UpdateCategory(_ context.Context, id uuid.UUID, _ *models.UpdateCategoryRequest) (*models.MenuCategory, error) {
	return &models.MenuCategory{ID: id}, nil
}

func (f *fakeStore) DeleteCategory(context.Context, uuid.UUID) error { return nil }

func (f *fakeStore) ListItems(_ context.Context, filter models.MenuItemFilter) ([]models.MenuItem, int, error) {
	f.lastFilter = filter
	return []models.MenuItem{}, 0, nil
}

func (f *fakeStore) GetItem(context.Context, uuid.UUID) (*models.MenuItem, error) {
	return nil, apperr.NotFound("menu item")
}

func (f *fakeStore) CreateItem(_ context.Context, item *models.MenuItem) error {
	item.ID = uuid.New()
	f.created = append(f.created, item)
	return nil
}

func (f *fakeStore) UpdateItem(_ context.Context, id uuid.UUID, _ *models.UpdateMenuItemRequest) (*models.MenuItem, error) {
	return &models.MenuItem{ID: id}, nil
}

func (f *fakeStore) SetItemImage(context.Context, uuid.UUID, string) error { return nil }
func (f *fakeStore) DeleteItem(context.Context, uuid.UUID) error           { return nil }

func newTestService(store *fakeStore) *Service {
	return NewService(store, logger.New("menu-test"))
}

func TestListItemsDefaults(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	_, pagination, err := svc.ListItems(context.Background(), models.MenuItemFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1, store.lastFilter.Page)
	assert.Equal(t, 20, store.lastFilter.Limit)
	assert.Equal(t, "name", store.lastFilter.Sort)
	require.NotNil(t, store.lastFilter.Availability)
	assert.True(t, *store.lastFilter.Availability, "default listing shows available items only")
	assert.Equal(t, 0, pagination.Pages)
}

func TestListItemsExplicitAvailabilityPreserved(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	unavailable := false
	_, _, err := svc.ListItems(context.Background(), models.MenuItemFilter{Availability: &unavailable})
	require.NoError(t, err)

	require.NotNil(t, store.lastFilter.Availability)
	assert.False(t, *store.lastFilter.Availability)
}

func TestListItemsSortFallback(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	_, _, err := svc.ListItems(context.Background(), models.MenuItemFilter{Sort: "price; DROP TABLE"})
	require.NoError(t, err)
	assert.Equal(t, "name", store.lastFilter.Sort)
}

func TestCreateItemRoundsPrice(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	item, err := svc.CreateItem(context.Background(), &models.CreateMenuItemRequest{
		CategoryID: uuid.New(),
		Name:       "Latte",
		Price:      4.999,
	})
	require.NoError(t, err)
	assert.Equal(t, 5.00, item.Price)
	assert.True(t, item.Availability, "items default to available")
}

func TestCreateItemValidation(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	tests := []struct {
		name string
		req  models.CreateMenuItemRequest
	}{
		{"missing name", models.CreateMenuItemRequest{CategoryID: uuid.New(), Price: 1}},
		{"missing category", models.CreateMenuItemRequest{Name: "Tea", Price: 1}},
		{"negative price", models.CreateMenuItemRequest{CategoryID: uuid.New(), Name: "Tea", Price: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateItem(context.Background(), &tt.req)
			assert.True(t, apperr.IsValidation(err))
		})
	}

	assert.Empty(t, store.created)
}
