package order

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableside/internal/apperr"
	"tableside/internal/logger"
	"tableside/internal/models"
)

// fakeStore is an in-memory Store that mirrors the repository's atomicity:
// CreateOrder applies popularity bumps, the order and the table flip
// together, and rejects the whole write if a line is unavailable.
type fakeStore struct {
	tables map[uuid.UUID]*models.Table
	items  map[uuid.UUID]*models.MenuItem
	orders map[uuid.UUID]*models.Order
	clock  time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tables: make(map[uuid.UUID]*models.Table),
		items:  make(map[uuid.UUID]*models.MenuItem),
		orders: make(map[uuid.UUID]*models.Order),
		clock:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) addTable(number int, status models.TableStatus) *models.Table {
	t := &models.Table{ID: uuid.New(), Number: number, QRSlug: "slug", Status: status}
	f.tables[t.ID] = t
	return t
}

func (f *fakeStore) addItem(name string, price float64, available bool) *models.MenuItem {
	i := &models.MenuItem{ID: uuid.New(), Name: name, Price: price, Availability: available}
	f.items[i.ID] = i
	return i
}

func (f *fakeStore) GetTable(_ context.Context, id uuid.UUID) (*models.Table, error) {
	t, ok := f.tables[id]
	if !ok {
		return nil, apperr.NotFound("table")
	}
	copy := *t
	return &copy, nil
}

func (f *fakeStore) GetMenuItem(_ context.Context, id uuid.UUID) (*models.MenuItem, error) {
	i, ok := f.items[id]
	if !ok {
		return nil, apperr.NotFound("menu item")
	}
	copy := *i
	return &copy, nil
}

func (f *fakeStore) CreateOrder(_ context.Context, order *models.Order) error {
	for _, line := range order.Items {
		item, ok := f.items[line.MenuItemID]
		if !ok || !item.Availability {
			return apperr.ValidationError{Field: "items", Message: "item not available"}
		}
	}
	for _, line := range order.Items {
		f.items[line.MenuItemID].Popularity += line.Quantity
	}

	f.clock = f.clock.Add(time.Minute)
	order.CreatedAt = f.clock
	order.UpdatedAt = f.clock
	stored := *order
	f.orders[order.ID] = &stored
	f.tables[order.TableID].Status = models.TableOccupied
	return nil
}

func (f *fakeStore) GetOrder(_ context.Context, id uuid.UUID) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, apperr.NotFound("order")
	}
	copy := *o
	return &copy, nil
}

func (f *fakeStore) ListOrders(_ context.Context, filter models.OrderFilter) ([]models.Order, int, error) {
	var matched []models.Order
	for _, o := range f.orders {
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		if filter.TableID != nil && o.TableID != *filter.TableID {
			continue
		}
		matched = append(matched, *o)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (f *fakeStore) ListOrdersByCustomer(_ context.Context, customerID uuid.UUID) ([]models.Order, error) {
	var matched []models.Order
	for _, o := range f.orders {
		if o.CustomerID != nil && *o.CustomerID == customerID {
			matched = append(matched, *o)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (f *fakeStore) UpdateOrderStatus(_ context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, apperr.NotFound("order")
	}
	o.Status = status
	copy := *o
	return &copy, nil
}

func (f *fakeStore) CountActiveOrders(_ context.Context, tableID uuid.UUID) (int, error) {
	count := 0
	for _, o := range f.orders {
		if o.TableID == tableID && o.Status.IsActive() {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) SetTableStatus(_ context.Context, tableID uuid.UUID, status models.TableStatus) error {
	t, ok := f.tables[tableID]
	if !ok {
		return apperr.NotFound("table")
	}
	t.Status = status
	return nil
}

func newTestService(store *fakeStore) *Service {
	return NewService(store, nil, logger.New("order-test"))
}

func TestCreateOrderPricing(t *testing.T) {
	store := newFakeStore()
	table := store.addTable(5, models.TableAvailable)
	pizza := store.addItem("Margherita", 19.99, true)
	cola := store.addItem("Cola", 5.00, true)

	svc := newTestService(store)

	order, err := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{
		TableID: table.ID,
		Items: []models.CreateOrderItem{
			{MenuItemID: pizza.ID, Quantity: 2},
			{MenuItemID: cola.ID, Quantity: 1, Note: "no ice"},
		},
	}, "req-1")
	require.NoError(t, err)

	assert.Equal(t, 44.98, order.Subtotal)
	assert.Equal(t, 2.25, order.Tax) // 44.98 * 0.05 = 2.249 -> 2.25
	assert.Equal(t, 47.23, order.Total)
	assert.Equal(t, models.StatusPlaced, order.Status)
	assert.Equal(t, 5, order.TableNumber)

	// Line snapshots carry name and price at order time.
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Margherita", order.Items[0].Name)
	assert.Equal(t, 19.99, order.Items[0].Price)
	assert.Equal(t, "no ice", order.Items[1].Note)

	// A later price edit must not change the stored order.
	store.items[pizza.ID].Price = 99.99
	stored, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 44.98, stored.Subtotal)
	assert.Equal(t, 19.99, stored.Items[0].Price)

	assert.Equal(t, 2, store.items[pizza.ID].Popularity)
	assert.Equal(t, 1, store.items[cola.ID].Popularity)
	assert.Equal(t, models.TableOccupied, store.tables[table.ID].Status)
}

func TestCreateOrderUnavailableLineRejectsWholeOrder(t *testing.T) {
	store := newFakeStore()
	table := store.addTable(3, models.TableAvailable)
	soup := store.addItem("Soup", 8.50, true)
	salad := store.addItem("Salad", 7.00, true)
	special := store.addItem("Special", 25.00, false)

	svc := newTestService(store)

	_, err := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{
		TableID: table.ID,
		Items: []models.CreateOrderItem{
			{MenuItemID: soup.ID, Quantity: 1},
			{MenuItemID: salad.ID, Quantity: 1},
			{MenuItemID: special.ID, Quantity: 1},
		},
	}, "req-1")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Contains(t, err.Error(), special.ID.String())

	// No partial side effects: no popularity bumps, no order, table untouched.
	assert.Equal(t, 0, store.items[soup.ID].Popularity)
	assert.Equal(t, 0, store.items[salad.ID].Popularity)
	assert.Empty(t, store.orders)
	assert.Equal(t, models.TableAvailable, store.tables[table.ID].Status)
}

func TestCreateOrderUnknownItem(t *testing.T) {
	store := newFakeStore()
	table := store.addTable(1, models.TableAvailable)
	svc := newTestService(store)

	_, err := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{
		TableID: table.ID,
		Items:   []models.CreateOrderItem{{MenuItemID: uuid.New(), Quantity: 1}},
	}, "req-1")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Empty(t, store.orders)
}

func TestCreateOrderUnknownTable(t *testing.T) {
	store := newFakeStore()
	item := store.addItem("Pasta", 12.00, true)
	svc := newTestService(store)

	_, err := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{
		TableID: uuid.New(),
		Items:   []models.CreateOrderItem{{MenuItemID: item.ID, Quantity: 1}},
	}, "req-1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateOrderOccupiesReservedTable(t *testing.T) {
	store := newFakeStore()
	table := store.addTable(7, models.TableReserved)
	item := store.addItem("Tea", 3.00, true)
	svc := newTestService(store)

	_, err := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{
		TableID: table.ID,
		Items:   []models.CreateOrderItem{{MenuItemID: item.ID, Quantity: 1}},
	}, "req-1")
	require.NoError(t, err)
	assert.Equal(t, models.TableOccupied, store.tables[table.ID].Status)
}

func placeOrder(t *testing.T, svc *Service, store *fakeStore, table *models.Table, item *models.MenuItem) *models.Order {
	t.Helper()
	order, err := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{
		TableID: table.ID,
		Items:   []models.CreateOrderItem{{MenuItemID: item.ID, Quantity: 1}},
	}, "req")
	require.NoError(t, err)
	return order
}

func TestUpdateStatusReleasesTableAfterLastActiveOrder(t *testing.T) {
	store := newFakeStore()
	table := store.addTable(4, models.TableAvailable)
	item := store.addItem("Burger", 11.00, true)
	svc := newTestService(store)

	first := placeOrder(t, svc, store, table, item)
	second := placeOrder(t, svc, store, table, item)

	// Completing one of two active orders keeps the table occupied.
	_, err := svc.UpdateStatus(context.Background(), first.ID, "served", "req")
	require.NoError(t, err)
	assert.Equal(t, models.TableOccupied, store.tables[table.ID].Status)

	// Completing the last one releases it.
	_, err = svc.UpdateStatus(context.Background(), second.ID, "served", "req")
	require.NoError(t, err)
	assert.Equal(t, models.TableAvailable, store.tables[table.ID].Status)
}

func TestUpdateStatusCancelReleasesTable(t *testing.T) {
	store := newFakeStore()
	table := store.addTable(9, models.TableAvailable)
	item := store.addItem("Wrap", 9.00, true)
	svc := newTestService(store)

	order := placeOrder(t, svc, store, table, item)

	_, err := svc.UpdateStatus(context.Background(), order.ID, "canceled", "req")
	require.NoError(t, err)
	assert.Equal(t, models.TableAvailable, store.tables[table.ID].Status)
}

func TestUpdateStatusIdempotent(t *testing.T) {
	store := newFakeStore()
	table := store.addTable(2, models.TableAvailable)
	item := store.addItem("Fries", 4.50, true)
	svc := newTestService(store)

	order := placeOrder(t, svc, store, table, item)

	_, err := svc.UpdateStatus(context.Background(), order.ID, "served", "req")
	require.NoError(t, err)
	statusAfterFirst := store.tables[table.ID].Status

	_, err = svc.UpdateStatus(context.Background(), order.ID, "served", "req")
	require.NoError(t, err)

	assert.Equal(t, statusAfterFirst, store.tables[table.ID].Status)
	assert.Equal(t, models.TableAvailable, store.tables[table.ID].Status)
}

func TestUpdateStatusActiveTransitionKeepsTable(t *testing.T) {
	store := newFakeStore()
	table := store.addTable(6, models.TableAvailable)
	item := store.addItem("Steak", 30.00, true)
	svc := newTestService(store)

	order := placeOrder(t, svc, store, table, item)

	for _, status := range []string{"preparing", "ready"} {
		updated, err := svc.UpdateStatus(context.Background(), order.ID, status, "req")
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatus(status), updated.Status)
		assert.Equal(t, models.TableOccupied, store.tables[table.ID].Status)
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), "delivered", "req")
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), "served", "req")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetOrdersPagination(t *testing.T) {
	store := newFakeStore()
	table := store.addTable(1, models.TableAvailable)
	item := store.addItem("Taco", 6.00, true)
	svc := newTestService(store)

	for i := 0; i < 25; i++ {
		placeOrder(t, svc, store, table, item)
	}

	page1, err := svc.GetOrders(context.Background(), models.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, page1.Orders, 20)
	assert.Equal(t, 25, page1.Pagination.Total)
	assert.Equal(t, 1, page1.Pagination.Page)
	assert.Equal(t, 20, page1.Pagination.Limit)
	assert.Equal(t, 2, page1.Pagination.Pages)

	page2, err := svc.GetOrders(context.Background(), models.OrderFilter{Page: 2})
	require.NoError(t, err)
	assert.Len(t, page2.Orders, 5)
	assert.Equal(t, 2, page2.Pagination.Pages)

	// Newest first within a page.
	for i := 1; i < len(page1.Orders); i++ {
		assert.False(t, page1.Orders[i-1].CreatedAt.Before(page1.Orders[i].CreatedAt))
	}
}

func TestGetOrdersStatusFilter(t *testing.T) {
	store := newFakeStore()
	table := store.addTable(1, models.TableAvailable)
	item := store.addItem("Soup", 5.00, true)
	svc := newTestService(store)

	kept := placeOrder(t, svc, store, table, item)
	served := placeOrder(t, svc, store, table, item)
	_, err := svc.UpdateStatus(context.Background(), served.ID, "served", "req")
	require.NoError(t, err)

	placed := models.StatusPlaced
	page, err := svc.GetOrders(context.Background(), models.OrderFilter{Status: &placed})
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, kept.ID, page.Orders[0].ID)
}

func TestGetMyOrders(t *testing.T) {
	store := newFakeStore()
	table := store.addTable(1, models.TableAvailable)
	item := store.addItem("Cake", 7.50, true)
	svc := newTestService(store)

	customerID := uuid.New()
	_, err := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{
		TableID:    table.ID,
		Items:      []models.CreateOrderItem{{MenuItemID: item.ID, Quantity: 1}},
		CustomerID: &customerID,
	}, "req")
	require.NoError(t, err)

	placeOrder(t, svc, store, table, item) // guest order, not theirs

	orders, err := svc.GetMyOrders(context.Background(), customerID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].CustomerID)
	assert.Equal(t, customerID, *orders[0].CustomerID)
}
