package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tableside/internal/apperr"
	"tableside/internal/logger"
	"tableside/internal/models"
)

// Store is the storage surface the order engine runs against. CreateOrder
// must be atomic: the order row, its items, the popularity increments and
// the table occupancy flip all land together or not at all.
type Store interface {
	GetTable(ctx context.Context, id uuid.UUID) (*models.Table, error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, int, error)
	ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
	CountActiveOrders(ctx context.Context, tableID uuid.UUID) (int, error)
	SetTableStatus(ctx context.Context, tableID uuid.UUID, status models.TableStatus) error
}

// EventPublisher announces order lifecycle changes to interested systems.
// It may be nil, in which case no events are published.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
	PublishStatusChanged(ctx context.Context, order *models.Order) error
}

// Service is the order engine: it prices and validates incoming orders,
// drives the status state machine and keeps table occupancy in sync.
type Service struct {
	store  Store
	events EventPublisher
	logger *logger.Logger
}

// NewService creates the order engine. events may be nil.
func NewService(store Store, events EventPublisher, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		events: events,
		logger: log,
	}
}

// CreateOrder validates, prices and persists a new order.
//
// Every line is resolved against the live menu; a missing or unavailable
// item rejects the whole order before anything is written. Snapshot name
// and price are captured per line so later menu edits never change this
// order's totals. The write itself (order, items, popularity increments,
// table set to occupied) is a single atomic unit in the store.
func (s *Service) CreateOrder(ctx context.Context, req *models.CreateOrderRequest, requestID string) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	table, err := s.store.GetTable(ctx, req.TableID)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	var subtotal float64

	for _, line := range req.Items {
		menuItem, err := s.store.GetMenuItem(ctx, line.MenuItemID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, apperr.ValidationError{
					Field:   "items",
					Message: fmt.Sprintf("item %s not available", line.MenuItemID),
				}
			}
			return nil, err
		}
		if !menuItem.Availability {
			return nil, apperr.ValidationError{
				Field:   "items",
				Message: fmt.Sprintf("item %s not available", line.MenuItemID),
			}
		}

		subtotal += models.Round2(menuItem.Price * float64(line.Quantity))

		items = append(items, models.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Price:      menuItem.Price,
			Quantity:   line.Quantity,
			Note:       line.Note,
		})
	}

	subtotal = models.Round2(subtotal)
	tax := models.Round2(subtotal * models.TaxRate)

	order := &models.Order{
		ID:           uuid.New(),
		TableID:      table.ID,
		TableNumber:  table.Number,
		CustomerID:   req.CustomerID,
		SessionToken: req.SessionToken,
		Items:        items,
		Status:       models.StatusPlaced,
		Subtotal:     subtotal,
		Tax:          tax,
		Total:        models.Round2(subtotal + tax),
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order_created", "Order placed", requestID, map[string]interface{}{
		"order_id":     order.ID.String(),
		"table_number": order.TableNumber,
		"total":        order.Total,
	})

	s.publish(ctx, requestID, order, true)

	return order, nil
}

// UpdateStatus moves an order to a new lifecycle state.
//
// Any status in the enumerated set may be set from any other; only
// membership is enforced. When the order leaves the active set (served or
// canceled) the table's remaining active orders are counted fresh, and the
// table is released only when none remain. Counting live instead of
// decrementing keeps concurrent completions on the same table convergent.
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, statusValue, requestID string) (*models.Order, error) {
	status, err := models.ParseOrderStatus(statusValue)
	if err != nil {
		return nil, err
	}

	order, err := s.store.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}

	if !status.IsActive() {
		active, err := s.store.CountActiveOrders(ctx, order.TableID)
		if err != nil {
			return nil, err
		}
		if active == 0 {
			if err := s.store.SetTableStatus(ctx, order.TableID, models.TableAvailable); err != nil {
				return nil, err
			}
		}
	}

	s.logger.Info("order_status_changed", "Order status updated", requestID, map[string]interface{}{
		"order_id": order.ID.String(),
		"status":   string(order.Status),
	})

	s.publish(ctx, requestID, order, false)

	return order, nil
}

// GetOrders returns a page of orders, newest first, optionally filtered by
// status and table.
func (s *Service) GetOrders(ctx context.Context, filter models.OrderFilter) (*models.OrderPage, error) {
	filter.Normalize()

	orders, total, err := s.store.ListOrders(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &models.OrderPage{
		Orders:     orders,
		Pagination: models.NewPagination(total, filter.Page, filter.Limit),
	}, nil
}

// GetMyOrders returns every order of one customer, newest first.
func (s *Service) GetMyOrders(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	return s.store.ListOrdersByCustomer(ctx, customerID)
}

// GetOrder returns a single order with resolved references.
func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.store.GetOrder(ctx, id)
}

// publish sends the lifecycle event; a broker failure is logged, never
// surfaced, since the order is already committed.
func (s *Service) publish(ctx context.Context, requestID string, order *models.Order, created bool) {
	if s.events == nil {
		return
	}

	var err error
	if created {
		err = s.events.PublishOrderCreated(ctx, order)
	} else {
		err = s.events.PublishStatusChanged(ctx, order)
	}
	if err != nil {
		s.logger.Error("event_publish_failed", "Failed to publish order event", requestID, err, map[string]interface{}{
			"order_id": order.ID.String(),
		})
	}
}
