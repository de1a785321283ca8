package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"tableside/internal/apperr"
)

// OrderStatus is the lifecycle state of an order.
//
// The natural flow is placed -> preparing -> ready -> served, with canceled
// reachable from any non-terminal state. The engine validates only that a
// target status is a member of this set; it does not enforce an ordering
// between states, so staff can correct a mis-tap (e.g. ready back to
// preparing).
type OrderStatus string

const (
	StatusPlaced    OrderStatus = "placed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusServed    OrderStatus = "served"
	StatusCanceled  OrderStatus = "canceled"
)

// ParseOrderStatus validates an order status value
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPlaced, StatusPreparing, StatusReady, StatusServed, StatusCanceled:
		return OrderStatus(s), nil
	default:
		return "", apperr.ValidationError{
			Field:   "status",
			Message: "status must be one of: placed, preparing, ready, served, canceled",
		}
	}
}

// ActiveStatuses are the states in which an order still holds its table.
var ActiveStatuses = []OrderStatus{StatusPlaced, StatusPreparing, StatusReady}

// IsActive reports whether an order in this status still counts toward
// table occupancy.
func (s OrderStatus) IsActive() bool {
	return s == StatusPlaced || s == StatusPreparing || s == StatusReady
}

// OrderItem is one line of an order. Name and price are snapshots taken at
// order time so later menu edits never change a placed order's totals.
type OrderItem struct {
	ID         int64     `json:"id,omitempty" db:"id"`
	OrderID    uuid.UUID `json:"order_id,omitempty" db:"order_id"`
	MenuItemID uuid.UUID `json:"menu_item_id" db:"menu_item_id"`
	Name       string    `json:"name" db:"name"`
	Price      float64   `json:"price" db:"price"`
	Quantity   int       `json:"quantity" db:"quantity"`
	Note       string    `json:"note,omitempty" db:"note"`
}

// Order is a customer order against a table
type Order struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	TableID      uuid.UUID   `json:"table_id" db:"table_id"`
	TableNumber  int         `json:"table_number" db:"table_number"`
	CustomerID   *uuid.UUID  `json:"customer_id,omitempty" db:"customer_id"`
	CustomerName *string     `json:"customer_name,omitempty" db:"customer_name"`
	SessionToken *string     `json:"session_token,omitempty" db:"session_token"`
	Items        []OrderItem `json:"items"`
	Status       OrderStatus `json:"status" db:"status"`
	Subtotal     float64     `json:"subtotal" db:"subtotal"`
	Tax          float64     `json:"tax" db:"tax"`
	Total        float64     `json:"total" db:"total"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// CreateOrderItem is one requested line in an incoming order
type CreateOrderItem struct {
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Quantity   int       `json:"quantity"`
	Note       string    `json:"note,omitempty"`
}

// CreateOrderRequest is the customer request to place an order. CustomerID
// is filled in by the handler from the (optional) authenticated session,
// never from the request body.
type CreateOrderRequest struct {
	TableID      uuid.UUID         `json:"table_id"`
	Items        []CreateOrderItem `json:"items"`
	SessionToken *string           `json:"session_token,omitempty"`
	CustomerID   *uuid.UUID        `json:"-"`
}

func (req *CreateOrderRequest) Validate() error {
	if req.TableID == uuid.Nil {
		return apperr.ValidationError{Field: "table_id", Message: "table_id is required"}
	}
	if len(req.Items) == 0 {
		return apperr.ValidationError{Field: "items", Message: "items cannot be empty"}
	}
	for i, item := range req.Items {
		if item.MenuItemID == uuid.Nil {
			return apperr.ValidationError{
				Field:   fmt.Sprintf("items[%d].menu_item_id", i),
				Message: "menu_item_id is required",
			}
		}
		if item.Quantity < 1 {
			return apperr.ValidationError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "quantity must be at least 1",
			}
		}
	}
	return nil
}

// UpdateOrderStatusRequest moves an order to a new lifecycle state
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderFilter selects a page of orders for the staff listing
type OrderFilter struct {
	Status  *OrderStatus
	TableID *uuid.UUID
	Page    int
	Limit   int
}

// Normalize applies the listing defaults: page 1, limit 20.
func (f *OrderFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
}

// Pagination summarizes a paged listing
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// NewPagination computes the page count as ceil(total/limit).
func NewPagination(total, page, limit int) Pagination {
	return Pagination{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: (total + limit - 1) / limit,
	}
}

// OrderPage is a page of orders plus its pagination summary
type OrderPage struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}
