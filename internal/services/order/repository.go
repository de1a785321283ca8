package order

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

// Repository is the PostgreSQL-backed order store
type Repository struct {
	db *database.DB
}

// NewRepository creates a new order repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetTable(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	var t models.Table
	err := r.db.QueryRow(ctx, database.GetTableSQL, id).Scan(
		&t.ID, &t.Number, &t.QRSlug, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("table")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table: %w", err)
	}
	return &t, nil
}

func (r *Repository) GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
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

// CreateOrder persists a new order in one transaction: popularity
// increments, the order row, its items and the table occupancy flip.
// Availability is re-asserted inside the transaction, so an item withdrawn
// between validation and commit rolls the whole order back.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, item := range order.Items {
		tag, err := tx.Exec(ctx, database.BumpPopularitySQL, item.MenuItemID, item.Quantity)
		if err != nil {
			return fmt.Errorf("failed to update popularity for %s: %w", item.MenuItemID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.ValidationError{
				Field:   "items",
				Message: fmt.Sprintf("item %s not available", item.MenuItemID),
			}
		}
	}

	err = tx.QueryRow(ctx, database.InsertOrderSQL,
		order.ID, order.TableID, order.CustomerID, order.SessionToken,
		order.Status, order.Subtotal, order.Tax, order.Total,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		item := order.Items[i]
		if _, err := tx.Exec(ctx, database.InsertOrderItemSQL,
			order.ID, item.MenuItemID, item.Name, item.Price, item.Quantity, item.Note); err != nil {
			return fmt.Errorf("failed to insert order item %s: %w", item.Name, err)
		}
	}

	if _, err := tx.Exec(ctx, database.SetTableStatusSQL, order.TableID, models.TableOccupied); err != nil {
		return fmt.Errorf("failed to set table status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *Repository) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var o models.Order
	err := r.db.QueryRow(ctx, database.GetOrderSQL, id).Scan(
		&o.ID, &o.TableID, &o.TableNumber, &o.CustomerID, &o.CustomerName,
		&o.SessionToken, &o.Status, &o.Subtotal, &o.Tax, &o.Total,
		&o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("order")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	orders := []models.Order{o}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *Repository) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND o.status = $%d", len(args))
	}
	if filter.TableID != nil {
		args = append(args, *filter.TableID)
		where += fmt.Sprintf(" AND o.table_id = $%d", len(args))
	}

	var total int
	countSQL := "SELECT COUNT(*) FROM orders o " + where
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	listSQL := fmt.Sprintf(`
		SELECT o.id, o.table_id, t.number, o.customer_id, u.name, o.session_token,
			   o.status, o.subtotal, o.tax, o.total, o.created_at, o.updated_at
		FROM orders o
		JOIN tables t ON t.id = o.table_id
		LEFT JOIN users u ON u.id = o.customer_id
		%s
		ORDER BY o.created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	orders, err := r.queryOrders(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *Repository) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	return r.queryOrders(ctx, database.ListOrdersByCustomerSQL, customerID)
}

func (r *Repository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	var tableID uuid.UUID
	err := r.db.QueryRow(ctx, database.UpdateOrderStatusSQL, id, status).Scan(&tableID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("order")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return r.GetOrder(ctx, id)
}

func (r *Repository) CountActiveOrders(ctx context.Context, tableID uuid.UUID) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, database.CountActiveOrdersSQL, tableID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active orders: %w", err)
	}
	return count, nil
}

func (r *Repository) SetTableStatus(ctx context.Context, tableID uuid.UUID, status models.TableStatus) error {
	if err := r.db.Exec(ctx, database.SetTableStatusSQL, tableID, status); err != nil {
		return fmt.Errorf("failed to set table status: %w", err)
	}
	return nil
}

func (r *Repository) queryOrders(ctx context.Context, sql string, args ...interface{}) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(
			&o.ID, &o.TableID, &o.TableNumber, &o.CustomerID, &o.CustomerName,
			&o.SessionToken, &o.Status, &o.Subtotal, &o.Tax, &o.Total,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// loadItems attaches order items to each order in one round trip.
func (r *Repository) loadItems(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	index := make(map[uuid.UUID]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID.String()
		index[o.ID] = i
		orders[i].Items = []models.OrderItem{}
	}

	rows, err := r.db.Query(ctx, database.ListOrderItemsSQL, ids)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID,
			&item.Name, &item.Price, &item.Quantity, &item.Note); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}

	return rows.Err()
}
