package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"tableside/internal/logger"
	"tableside/internal/models"
)

// OrderEvent is the message published for every order lifecycle change
type OrderEvent struct {
	OrderID     string    `json:"order_id"`
	TableNumber int       `json:"table_number"`
	Status      string    `json:"status"`
	Total       float64   `json:"total"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher publishes order lifecycle events to the orders exchange
type Publisher struct {
	conn   *Connection
	logger *logger.Logger
}

// NewPublisher creates a new order event publisher
func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: log,
	}
}

// PublishOrderCreated announces a newly placed order
func (p *Publisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	return p.publish(ctx, "order.created", order)
}

// PublishStatusChanged announces an order status transition
func (p *Publisher) PublishStatusChanged(ctx context.Context, order *models.Order) error {
	return p.publish(ctx, "order.status_changed", order)
}

func (p *Publisher) publish(ctx context.Context, routingKey string, order *models.Order) error {
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	event := OrderEvent{
		OrderID:     order.ID.String(),
		TableNumber: order.TableNumber,
		Status:      string(order.Status),
		Total:       order.Total,
		OccurredAt:  time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return p.conn.Channel().PublishWithContext(
		ctx,
		OrdersExchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
		},
	)
}
