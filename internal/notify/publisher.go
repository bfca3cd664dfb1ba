// Package notify pushes order events to the kitchen display over
// RabbitMQ. Publishing is strictly best-effort: a broker outage must
// never fail or roll back an order, so callers log and move on.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sakchaid/krua-pos/internal/order"
)

const exchange = "orders.created"

type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// New connects to the broker and declares the fanout exchange.
func New(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch}, nil
}

type orderCreated struct {
	OrderID   string           `json:"order_id"`
	TableCode string           `json:"table_code,omitempty"`
	Items     []order.LineItem `json:"items"`
	Total     string           `json:"total"`
	CreatedAt time.Time        `json:"created_at"`
}

// OrderCreated publishes a summary of a freshly created order. A nil
// publisher (AMQP not configured) is a no-op.
func (p *Publisher) OrderCreated(ctx context.Context, o *order.Order) error {
	if p == nil || p.ch == nil {
		return nil
	}
	body, err := json.Marshal(orderCreated{
		OrderID:   o.ID,
		TableCode: o.TableCode,
		Items:     o.Items,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
	})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return p.ch.PublishWithContext(ctx, exchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
