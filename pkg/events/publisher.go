// Package events publishes order lifecycle events to RabbitMQ. A nil
// *Publisher is valid and drops events, so the checkout path works without
// a broker configured.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// Routing keys for order events.
const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
)

// OrderEvent is the JSON payload published for both event kinds.
type OrderEvent struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher publishes events to a topic exchange.
type Publisher struct {
	conn     *amqp.Connection
	exchange string
}

// New connects to the broker at url and declares the exchange. An empty
// url returns a nil Publisher, which silently drops events.
func New(url, exchange string) (*Publisher, error) {
	if url == "" {
		return nil, nil
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	log.Info().Str("exchange", exchange).Msg("event publisher connected")
	return &Publisher{conn: conn, exchange: exchange}, nil
}

// Publish sends event under routingKey. A fresh channel per publish keeps
// the publisher safe for concurrent use.
func (p *Publisher) Publish(ctx context.Context, routingKey string, event OrderEvent) error {
	if p == nil {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	err = ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now(),
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}

// Close closes the broker connection.
func (p *Publisher) Close() {
	if p != nil {
		_ = p.conn.Close()
	}
}
