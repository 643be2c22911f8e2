// Package notification publishes fire-and-forget user notifications to a
// RabbitMQ topic exchange. Delivery is somebody else's problem; the backend
// only emits events.
package notification

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Notifier delivers a short message to a user.
type Notifier interface {
	Notify(ctx context.Context, userID uint, message string) error
	Close() error
}

// Event is the payload published for each notification.
type Event struct {
	ID         string    `json:"id"`
	UserID     uint      `json:"user_id"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

type publisher struct {
	conn         *amqp.Connection
	channel      *amqp.Channel
	exchangeName string
	mu           sync.Mutex
}

// NewPublisher creates a RabbitMQ notifier and declares the given exchange.
func NewPublisher(amqpURL, exchangeName string) (Notifier, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(
		exchangeName,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &publisher{conn: conn, channel: ch, exchangeName: exchangeName}, nil
}

func (p *publisher) Notify(ctx context.Context, userID uint, message string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil {
		return amqp.ErrClosed
	}

	body, err := json.Marshal(Event{
		ID:         uuid.NewString(),
		UserID:     userID,
		Message:    message,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.channel.PublishWithContext(ctx,
		p.exchangeName,
		"notifications.user",
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
			DeliveryMode: amqp.Persistent,
		},
	)
}

func (p *publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
	return nil
}

// NewNoopNotifier returns a notifier that drops events but logs that RabbitMQ
// is unavailable.
func NewNoopNotifier() Notifier { return &noopNotifier{} }

type noopNotifier struct{}

func (n *noopNotifier) Notify(ctx context.Context, userID uint, message string) error {
	log.Printf("warning: RabbitMQ not configured; dropping notification for user %d", userID)
	return nil
}

func (n *noopNotifier) Close() error { return nil }
