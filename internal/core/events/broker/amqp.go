// Package broker forwards domain events to a RabbitMQ topic exchange.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/frahmantamala/finance-tracker/internal/core/events"
)

const publishTimeout = 5 * time.Second

// channel is the subset of *amqp091.Channel used for publishing.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

type message struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

// Forwarder publishes every event it receives with the event type as the
// routing key.
type Forwarder struct {
	conn     *amqp091.Connection
	ch       channel
	closer   func() error
	exchange string
	logger   *slog.Logger
	mu       sync.Mutex
}

// Dial connects to the broker and declares a durable topic exchange.
func Dial(url, exchange string, logger *slog.Logger) (*Forwarder, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	f := NewForwarder(ch, exchange, logger)
	f.conn = conn
	f.closer = ch.Close
	return f, nil
}

// NewForwarder wraps an already opened channel.
func NewForwarder(ch channel, exchange string, logger *slog.Logger) *Forwarder {
	return &Forwarder{ch: ch, exchange: exchange, logger: logger}
}

// Handle satisfies events.Handler.
func (f *Forwarder) Handle(ctx context.Context, event events.Event) error {
	body, err := json.Marshal(message{
		ID:         event.EventID(),
		Type:       event.EventType(),
		OccurredAt: event.OccurredAt(),
		Data:       event.Payload(),
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	f.mu.Lock()
	defer f.mu.Unlock()

	err = f.ch.PublishWithContext(
		ctx,
		f.exchange,        // exchange
		event.EventType(), // routing key
		false,             // mandatory
		false,             // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    event.EventID(),
			Timestamp:    event.OccurredAt(),
			Type:         event.EventType(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	f.logger.DebugContext(ctx, "event forwarded",
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"exchange", f.exchange)
	return nil
}

func (f *Forwarder) Close() error {
	if f.closer != nil {
		f.closer()
	}
	if f.conn != nil {
		return f.conn.Close()
	}
	return nil
}
