// Package rabbitmq publishes committed events to a RabbitMQ topic exchange.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ordering/internal/core/domain/model/event"

	amqp "github.com/rabbitmq/amqp091-go"
)

const dialAttempts = 5

var ErrExchangeRequired = errors.New("rabbitmq: exchange name is required")

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Bus implements ports.MessageBus. The routing key is the lower-cased event
// type, so consumers bind patterns such as "order*".
type Bus struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  publisher
	exchange string
}

// NewBus dials url with a short backoff, opens a channel and declares a
// durable topic exchange.
func NewBus(url, exchange string, logger *slog.Logger) (*Bus, error) {
	if exchange == "" {
		return nil, ErrExchangeRequired
	}

	var (
		conn *amqp.Connection
		err  error
	)
	for attempt := range dialAttempts {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		wait := time.Duration(attempt*attempt)*time.Second + time.Second
		logger.Warn("rabbitmq dial failed, retrying", "attempt", attempt+1, "wait", wait.String(), "error", err)
		time.Sleep(wait)
	}
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: open channel: %w", err)
	}

	if err = channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: declare exchange %s: %w", exchange, err)
	}

	bus := newBus(channel, exchange)
	bus.conn = conn
	return bus, nil
}

func newBus(channel publisher, exchange string) *Bus {
	return &Bus{channel: channel, exchange: exchange}
}

func (b *Bus) Publish(ctx context.Context, e *event.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.channel.PublishWithContext(ctx, b.exchange, e.RoutingKey(), false, false, toPublishing(e)); err != nil {
		return fmt.Errorf("rabbitmq: publish %s %s: %w", e.EventType(), e.ID(), err)
	}
	return nil
}

// Close closes the channel and then the connection.
func (b *Bus) Close() error {
	err := b.channel.Close()
	if b.conn != nil {
		err = errors.Join(err, b.conn.Close())
	}
	return err
}

func toPublishing(e *event.Event) amqp.Publishing {
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    e.ID().String(),
		Timestamp:    e.CreatedAt(),
		Type:         e.EventType(),
		Body:         e.Payload(),
		Headers: amqp.Table{
			"aggregate-type": e.AggregateType(),
			"aggregate-id":   e.AggregateID().String(),
			"version":        e.Version(),
		},
	}
}
