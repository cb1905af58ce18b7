// Package kafka publishes committed events to a Kafka topic.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/event"

	"github.com/segmentio/kafka-go"
)

// Message headers set on every record.
const (
	HeaderEventType     = "event-type"
	HeaderEventID       = "event-id"
	HeaderAggregateType = "aggregate-type"
	HeaderVersion       = "version"
)

var ErrNoBrokers = errors.New("kafka: no brokers configured")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Bus implements ports.MessageBus. Records are keyed by aggregate id so all
// events of one aggregate land on one partition, in order.
type Bus struct {
	writer messageWriter
}

// NewBus creates a writer for topic. brokersCSV is a comma separated host list.
func NewBus(brokersCSV, topic string) (*Bus, error) {
	brokers := make([]string, 0)
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}

	return newBus(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}), nil
}

func newBus(w messageWriter) *Bus {
	return &Bus{writer: w}
}

func (b *Bus) Publish(ctx context.Context, e *event.Event) error {
	if err := b.writer.WriteMessages(ctx, toMessage(e)); err != nil {
		return fmt.Errorf("kafka: publish %s %s: %w", e.EventType(), e.ID(), err)
	}
	return nil
}

func (b *Bus) Close() error {
	return b.writer.Close()
}

func toMessage(e *event.Event) kafka.Message {
	return kafka.Message{
		Key:   []byte(e.AggregateID().String()),
		Value: e.Payload(),
		Time:  e.CreatedAt(),
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(e.EventType())},
			{Key: HeaderEventID, Value: []byte(e.ID().String())},
			{Key: HeaderAggregateType, Value: []byte(e.AggregateType())},
			{Key: HeaderVersion, Value: []byte(fmt.Sprint(e.Version()))},
		},
	}
}
