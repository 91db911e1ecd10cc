package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// Типы событий жизненного цикла бронирования
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

var (
	// ErrNoBrokers возвращается, если не указан ни один брокер
	ErrNoBrokers = errors.New("events: kafka publisher requires at least one broker")

	// ErrPublish возвращается при ошибке записи сообщения
	ErrPublish = errors.New("events: failed to publish")
)

// KafkaPublisher публикует события бронирований в топик Kafka
// Ключ сообщения - ID бронирования, поэтому события одной брони упорядочены
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher создает publisher для указанного топика
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			RequiredAcks:           kafka.RequireAll,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		},
	}, nil
}

// Publish отправляет событие бронирования
func (p *KafkaPublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, event.Type, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.BookingID),
		Value: payload,
		Time:  time.Now().UTC(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %s booking=%s: %v", ErrPublish, event.Type, event.BookingID, err)
	}

	return nil
}

// Close закрывает writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher используется, когда Kafka выключена
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.BookingEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
