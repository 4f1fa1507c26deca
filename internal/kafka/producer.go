package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// BookingEvent is the JSON envelope published for every booking mutation.
// Type is "booking_created" or "booking_cancelled".
type BookingEvent struct {
	EventID   string `json:"event_id"`
	Type      string `json:"type"`
	Reference string `json:"reference"`
	Seat      string `json:"seat"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FareClass string `json:"fare_class"`
	Price     int    `json:"price"`
}

// NewEventID tags each published envelope so downstream consumers can
// deduplicate redeliveries.
func NewEventID() string {
	return uuid.NewString()
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
