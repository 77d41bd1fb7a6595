// Package kafka publishes order events for downstream consumers.
package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"storefront/internal/core/application/notification"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderEvent is the JSON value written to the topic. The message key is the
// order number so all events of one order land on one partition.
type OrderEvent struct {
	EventID     string    `json:"event_id"`
	Type        string    `json:"type"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	Note        string    `json:"note,omitempty"`
	Total       string    `json:"total"`
	CreatedAt   time.Time `json:"created_at"`
}

type Channel struct {
	writer writer
}

var _ notification.Channel = (*Channel)(nil)

// NewChannel builds a writer for a comma-separated broker list.
func NewChannel(brokersCSV, topic string) *Channel {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	return newChannel(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	})
}

func newChannel(w writer) *Channel {
	return &Channel{writer: w}
}

func (c *Channel) Name() string { return "kafka" }

func (c *Channel) Send(ctx context.Context, msg notification.Message, _ notification.Recipient) error {
	event := OrderEvent{
		EventID:     uuid.NewString(),
		Type:        string(msg.Kind),
		OrderID:     msg.OrderID.String(),
		OrderNumber: msg.OrderNumber,
		Status:      msg.Status.String(),
		Note:        msg.Note,
		Total:       msg.Total.String(),
		CreatedAt:   msg.CreatedAt.UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return c.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.OrderNumber),
		Value: value,
		Time:  event.CreatedAt,
	})
}

func (c *Channel) Close() error {
	return c.writer.Close()
}
