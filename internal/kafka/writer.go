package kafka

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/TemirB/pos-core/internal/domain"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Publisher announces menu publishes to every running server.
type Publisher struct {
	writer MessageWriter
}

func NewPublisher(w MessageWriter) *Publisher {
	return &Publisher{writer: w}
}

// NewWriter is the writer the publisher binary uses: one topic, wait for all replicas.
func NewWriter(brokers []string, topic string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
}

func (p *Publisher) PublishMenu(ctx context.Context, at time.Time) error {
	value, err := EncodePublishEvent(at)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte("menu"),
		Value: value,
		Time:  at,
	})
}

func EncodePublishEvent(at time.Time) ([]byte, error) {
	return json.Marshal(domain.PublishMarker{PublishedAt: at.UTC()})
}
