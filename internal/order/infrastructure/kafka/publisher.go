// Package kafka publishes order events to a broker when one is
// configured. Events are fire-and-forget from checkout's perspective;
// failures are logged by the caller and never fail the order.
package kafka

import (
	"context"

	"github.com/ecommerce-app/storefront/pkg/tracing"
	"github.com/segmentio/kafka-go"
)

type Publisher struct {
	writer *kafka.Writer
	topic  string
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
		topic: topic,
	}
}

func (p *Publisher) Publish(ctx context.Context, eventType, orderID string, payload []byte) error {
	headers := []kafka.Header{{Key: "event_type", Value: []byte(eventType)}}
	headers = tracing.InjectKafkaHeaders(ctx, headers)

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic:   p.topic,
		Key:     []byte(orderID),
		Value:   payload,
		Headers: headers,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
