package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	interfaces "github.com/sheikh-saqib/ledger-bot/internal/interfaces"
)

// Publisher sends ledger events as JSON, one Kafka topic per event type.
type Publisher struct {
	writer      *kafka.Writer
	topicPrefix string
}

// NewPublisher returns an asynchronous publisher: Publish only queues the
// message, and delivery failures are reported to logger.
func NewPublisher(brokers []string, topicPrefix string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.LeastBytes{},
			BatchTimeout:           10 * time.Millisecond,
			WriteTimeout:           5 * time.Second,
			AllowAutoTopicCreation: true,
			Async:                  true,
			Completion: func(messages []kafka.Message, err error) {
				if err == nil {
					return
				}
				for _, m := range messages {
					logger.Warn("event delivery failed", "topic", m.Topic, "error", err)
				}
			},
		},
		topicPrefix: topicPrefix,
	}
}

// Topic is the Kafka topic an event published under topic ends up in.
func (p *Publisher) Topic(topic string) string {
	return p.topicPrefix + topic
}

func (p *Publisher) Publish(ctx context.Context, topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(
		ctx,
		kafka.Message{
			Topic: p.Topic(topic),
			Value: data,
		},
	)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
