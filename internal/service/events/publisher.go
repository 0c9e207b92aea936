// Package events streams answered-chat analytics records to Kafka.
package events

import (
	"context"

	"github.com/Victor6825/Aurora-Finance-Tracking-AI/internal/domain/models"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/kafka"
)

// KafkaPublisher emits one compact event per answered request. Publishing is
// best-effort: the chat response never waits on, or fails because of, Kafka.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaPublisher(producer *kafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) PublishAnswered(ctx context.Context, ev models.AnsweredEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(ev.UserID), ev)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
