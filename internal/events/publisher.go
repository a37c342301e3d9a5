package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"pagewise/internal/config"
	"pagewise/internal/flow"
)

// Producer is satisfied by *nsq.Producer.
type Producer interface {
	Publish(topic string, body []byte) error
}

// Publisher sends run events to NSQ. Publish failures are logged and dropped.
type Publisher struct {
	producer Producer
	topic    string
}

func NewPublisher(p Producer) *Publisher {
	return &Publisher{producer: p, topic: config.TopicFlowCompleted}
}

func (p *Publisher) Record(ctx context.Context, ev flow.RunEvent) {
	body, err := json.Marshal(ev)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal run event", "error", err)
		return
	}
	if err := p.producer.Publish(p.topic, body); err != nil {
		slog.WarnContext(ctx, "failed to publish run event", "topic", p.topic, "error", err)
	}
}
