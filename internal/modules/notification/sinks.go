package notification

import (
	"context"

	"tigerlife/internal/domain"
)

// RoutingKeyCreated is the topic published for every stored notification.
const RoutingKeyCreated = "notification.created"

// MQSink publishes stored notifications to the message broker.
type MQSink struct {
	pub Publisher
}

func NewMQSink(pub Publisher) *MQSink {
	return &MQSink{pub: pub}
}

func (s *MQSink) Deliver(ctx context.Context, n *domain.Notification) error {
	return s.pub.PublishJSON(ctx, RoutingKeyCreated, n)
}
