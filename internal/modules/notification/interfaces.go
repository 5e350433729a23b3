package notification

import (
	"context"

	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
)

// NotificationRepository is the slice of the Notifications collection the
// emitter needs.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (gateway.InsertResult, error)
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) (int64, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
}

// Sink receives each notification after it has been stored.
type Sink interface {
	Deliver(ctx context.Context, n *domain.Notification) error
}

// Publisher is satisfied by mq.Publisher.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}
