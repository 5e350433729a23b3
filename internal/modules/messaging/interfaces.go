package messaging

import (
	"context"

	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
)

type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) (gateway.InsertResult, error)
	Sent(ctx context.Context, userID int64) ([]domain.Message, error)
	Received(ctx context.Context, userID int64) ([]domain.Message, error)
	Thread(ctx context.Context, a, b int64) ([]domain.Message, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.User, error)
}

type Notifier interface {
	NotifyMessage(ctx context.Context, receiverID int64, senderName string, messageID int64) error
}
