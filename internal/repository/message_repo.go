package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
)

// The table name is mixed case and must stay quoted.
const messagesTable = `"Messages"`

var messageColumns = []string{"id", "sender_id", "receiver_id", "content", "created_at"}

// MessageRepository builds its reads with squirrel and runs them through
// gorm. Placeholders stay as '?' so gorm rebinds them for the dialect.
type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) (gateway.InsertResult, error) {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return gateway.InsertResult{}, err
	}
	return gateway.InsertResult{ID: m.ID, CreatedAt: m.CreatedAt}, nil
}

// Sent returns every message userID sent.
func (r *MessageRepository) Sent(ctx context.Context, userID int64) ([]domain.Message, error) {
	return r.selectMessages(ctx, sq.Eq{"sender_id": userID}, "created_at ASC", "id ASC")
}

// Received returns every message userID received.
func (r *MessageRepository) Received(ctx context.Context, userID int64) ([]domain.Message, error) {
	return r.selectMessages(ctx, sq.Eq{"receiver_id": userID}, "created_at ASC", "id ASC")
}

// Thread returns the messages exchanged between a and b, oldest first.
func (r *MessageRepository) Thread(ctx context.Context, a, b int64) ([]domain.Message, error) {
	pred := sq.Or{
		sq.Eq{"sender_id": a, "receiver_id": b},
		sq.Eq{"sender_id": b, "receiver_id": a},
	}
	return r.selectMessages(ctx, pred, "created_at ASC", "id ASC")
}

func (r *MessageRepository) selectMessages(ctx context.Context, pred sq.Sqlizer, orderBy ...string) ([]domain.Message, error) {
	query, args, err := sq.Select(messageColumns...).
		From(messagesTable).
		Where(pred).
		OrderBy(orderBy...).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build message query: %w", err)
	}

	var out []domain.Message
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&out).Error; err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Message{}
	}
	return out, nil
}
