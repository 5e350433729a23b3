package messaging

import (
	"context"
	"sort"
	"unicode/utf8"

	"go.uber.org/zap"

	"tigerlife/internal/database"
	"tigerlife/internal/domain"
	"tigerlife/internal/pkg/apperr"
	"tigerlife/internal/pkg/logger"
	"tigerlife/internal/pkg/sanitize"
	"tigerlife/internal/workflow"
)

type Service struct {
	messages MessageRepository
	users    UserRepository
	notify   Notifier
	log      *zap.Logger
}

func NewService(messages MessageRepository, users UserRepository, notify Notifier, log *zap.Logger) *Service {
	return &Service{messages: messages, users: users, notify: notify, log: logger.OrNop(log)}
}

func (s *Service) SendMessage(ctx context.Context, senderID, receiverID int64, content string) (*workflow.Outcome[*domain.Message], error) {
	if senderID <= 0 {
		return nil, ErrMissingSender
	}
	content = sanitize.Text(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > maxContentLength {
		return nil, ErrContentTooLong
	}
	if senderID == receiverID {
		return nil, ErrCannotMessageSelf
	}

	if _, err := s.users.GetByID(ctx, receiverID); err != nil {
		if database.IsNotFound(err) {
			return nil, ErrRecipientNotFound
		}
		return nil, apperr.Remote(err, "failed to load recipient")
	}

	msg := &domain.Message{SenderID: senderID, ReceiverID: receiverID, Content: content}
	res, err := s.messages.Create(ctx, msg)
	if err != nil {
		return nil, apperr.Remote(err, "failed to send message")
	}
	msg.ID = res.ID
	msg.CreatedAt = res.CreatedAt

	out := workflow.New(msg, s.log)
	out.Attempt(ctx, "notify_receiver", func(ctx context.Context) error {
		name := "Someone"
		if sender, err := s.users.GetByID(ctx, senderID); err == nil {
			name = sender.DisplayName()
		}
		return s.notify.NotifyMessage(ctx, receiverID, name, msg.ID)
	}, zap.Int64("user_id", receiverID), zap.Int64("message_id", msg.ID))
	return out, nil
}

// GetMessages returns the thread between a and b, oldest first.
func (s *Service) GetMessages(ctx context.Context, a, b int64) ([]domain.Message, error) {
	list, err := s.messages.Thread(ctx, a, b)
	if err != nil {
		return nil, apperr.Remote(err, "failed to load messages")
	}
	if list == nil {
		list = []domain.Message{}
	}
	return list, nil
}

// GetConversations derives userID's inbox from the two directional message
// reads: counterparts are deduplicated, resolved in one batched user lookup
// and paired with the latest message exchanged. The result is ordered by
// that message's time, newest first, then by partner id. A user without
// messages gets an empty list.
func (s *Service) GetConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	if userID <= 0 {
		return nil, ErrMissingSender
	}
	sent, err := s.messages.Sent(ctx, userID)
	if err != nil {
		return nil, apperr.Remote(err, "failed to load sent messages")
	}
	received, err := s.messages.Received(ctx, userID)
	if err != nil {
		return nil, apperr.Remote(err, "failed to load received messages")
	}

	latest := make(map[int64]domain.Message)
	collect := func(list []domain.Message) {
		for _, m := range list {
			partner := m.Counterpart(userID)
			if partner == userID {
				continue
			}
			cur, ok := latest[partner]
			if !ok || newer(m, cur) {
				latest[partner] = m
			}
		}
	}
	collect(sent)
	collect(received)

	if len(latest) == 0 {
		return []domain.Conversation{}, nil
	}

	ids := make([]int64, 0, len(latest))
	for id := range latest {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Remote(err, "failed to load conversation partners")
	}
	summaries := make(map[int64]domain.UserSummary, len(users))
	for i := range users {
		summaries[users[i].ID] = users[i].Summary()
	}

	out := make([]domain.Conversation, 0, len(ids))
	for _, id := range ids {
		partner, ok := summaries[id]
		if !ok {
			partner = domain.UserSummary{ID: id}
		}
		last := latest[id]
		out = append(out, domain.Conversation{Partner: partner, LastMessage: &last})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].LastMessage, out[j].LastMessage
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return out[i].Partner.ID < out[j].Partner.ID
	})
	return out, nil
}

func newer(a, b domain.Message) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
