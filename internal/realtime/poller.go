package realtime

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"tigerlife/internal/domain"
	"tigerlife/internal/pkg/logger"
)

const notificationPageSize = 50

// NotificationSource is implemented by notification.Service.
type NotificationSource interface {
	GetUnreadNotificationCount(ctx context.Context, userID int64) (int64, error)
	GetNotifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
}

// MessageSource is implemented by messaging.Service.
type MessageSource interface {
	GetConversations(ctx context.Context, userID int64) ([]domain.Conversation, error)
	GetMessages(ctx context.Context, a, b int64) ([]domain.Message, error)
}

// Intervals holds how often each view is refreshed.
type Intervals struct {
	UnreadCount   time.Duration
	Messages      time.Duration
	Conversations time.Duration
	Notifications time.Duration
}

// Poller refreshes the views a connected client displays.
type Poller struct {
	notifications NotificationSource
	messages      MessageSource
	every         Intervals
	log           *zap.Logger
}

func NewPoller(notifications NotificationSource, messages MessageSource, every Intervals, log *zap.Logger) *Poller {
	return &Poller{
		notifications: notifications,
		messages:      messages,
		every:         every,
		log:           logger.OrNop(log),
	}
}

type fetchFunc func(ctx context.Context) (any, error)

// Run polls until ctx is cancelled and returns once every loop has
// stopped. The message thread is only polled when peerID is set.
func (p *Poller) Run(ctx context.Context, userID, peerID int64, push func(*Event)) {
	var wg sync.WaitGroup
	start := func(event string, every time.Duration, fetch fetchFunc) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.loop(ctx, userID, event, every, fetch, push)
		}()
	}

	start(EventUnreadCount, p.every.UnreadCount, func(ctx context.Context) (any, error) {
		n, err := p.notifications.GetUnreadNotificationCount(ctx, userID)
		return map[string]int64{"count": n}, err
	})
	start(EventNotifications, p.every.Notifications, func(ctx context.Context) (any, error) {
		return p.notifications.GetNotifications(ctx, userID, notificationPageSize)
	})
	start(EventConversations, p.every.Conversations, func(ctx context.Context) (any, error) {
		return p.messages.GetConversations(ctx, userID)
	})
	if peerID > 0 {
		start(EventMessages, p.every.Messages, func(ctx context.Context) (any, error) {
			return p.messages.GetMessages(ctx, userID, peerID)
		})
	}

	wg.Wait()
}

// loop fetches once right away and then on every tick. A failed fetch is
// logged and retried on the next tick.
func (p *Poller) loop(ctx context.Context, userID int64, event string, every time.Duration, fetch fetchFunc, push func(*Event)) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		payload, err := fetch(ctx)
		switch {
		case ctx.Err() != nil:
			return
		case err != nil:
			p.log.Warn("realtime poll failed",
				zap.String("event", event),
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		default:
			push(&Event{Type: event, Payload: payload})
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
