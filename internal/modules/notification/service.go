package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"tigerlife/internal/database"
	"tigerlife/internal/domain"
	"tigerlife/internal/pkg/apperr"
	"tigerlife/internal/pkg/logger"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Service is the notification emitter plus the reads behind the inbox.
type Service struct {
	repo  NotificationRepository
	sinks []Sink
	log   *zap.Logger
	now   func() time.Time
}

func NewService(repo NotificationRepository, log *zap.Logger, sinks ...Sink) *Service {
	return &Service{
		repo:  repo,
		sinks: sinks,
		log:   logger.OrNop(log),
		now:   time.Now,
	}
}

// AddSink registers a sink. Call it during wiring, before serving traffic.
func (s *Service) AddSink(sink Sink) {
	if sink != nil {
		s.sinks = append(s.sinks, sink)
	}
}

// AddNotification inserts one unread notification for userID.
func (s *Service) AddNotification(
	ctx context.Context,
	userID int64,
	t domain.NotificationType,
	title, message string,
	relatedID *int64,
) (*domain.Notification, error) {
	return s.add(ctx, &domain.Notification{
		UserID:    userID,
		Type:      t,
		Title:     title,
		Message:   message,
		RelatedID: relatedID,
	})
}

func (s *Service) add(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	if n.UserID <= 0 {
		return nil, ErrMissingUserID
	}
	if !n.Type.Valid() {
		return nil, ErrInvalidType
	}
	n.Title = strings.TrimSpace(n.Title)
	if n.Title == "" {
		return nil, ErrMissingTitle
	}
	n.Read = false
	n.CreatedAt = s.now().UTC()

	res, err := s.repo.Create(ctx, n)
	if err != nil {
		return nil, apperr.Remote(err, "failed to create notification")
	}
	n.ID = res.ID

	for _, sink := range s.sinks {
		if err := sink.Deliver(ctx, n); err != nil {
			s.log.Warn("notification sink failed",
				zap.Int64("user_id", n.UserID),
				zap.Int64("notification_id", n.ID),
				zap.Error(err),
			)
		}
	}
	return n, nil
}

func (s *Service) NotifyMessage(ctx context.Context, receiverID int64, senderName string, messageID int64) error {
	_, err := s.AddNotification(ctx, receiverID, domain.NotifMessage,
		"New message",
		fmt.Sprintf("%s sent you a message", senderName),
		&messageID,
	)
	return err
}

func (s *Service) NotifyListing(ctx context.Context, sellerID, itemID int64, title string) error {
	_, err := s.AddNotification(ctx, sellerID, domain.NotifListing,
		"Listing created",
		fmt.Sprintf("Your item %q is now listed on the marketplace", title),
		&itemID,
	)
	return err
}

func (s *Service) NotifyService(ctx context.Context, providerID, serviceID int64, title string) error {
	_, err := s.AddNotification(ctx, providerID, domain.NotifService,
		"Service listed",
		fmt.Sprintf("Your service %q is now listed", title),
		&serviceID,
	)
	return err
}

// NotifyPurchase notifies the buyer and the seller. Both inserts are
// attempted; a failure on one side does not undo the other.
func (s *Service) NotifyPurchase(ctx context.Context, buyerID, sellerID, itemID int64, title string) error {
	_, buyerErr := s.AddNotification(ctx, buyerID, domain.NotifPurchase,
		"Purchase complete",
		fmt.Sprintf("You bought %q", title),
		&itemID,
	)
	_, sellerErr := s.AddNotification(ctx, sellerID, domain.NotifSale,
		"Item sold",
		fmt.Sprintf("Your item %q was sold", title),
		&itemID,
	)
	return errors.Join(buyerErr, sellerErr)
}

// NotifyBooking notifies the booker and the provider independently.
func (s *Service) NotifyBooking(ctx context.Context, bookerID, providerID, bookingID int64, serviceTitle string) error {
	_, bookerErr := s.AddNotification(ctx, bookerID, domain.NotifBooking,
		"Booking confirmed",
		fmt.Sprintf("You booked %q", serviceTitle),
		&bookingID,
	)
	_, providerErr := s.AddNotification(ctx, providerID, domain.NotifBooking,
		"New booking",
		fmt.Sprintf("Someone booked your service %q", serviceTitle),
		&bookingID,
	)
	return errors.Join(bookerErr, providerErr)
}

func (s *Service) NotifyOrganization(ctx context.Context, userID, orgID int64, title, message string) error {
	_, err := s.AddNotification(ctx, userID, domain.NotifOrganization, title, message, &orgID)
	return err
}

// GetNotifications returns userID's notifications, newest first.
func (s *Service) GetNotifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	if userID <= 0 {
		return nil, ErrMissingUserID
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	list, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, apperr.Remote(err, "failed to load notifications")
	}
	if list == nil {
		list = []domain.Notification{}
	}
	return list, nil
}

// MarkNotificationRead sets the read flag. Read only moves from false to
// true: asking to unread a read notification is rejected, and repeating a
// mark is a no-op.
func (s *Service) MarkNotificationRead(ctx context.Context, id, userID int64, isRead bool) (*domain.Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, apperr.Remote(err, "failed to load notification")
	}
	if n.UserID != userID {
		return nil, ErrNotFound
	}

	if !isRead {
		if n.Read {
			return nil, ErrCannotUnread
		}
		return n, nil
	}
	if n.Read {
		return n, nil
	}

	if _, err := s.repo.MarkRead(ctx, id, userID); err != nil {
		return nil, apperr.Remote(err, "failed to mark notification read")
	}
	n.Read = true
	return n, nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, apperr.Remote(err, "failed to mark notifications read")
	}
	return n, nil
}

func (s *Service) GetUnreadNotificationCount(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, ErrMissingUserID
	}
	n, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, apperr.Remote(err, "failed to count unread notifications")
	}
	return n, nil
}
