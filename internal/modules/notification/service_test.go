package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
	"tigerlife/internal/pkg/apperr"
)

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *domain.Notification) (gateway.InsertResult, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(gateway.InsertResult), args.Error(1)
}

func (m *MockNotificationRepository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id, userID int64) (int64, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type recordingSink struct {
	got []*domain.Notification
	err error
}

func (s *recordingSink) Deliver(_ context.Context, n *domain.Notification) error {
	s.got = append(s.got, n)
	return s.err
}

type recordingPublisher struct {
	key string
	v   any
}

func (p *recordingPublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.key, p.v = key, v
	return nil
}

func TestAddNotification_MissingUserID(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewService(repo, nil)

	_, err := svc.AddNotification(context.Background(), 0, domain.NotifMessage, "t", "m", nil)

	assert.ErrorIs(t, err, ErrMissingUserID)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddNotification_InsertsUnreadAndDeliversToSinks(t *testing.T) {
	repo := new(MockNotificationRepository)
	failing := &recordingSink{err: errors.New("socket closed")}
	ok := &recordingSink{}
	svc := NewService(repo, nil, failing, ok)
	fixed := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == 7 && !n.Read && n.CreatedAt.Equal(fixed) && n.Type == domain.NotifListing
	})).Return(gateway.InsertResult{ID: 33, CreatedAt: fixed}, nil)

	related := int64(5)
	n, err := svc.AddNotification(context.Background(), 7, domain.NotifListing, "  Listed ", "msg", &related)

	require.NoError(t, err)
	assert.Equal(t, int64(33), n.ID)
	assert.Equal(t, "Listed", n.Title)
	assert.Len(t, failing.got, 1)
	assert.Len(t, ok.got, 1, "a failing sink must not stop later sinks")
	repo.AssertExpectations(t)
}

func TestAddNotification_RemoteFailure(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewService(repo, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(gateway.InsertResult{}, errors.New("db down"))

	_, err := svc.AddNotification(context.Background(), 1, domain.NotifMessage, "t", "m", nil)

	assert.ErrorIs(t, err, apperr.ErrRemote)
}

func TestNotifyPurchase_SellerFailureDoesNotUndoBuyer(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewService(repo, nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == 1 && n.Type == domain.NotifPurchase
	})).Return(gateway.InsertResult{ID: 1}, nil).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == 2 && n.Type == domain.NotifSale
	})).Return(gateway.InsertResult{}, errors.New("insert failed")).Once()

	err := svc.NotifyPurchase(context.Background(), 1, 2, 9, "Lamp")

	require.Error(t, err)
	repo.AssertNumberOfCalls(t, "Create", 2)
}

func TestNotifyBooking_NotifiesBothParties(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewService(repo, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(gateway.InsertResult{ID: 1}, nil)

	require.NoError(t, svc.NotifyBooking(context.Background(), 3, 4, 10, "Tutoring"))

	repo.AssertNumberOfCalls(t, "Create", 2)
}

func TestMarkNotificationRead(t *testing.T) {
	ctx := context.Background()

	t.Run("unread to read", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewService(repo, nil)
		repo.On("GetByID", ctx, int64(1)).Return(&domain.Notification{ID: 1, UserID: 5}, nil)
		repo.On("MarkRead", ctx, int64(1), int64(5)).Return(int64(1), nil)

		n, err := svc.MarkNotificationRead(ctx, 1, 5, true)

		require.NoError(t, err)
		assert.True(t, n.Read)
		repo.AssertExpectations(t)
	})

	t.Run("already read is a no-op", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewService(repo, nil)
		repo.On("GetByID", ctx, int64(1)).Return(&domain.Notification{ID: 1, UserID: 5, Read: true}, nil)

		n, err := svc.MarkNotificationRead(ctx, 1, 5, true)

		require.NoError(t, err)
		assert.True(t, n.Read)
		repo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("read never moves back", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewService(repo, nil)
		repo.On("GetByID", ctx, int64(1)).Return(&domain.Notification{ID: 1, UserID: 5, Read: true}, nil)

		_, err := svc.MarkNotificationRead(ctx, 1, 5, false)

		assert.ErrorIs(t, err, ErrCannotUnread)
	})

	t.Run("other user's notification", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewService(repo, nil)
		repo.On("GetByID", ctx, int64(1)).Return(&domain.Notification{ID: 1, UserID: 6}, nil)

		_, err := svc.MarkNotificationRead(ctx, 1, 5, true)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewService(repo, nil)
		repo.On("GetByID", ctx, int64(2)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.MarkNotificationRead(ctx, 2, 5, true)

		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestGetNotifications_ClampsLimitAndNeverReturnsNil(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewService(repo, nil)
	repo.On("ListByUser", mock.Anything, int64(5), maxLimit).Return(nil, nil)

	list, err := svc.GetNotifications(context.Background(), 5, 10_000)

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestMQSink_PublishesCreatedEvent(t *testing.T) {
	pub := &recordingPublisher{}
	n := &domain.Notification{ID: 4, UserID: 2}

	require.NoError(t, NewMQSink(pub).Deliver(context.Background(), n))

	assert.Equal(t, RoutingKeyCreated, pub.key)
	assert.Same(t, n, pub.v)
}
