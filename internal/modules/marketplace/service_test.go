package marketplace

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
	"tigerlife/internal/pkg/apperr"
	"tigerlife/internal/storage"
)

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *domain.MarketplaceItem) (gateway.InsertResult, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(gateway.InsertResult), args.Error(1)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id int64) (*domain.MarketplaceItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketplaceItem), args.Error(1)
}

func (m *MockItemRepository) ListAvailable(ctx context.Context) ([]domain.MarketplaceItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.MarketplaceItem), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyListing(ctx context.Context, sellerID, itemID int64, title string) error {
	return m.Called(ctx, sellerID, itemID, title).Error(0)
}

// memStore fails the Nth upload when failOn is set.
type memStore struct {
	calls   int
	failOn  int
	removed []string
}

func (s *memStore) Upload(_ context.Context, bucket, key string, _ []byte, _ string) (string, error) {
	s.calls++
	if s.calls == s.failOn {
		return "", errors.New("bucket unavailable")
	}
	return "https://cdn.test/" + bucket + "/" + key, nil
}

func (s *memStore) Remove(_ context.Context, bucket, key string) error {
	s.removed = append(s.removed, bucket+"/"+key)
	return nil
}

var pngDataURL = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\nfake"))

func TestListItem_SecondUploadFailsNothingInserted(t *testing.T) {
	repo := new(MockItemRepository)
	notify := new(MockNotifier)
	store := &memStore{failOn: 2}
	svc := NewService(repo, storage.NewUploader(store, nil), notify, nil)

	_, err := svc.ListItem(context.Background(), 1, ListItemRequest{
		Title:  "Desk lamp",
		Price:  15,
		Images: []string{pngDataURL, pngDataURL, pngDataURL},
	})

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to upload images: "), err.Error())
	assert.Equal(t, 2, store.calls, "the third image is never attempted")
	assert.Len(t, store.removed, 1, "the first image is removed again")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	notify.AssertNotCalled(t, "NotifyListing", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListItem_NotificationFailureStillSucceeds(t *testing.T) {
	repo := new(MockItemRepository)
	notify := new(MockNotifier)
	store := &memStore{}
	svc := NewService(repo, storage.NewUploader(store, nil), notify, nil)
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(item *domain.MarketplaceItem) bool {
		return item.SellerID == 1 && len(item.Images) == 2 && item.Title == "Desk lamp"
	})).Return(gateway.InsertResult{ID: 12}, nil)
	notify.On("NotifyListing", ctx, int64(1), int64(12), "Desk lamp").Return(errors.New("insert failed"))

	out, err := svc.ListItem(ctx, 1, ListItemRequest{
		Title:  "<script>x</script>Desk lamp",
		Price:  15,
		Images: []string{pngDataURL, pngDataURL},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(12), out.Record.ID)
	assert.Len(t, out.Failed(), 1)
	repo.AssertExpectations(t)
}

func TestListItem_InsertFailureDiscardsImages(t *testing.T) {
	repo := new(MockItemRepository)
	notify := new(MockNotifier)
	store := &memStore{}
	svc := NewService(repo, storage.NewUploader(store, nil), notify, nil)

	repo.On("Create", mock.Anything, mock.Anything).Return(gateway.InsertResult{}, errors.New("db down"))

	_, err := svc.ListItem(context.Background(), 1, ListItemRequest{Title: "Chair", Images: []string{pngDataURL}})

	assert.ErrorIs(t, err, apperr.ErrRemote)
	assert.Len(t, store.removed, 1)
	notify.AssertNotCalled(t, "NotifyListing", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListItem_RequiresSeller(t *testing.T) {
	svc := NewService(new(MockItemRepository), storage.NewUploader(&memStore{}, nil), new(MockNotifier), nil)

	_, err := svc.ListItem(context.Background(), 0, ListItemRequest{Title: "Chair"})

	assert.ErrorIs(t, err, ErrMissingSeller)
}

func TestGetListing_NotFound(t *testing.T) {
	repo := new(MockItemRepository)
	svc := NewService(repo, storage.NewUploader(&memStore{}, nil), new(MockNotifier), nil)
	repo.On("GetByID", mock.Anything, int64(4)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetListing(context.Background(), 4)

	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestUploadImages(t *testing.T) {
	store := &memStore{}
	svc := NewService(new(MockItemRepository), storage.NewUploader(store, nil), new(MockNotifier), nil)

	out, err := svc.UploadImages(context.Background(), 7, UploadImagesRequest{Images: []string{pngDataURL, pngDataURL}})

	require.NoError(t, err)
	require.Len(t, out.URLs, 2)
	assert.True(t, strings.HasPrefix(out.URLs[0], "https://cdn.test/"+gateway.BucketMarketplace+"/7/"), out.URLs[0])
}

func TestUploadImages_Malformed(t *testing.T) {
	store := &memStore{}
	svc := NewService(new(MockItemRepository), storage.NewUploader(store, nil), new(MockNotifier), nil)

	_, err := svc.UploadImages(context.Background(), 7, UploadImagesRequest{Images: []string{"data:image/png;base64,@@@"}})

	require.Error(t, err)
	assert.Zero(t, store.calls)
}
