package services

import (
	"context"

	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
	"tigerlife/internal/storage"
)

type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) (gateway.InsertResult, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context) ([]domain.Service, error)
	CreateBooking(ctx context.Context, b *domain.Booking) (gateway.InsertResult, error)
}

type ImageUploader interface {
	UploadAll(ctx context.Context, bucket string, ownerID int64, dataURLs []string) ([]storage.Uploaded, error)
	Discard(ctx context.Context, objs []storage.Uploaded)
}

type Notifier interface {
	NotifyService(ctx context.Context, providerID, serviceID int64, title string) error
	NotifyBooking(ctx context.Context, bookerID, providerID, bookingID int64, serviceTitle string) error
}
