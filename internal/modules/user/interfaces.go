package user

import (
	"context"

	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
	"tigerlife/internal/storage"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id int64, patch map[string]any) error
}

type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AuthAccount, error)
	Update(ctx context.Context, id int64, patch map[string]any) error
}

type VerifiedIDRepository interface {
	Create(ctx context.Context, v *domain.VerifiedID) (gateway.InsertResult, error)
}

// ImageStore is implemented by *storage.Uploader.
type ImageStore interface {
	Upload(ctx context.Context, bucket string, ownerID int64, dataURL string) (*storage.Uploaded, error)
	Discard(ctx context.Context, objs []storage.Uploaded)
}
