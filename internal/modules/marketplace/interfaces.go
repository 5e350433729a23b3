package marketplace

import (
	"context"

	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
	"tigerlife/internal/storage"
)

type ItemRepository interface {
	Create(ctx context.Context, item *domain.MarketplaceItem) (gateway.InsertResult, error)
	GetByID(ctx context.Context, id int64) (*domain.MarketplaceItem, error)
	ListAvailable(ctx context.Context) ([]domain.MarketplaceItem, error)
}

type ImageUploader interface {
	UploadAll(ctx context.Context, bucket string, ownerID int64, dataURLs []string) ([]storage.Uploaded, error)
	Discard(ctx context.Context, objs []storage.Uploaded)
}

type Notifier interface {
	NotifyListing(ctx context.Context, sellerID, itemID int64, title string) error
}
