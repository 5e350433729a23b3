package marketplace

import (
	"context"

	"go.uber.org/zap"

	"tigerlife/internal/database"
	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
	"tigerlife/internal/pkg/apperr"
	"tigerlife/internal/pkg/logger"
	"tigerlife/internal/pkg/sanitize"
	"tigerlife/internal/pkg/validator"
	"tigerlife/internal/storage"
	"tigerlife/internal/workflow"
)

type Service struct {
	items  ItemRepository
	images ImageUploader
	notify Notifier
	log    *zap.Logger
}

func NewService(items ItemRepository, images ImageUploader, notify Notifier, log *zap.Logger) *Service {
	return &Service{items: items, images: images, notify: notify, log: logger.OrNop(log)}
}

// ListItem uploads the images, stores the item and then tells the seller.
// The item is never stored without its images: any upload failure aborts
// before the insert.
func (s *Service) ListItem(ctx context.Context, sellerID int64, req ListItemRequest) (*workflow.Outcome[*domain.MarketplaceItem], error) {
	if sellerID <= 0 {
		return nil, ErrMissingSeller
	}
	req.Title = sanitize.Text(req.Title)
	req.Description = sanitize.Text(req.Description)
	req.Category = sanitize.Text(req.Category)
	req.Condition = sanitize.Text(req.Condition)
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if len(req.Images) > maxImages {
		return nil, ErrTooManyImages
	}

	uploaded, err := s.images.UploadAll(ctx, gateway.BucketMarketplace, sellerID, req.Images)
	if err != nil {
		return nil, storage.UploadFailed(err)
	}

	item := &domain.MarketplaceItem{
		SellerID:    sellerID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Condition:   req.Condition,
		Images:      storage.URLs(uploaded),
	}
	res, err := s.items.Create(ctx, item)
	if err != nil {
		s.images.Discard(ctx, uploaded)
		return nil, apperr.Remote(err, "failed to create listing")
	}
	item.ID = res.ID
	item.CreatedAt = res.CreatedAt

	out := workflow.New(item, s.log)
	out.Attempt(ctx, "notify_seller", func(ctx context.Context) error {
		return s.notify.NotifyListing(ctx, sellerID, item.ID, item.Title)
	}, zap.Int64("user_id", sellerID), zap.Int64("item_id", item.ID))
	return out, nil
}

// UploadImages stores images in the marketplace bucket ahead of a listing
// and returns their public URLs. Partial uploads are discarded on failure.
func (s *Service) UploadImages(ctx context.Context, ownerID int64, req UploadImagesRequest) (*UploadImagesResponse, error) {
	if ownerID <= 0 {
		return nil, ErrMissingSeller
	}
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if len(req.Images) > maxImages {
		return nil, ErrTooManyImages
	}
	uploaded, err := s.images.UploadAll(ctx, gateway.BucketMarketplace, ownerID, req.Images)
	if err != nil {
		return nil, storage.UploadFailed(err)
	}
	return &UploadImagesResponse{URLs: storage.URLs(uploaded)}, nil
}

// GetListings returns unsold items, newest first.
func (s *Service) GetListings(ctx context.Context) ([]domain.MarketplaceItem, error) {
	items, err := s.items.ListAvailable(ctx)
	if err != nil {
		return nil, apperr.Remote(err, "failed to load listings")
	}
	return items, nil
}

func (s *Service) GetListing(ctx context.Context, id int64) (*domain.MarketplaceItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrItemNotFound
		}
		return nil, apperr.Remote(err, "failed to load listing")
	}
	return item, nil
}
