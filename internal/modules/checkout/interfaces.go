package checkout

import (
	"context"

	"tigerlife/internal/domain"
)

type ItemRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.MarketplaceItem, error)
	MarkSold(ctx context.Context, id, buyerID int64) (bool, error)
}

type Notifier interface {
	NotifyPurchase(ctx context.Context, buyerID, sellerID, itemID int64, title string) error
}
