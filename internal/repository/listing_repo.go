package repository

import (
	"context"

	"gorm.io/gorm"

	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
)

type MarketplaceRepository struct {
	db *gorm.DB
}

func NewMarketplaceRepository(db *gorm.DB) *MarketplaceRepository {
	return &MarketplaceRepository{db: db}
}

func (r *MarketplaceRepository) Create(ctx context.Context, item *domain.MarketplaceItem) (gateway.InsertResult, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return gateway.InsertResult{}, err
	}
	return gateway.InsertResult{ID: item.ID, CreatedAt: item.CreatedAt}, nil
}

func (r *MarketplaceRepository) GetByID(ctx context.Context, id int64) (*domain.MarketplaceItem, error) {
	var item domain.MarketplaceItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListAvailable returns unsold items, newest first.
func (r *MarketplaceRepository) ListAvailable(ctx context.Context) ([]domain.MarketplaceItem, error) {
	var items []domain.MarketplaceItem
	err := r.db.WithContext(ctx).Where("sold = ?", false).Order("created_at DESC, id DESC").Find(&items).Error
	return items, err
}

// MarkSold flips sold only while the item is still available. It returns
// false when another buyer got there first.
func (r *MarketplaceRepository) MarkSold(ctx context.Context, id, buyerID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.MarketplaceItem{}).
		Where("id = ? AND sold = ?", id, false).
		Updates(map[string]any{"sold": true, "buyer_id": buyerID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) (gateway.InsertResult, error) {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return gateway.InsertResult{}, err
	}
	return gateway.InsertResult{ID: s.ID, CreatedAt: s.CreatedAt}, nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var s domain.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]domain.Service, error) {
	var services []domain.Service
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&services).Error
	return services, err
}

func (r *ServiceRepository) CreateBooking(ctx context.Context, b *domain.Booking) (gateway.InsertResult, error) {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return gateway.InsertResult{}, err
	}
	return gateway.InsertResult{ID: b.ID, CreatedAt: b.CreatedAt}, nil
}
