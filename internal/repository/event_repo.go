package repository

import (
	"context"

	"gorm.io/gorm"

	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) (gateway.InsertResult, error) {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return gateway.InsertResult{}, err
	}
	return gateway.InsertResult{ID: e.ID, CreatedAt: e.CreatedAt}, nil
}

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	err := r.db.WithContext(ctx).Order("date ASC, id ASC").Find(&events).Error
	return events, err
}

func (r *EventRepository) ListByOrganization(ctx context.Context, orgID int64) ([]domain.Event, error) {
	var events []domain.Event
	err := r.db.WithContext(ctx).Where("organization_id = ?", orgID).Order("date ASC, id ASC").Find(&events).Error
	return events, err
}
