package repository

import (
	"context"

	"gorm.io/gorm"

	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
)

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) Create(ctx context.Context, o *domain.Organization) (gateway.InsertResult, error) {
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		return gateway.InsertResult{}, err
	}
	return gateway.InsertResult{ID: o.ID, CreatedAt: o.CreatedAt}, nil
}

func (r *OrganizationRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Organization{}, id).Error
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id int64) (*domain.Organization, error) {
	var o domain.Organization
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrganizationRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Organization, error) {
	if len(ids) == 0 {
		return []domain.Organization{}, nil
	}
	var orgs []domain.Organization
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name ASC, id ASC").Find(&orgs).Error
	return orgs, err
}

func (r *OrganizationRepository) List(ctx context.Context) ([]domain.Organization, error) {
	var orgs []domain.Organization
	err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&orgs).Error
	return orgs, err
}

func (r *OrganizationRepository) ListByType(ctx context.Context, t domain.OrganizationType) ([]domain.Organization, error) {
	var orgs []domain.Organization
	err := r.db.WithContext(ctx).Where("type = ?", t).Order("name ASC, id ASC").Find(&orgs).Error
	return orgs, err
}

func (r *OrganizationRepository) ListPending(ctx context.Context) ([]domain.Organization, error) {
	var orgs []domain.Organization
	err := r.db.WithContext(ctx).Where("verified = ?", false).Order("created_at ASC, id ASC").Find(&orgs).Error
	return orgs, err
}

func (r *OrganizationRepository) SetVerified(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&domain.Organization{}).Where("id = ?", id).Update("verified", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
