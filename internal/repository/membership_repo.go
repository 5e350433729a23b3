package repository

import (
	"context"

	"gorm.io/gorm"

	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
)

// MembershipRepository stores organization_members. The table carries a
// unique (user_id, organization_id) index, so a duplicate Create fails with
// a unique violation instead of inserting a second row.
type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Create(ctx context.Context, m *domain.OrganizationMember) (gateway.InsertResult, error) {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return gateway.InsertResult{}, err
	}
	return gateway.InsertResult{ID: m.ID, CreatedAt: m.JoinedAt}, nil
}

// Get returns the membership row for the pair or gorm.ErrRecordNotFound.
func (r *MembershipRepository) Get(ctx context.Context, userID, orgID int64) (*domain.OrganizationMember, error) {
	var m domain.OrganizationMember
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND organization_id = ?", userID, orgID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MembershipRepository) ListByUser(ctx context.Context, userID int64) ([]domain.OrganizationMember, error) {
	var rows []domain.OrganizationMember
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("joined_at ASC, id ASC").Find(&rows).Error
	return rows, err
}

func (r *MembershipRepository) ListByOrganization(ctx context.Context, orgID int64) ([]domain.OrganizationMember, error) {
	var rows []domain.OrganizationMember
	err := r.db.WithContext(ctx).Where("organization_id = ?", orgID).Order("joined_at ASC, id ASC").Find(&rows).Error
	return rows, err
}

func (r *MembershipRepository) ListAdmins(ctx context.Context, orgID int64) ([]domain.OrganizationMember, error) {
	var rows []domain.OrganizationMember
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND role = ?", orgID, domain.RoleAdmin).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

// AdminOrganizationIDs lists the organizations where userID holds the admin role.
func (r *MembershipRepository) AdminOrganizationIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.OrganizationMember{}).
		Where("user_id = ? AND role = ?", userID, domain.RoleAdmin).
		Order("organization_id ASC").
		Pluck("organization_id", &ids).Error
	return ids, err
}

func (r *MembershipRepository) ListPending(ctx context.Context, orgIDs []int64) ([]domain.OrganizationMember, error) {
	if len(orgIDs) == 0 {
		return []domain.OrganizationMember{}, nil
	}
	var rows []domain.OrganizationMember
	err := r.db.WithContext(ctx).
		Where("organization_id IN ? AND verified = ?", orgIDs, false).
		Order("joined_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *MembershipRepository) SetVerified(ctx context.Context, userID, orgID int64) error {
	res := r.db.WithContext(ctx).
		Model(&domain.OrganizationMember{}).
		Where("user_id = ? AND organization_id = ?", userID, orgID).
		Update("verified", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
