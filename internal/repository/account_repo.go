package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, a *domain.AuthAccount) (gateway.InsertResult, error) {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return gateway.InsertResult{}, err
	}
	return gateway.InsertResult{ID: a.ID, CreatedAt: a.CreatedAt}, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.AuthAccount, error) {
	var a domain.AuthAccount
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.AuthAccount, error) {
	var a domain.AuthAccount
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepository) Update(ctx context.Context, id int64, patch map[string]any) error {
	res := r.db.WithContext(ctx).Model(&domain.AuthAccount{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.AuthAccount{}, id).Error
}

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// Active reports whether the session exists and has not expired.
func (r *SessionRepository) Active(ctx context.Context, id string, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("id = ? AND expires_at > ?", id, now).
		Count(&count).Error
	return count > 0, err
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Session{}).Error
}

func (r *SessionRepository) DeleteByUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Session{}).Error
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&domain.Session{})
	return res.RowsAffected, res.Error
}

type VerifiedIDRepository struct {
	db *gorm.DB
}

func NewVerifiedIDRepository(db *gorm.DB) *VerifiedIDRepository {
	return &VerifiedIDRepository{db: db}
}

func (r *VerifiedIDRepository) Create(ctx context.Context, v *domain.VerifiedID) (gateway.InsertResult, error) {
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return gateway.InsertResult{}, err
	}
	return gateway.InsertResult{ID: v.ID, CreatedAt: v.VerifiedAt}, nil
}
