package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"tigerlife/internal/domain"
	"tigerlife/internal/gateway"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) DB() *gorm.DB { return r.db }

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (gateway.InsertResult, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.GNumber = strings.ToUpper(strings.TrimSpace(u.GNumber))
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return gateway.InsertResult{}, err
	}
	return gateway.InsertResult{ID: u.ID, CreatedAt: u.JoinedAt}, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByIDs resolves ids in one batched lookup. Unknown ids are skipped.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}
	var users []domain.User
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *UserRepository) GetByGNumber(ctx context.Context, gNumber string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("g_number = ?", strings.ToUpper(strings.TrimSpace(gNumber))).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ExistsByGNumber(ctx context.Context, gNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("g_number = ?", strings.ToUpper(strings.TrimSpace(gNumber))).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).Order("first_name ASC, last_name ASC, id ASC").Find(&users).Error
	return users, err
}

// Update applies patch to the user row. gorm.ErrRecordNotFound is returned
// when no row matched.
func (r *UserRepository) Update(ctx context.Context, id int64, patch map[string]any) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.User{}, id).Error
}
