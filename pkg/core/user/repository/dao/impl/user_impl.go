package dao

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperr "foro-tematico/pkg/common/errors"
	"foro-tematico/pkg/core/user/model"
	"foro-tematico/pkg/core/user/repository/dao"
)

type GormUserRepository struct {
	db *gorm.DB
}

var _ dao.UserRepository = (*GormUserRepository)(nil)

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// QueryByUsername 精确匹配用户名，包含密码哈希
func (r *GormUserRepository) QueryByUsername(ctx context.Context, username string) (model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).
		Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.User{}, apperr.ErrUserNotFound
	case err != nil:
		return model.User{}, fmt.Errorf("user lookup failed: %w", apperr.WrapGormError(err, apperr.ErrUserNotFound))
	default:
		return user, nil
	}
}

func (r *GormUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if apperr.IsDuplicateError(err) {
			return apperr.ErrDuplicateEntry
		}
		return fmt.Errorf("user creation failed: %w", apperr.WrapGormError(err, apperr.ErrUserNotFound))
	}
	return nil
}
