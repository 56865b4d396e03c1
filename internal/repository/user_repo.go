package repository

import (
	"Flicker/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// UserRepo 用户目录只读接口，账号生命周期由外部服务维护
type UserRepo interface {
	GetUserByID(ctx context.Context, id uint64) (*model.User, error)
	GetUserByIDs(ctx context.Context, ids []uint64) ([]*model.User, error)
	SearchUsers(ctx context.Context, keyword string, limit int) ([]*model.User, error)
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) GetUserByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserRepoImpl) GetUserByIDs(ctx context.Context, ids []uint64) ([]*model.User, error) {
	var users []*model.User
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (s *UserRepoImpl) SearchUsers(ctx context.Context, keyword string, limit int) ([]*model.User, error) {
	var users []*model.User
	pattern := "%" + keyword + "%"
	err := s.db.WithContext(ctx).
		Where("username LIKE ?", pattern).
		Limit(limit).
		Find(&users).Error
	return users, err
}
