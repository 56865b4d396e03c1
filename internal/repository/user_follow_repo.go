package repository

import (
	"Flicker/internal/model"
	"context"

	"gorm.io/gorm"
)

// UserFollowRepo 关注图，只被动读取，写入由外部服务负责
type UserFollowRepo interface {
	GetFollowingIDs(ctx context.Context, followerID uint64) ([]uint64, error)
	CheckFollowExists(ctx context.Context, followerID, followingID uint64) (bool, error)
}

type UserFollowRepoImpl struct {
	db *gorm.DB
}

func NewUserFollowRepo(db *gorm.DB) UserFollowRepo {
	return &UserFollowRepoImpl{db: db}
}

// GetFollowingIDs 获取用户关注的所有人
func (s *UserFollowRepoImpl) GetFollowingIDs(ctx context.Context, followerID uint64) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("follower_id = ?", followerID).
		Pluck("following_id", &ids).Error
	return ids, err
}

func (s *UserFollowRepoImpl) CheckFollowExists(ctx context.Context, followerID, followingID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}
