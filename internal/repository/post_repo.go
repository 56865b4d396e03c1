package repository

import (
	"Flicker/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post, images []*model.PostImage) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error)
	GetFeedPosts(ctx context.Context, authorIDs []uint64, now time.Time, limit, offset int) ([]*model.Post, error)
	UpdatePost(ctx context.Context, id uint64, content string, expiresAt time.Time) error
	DeletePost(ctx context.Context, id uint64) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

// CreatePost 帖子和图片记录在同一事务内写入，任一失败则整体回滚
func (s PostRepoImpl) CreatePost(ctx context.Context, post *model.Post, images []*model.PostImage) error {
	if len(images) == 0 {
		return s.db.WithContext(ctx).Create(post).Error
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		for _, img := range images {
			img.PostID = post.ID
		}
		if err := tx.Create(images).Error; err != nil {
			return err
		}
		return nil
	})
}

func (s PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Preload("User").Preload("Images").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s PostRepoImpl) GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).Preload("User").Preload("Images").Where("id IN ?", ids).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetFeedPosts 按作者集合取未过期帖子，创建时间倒序，同一时间按 id 倒序保证分页稳定
func (s PostRepoImpl) GetFeedPosts(ctx context.Context, authorIDs []uint64, now time.Time, limit, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Preload("User").Preload("Images").
		Where("user_id IN ? AND expires_at > ?", authorIDs, now).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s PostRepoImpl) UpdatePost(ctx context.Context, id uint64, content string, expiresAt time.Time) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"content": content, "expires_at": expiresAt}).Error
}

// DeletePost 删除帖子并级联删除图片记录
func (s PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.PostImage{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, "id = ?", id).Error
	})
}

// DeleteExpired 清理所有到期帖子及其图片记录，返回删除的帖子数量
func (s PostRepoImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var purged int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint64
		if err := tx.Model(&model.Post{}).
			Where("expires_at <= ?", now).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Delete(&model.PostImage{}, "post_id IN ?", ids).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Post{}, "id IN ?", ids)
		if result.Error != nil {
			return result.Error
		}
		purged = result.RowsAffected
		return nil
	})
	return purged, err
}
