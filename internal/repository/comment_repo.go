package repository

import (
	"Flicker/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID uint64) ([]*model.Comment, error)
	GetCommentCountByPostID(ctx context.Context, postID uint64) (int64, error)
	DeleteComment(ctx context.Context, commentID uint64) error

	CreateReply(ctx context.Context, reply *model.Reply) error
	GetReplyByID(ctx context.Context, replyID uint64) (*model.Reply, error)
	GetRepliesByPostID(ctx context.Context, postID uint64) ([]*model.Reply, error)
	GetReplyCountByPostID(ctx context.Context, postID uint64) (int64, error)
	DeleteReply(ctx context.Context, replyID uint64) error
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *CommentRepoImpl) GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error) {
	var comment model.Comment
	err := s.db.WithContext(ctx).First(&comment, commentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID 一次取出帖子的全部顶级评论，创建时间倒序
func (s *CommentRepoImpl) GetCommentsByPostID(ctx context.Context, postID uint64) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	return comments, err
}

func (s *CommentRepoImpl) GetCommentCountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

// DeleteComment 删除评论及其整棵回复树
func (s *CommentRepoImpl) DeleteComment(ctx context.Context, commentID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Reply{}, "main_id = ?", commentID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Comment{}, "id = ?", commentID).Error
	})
}

func (s *CommentRepoImpl) CreateReply(ctx context.Context, reply *model.Reply) error {
	return s.db.WithContext(ctx).Create(reply).Error
}

func (s *CommentRepoImpl) GetReplyByID(ctx context.Context, replyID uint64) (*model.Reply, error) {
	var reply model.Reply
	err := s.db.WithContext(ctx).First(&reply, replyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reply, nil
}

// GetRepliesByPostID 一次取出帖子下的全部回复，时间正序，分组在内存完成
func (s *CommentRepoImpl) GetRepliesByPostID(ctx context.Context, postID uint64) ([]*model.Reply, error) {
	var replies []*model.Reply
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&replies).Error
	return replies, err
}

func (s *CommentRepoImpl) GetReplyCountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Reply{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (s *CommentRepoImpl) DeleteReply(ctx context.Context, replyID uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Reply{}, "id = ?", replyID).Error
}
