package repository

import (
	"Flicker/internal/model"
	"context"

	"gorm.io/gorm"
)

type PostActionRepo interface {
	CreateLike(ctx context.Context, like *model.Like) error
	DeleteLike(ctx context.Context, userID, postID uint64) (int64, error)
	CheckLikeExists(ctx context.Context, userID, postID uint64) (bool, error)
	GetLikedPostIDs(ctx context.Context, userID uint64, postIDs []uint64) ([]uint64, error)
	GetLikeCountByPostID(ctx context.Context, postID uint64) (int64, error)

	CreateCommentLike(ctx context.Context, cl *model.CommentLike) error
	DeleteCommentLike(ctx context.Context, userID, commentID uint64) (int64, error)
	GetLikedCommentIDs(ctx context.Context, userID uint64, commentIDs []uint64) ([]uint64, error)
	GetCommentLikeCount(ctx context.Context, commentID uint64) (int64, error)

	CreateReplyLike(ctx context.Context, rl *model.ReplyLike) error
	DeleteReplyLike(ctx context.Context, userID, replyID uint64) (int64, error)
	GetLikedReplyIDs(ctx context.Context, userID uint64, replyIDs []uint64) ([]uint64, error)
	GetReplyLikeCount(ctx context.Context, replyID uint64) (int64, error)
}

type PostActionRepoImpl struct {
	db *gorm.DB
}

func NewPostActionRepo(db *gorm.DB) PostActionRepo {
	return &PostActionRepoImpl{db}
}

func (s *PostActionRepoImpl) CreateLike(ctx context.Context, like *model.Like) error {
	return s.db.WithContext(ctx).Create(like).Error
}

func (s *PostActionRepoImpl) DeleteLike(ctx context.Context, userID, postID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Like{})
	return result.RowsAffected, result.Error
}

func (s *PostActionRepoImpl) CheckLikeExists(ctx context.Context, userID, postID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

// GetLikedPostIDs 批量查出给定帖子里该用户点过赞的那部分
func (s *PostActionRepoImpl) GetLikedPostIDs(ctx context.Context, userID uint64, postIDs []uint64) ([]uint64, error) {
	var liked []uint64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &liked).Error
	return liked, err
}

func (s *PostActionRepoImpl) GetLikeCountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (s *PostActionRepoImpl) CreateCommentLike(ctx context.Context, cl *model.CommentLike) error {
	return s.db.WithContext(ctx).Create(cl).Error
}

func (s *PostActionRepoImpl) DeleteCommentLike(ctx context.Context, userID, commentID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&model.CommentLike{})
	return result.RowsAffected, result.Error
}

func (s *PostActionRepoImpl) GetLikedCommentIDs(ctx context.Context, userID uint64, commentIDs []uint64) ([]uint64, error) {
	var liked []uint64
	err := s.db.WithContext(ctx).Model(&model.CommentLike{}).
		Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
		Pluck("comment_id", &liked).Error
	return liked, err
}

func (s *PostActionRepoImpl) GetCommentLikeCount(ctx context.Context, commentID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error
	return count, err
}

func (s *PostActionRepoImpl) CreateReplyLike(ctx context.Context, rl *model.ReplyLike) error {
	return s.db.WithContext(ctx).Create(rl).Error
}

func (s *PostActionRepoImpl) DeleteReplyLike(ctx context.Context, userID, replyID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND reply_id = ?", userID, replyID).
		Delete(&model.ReplyLike{})
	return result.RowsAffected, result.Error
}

func (s *PostActionRepoImpl) GetLikedReplyIDs(ctx context.Context, userID uint64, replyIDs []uint64) ([]uint64, error) {
	var liked []uint64
	err := s.db.WithContext(ctx).Model(&model.ReplyLike{}).
		Where("user_id = ? AND reply_id IN ?", userID, replyIDs).
		Pluck("reply_id", &liked).Error
	return liked, err
}

func (s *PostActionRepoImpl) GetReplyLikeCount(ctx context.Context, replyID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ReplyLike{}).
		Where("reply_id = ?", replyID).
		Count(&count).Error
	return count, err
}
