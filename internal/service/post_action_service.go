package service

import (
	"Flicker/internal/model"
	"Flicker/internal/pkg/consts"
	"Flicker/internal/pkg/redis"
	"Flicker/internal/repository"
	"context"
	"errors"
	"strconv"
	"time"

	log "log/slog"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const cacheExpiration = 7 * 24 * time.Hour

type PostActionService interface {
	LikePost(ctx context.Context, userID, postID uint64) error
	CancelLikePost(ctx context.Context, userID, postID uint64) error
	GetPostLikeCount(ctx context.Context, postID uint64) (int64, error)

	LikeComment(ctx context.Context, userID, commentID uint64) error
	CancelLikeComment(ctx context.Context, userID, commentID uint64) error
	GetCommentLikeCount(ctx context.Context, commentID uint64) (int64, error)

	LikeReply(ctx context.Context, userID, replyID uint64) error
	CancelLikeReply(ctx context.Context, userID, replyID uint64) error
	GetReplyLikeCount(ctx context.Context, replyID uint64) (int64, error)
}

type postActionServiceImpl struct {
	actionRepo          repository.PostActionRepo
	postRepo            repository.PostRepo
	commentRepo         repository.CommentRepo
	notificationService NotificationService
}

func NewPostActionService(
	actionRepo repository.PostActionRepo,
	postRepo repository.PostRepo,
	commentRepo repository.CommentRepo,
	notificationService NotificationService,
) PostActionService {
	return &postActionServiceImpl{
		actionRepo:          actionRepo,
		postRepo:            postRepo,
		commentRepo:         commentRepo,
		notificationService: notificationService,
	}
}

func (s *postActionServiceImpl) LikePost(ctx context.Context, userID, postID uint64) error {
	post, err := s.getVisiblePost(ctx, postID)
	if err != nil {
		return err
	}

	if err = s.performAction(func() error {
		return s.actionRepo.CreateLike(ctx, &model.Like{UserID: userID, PostID: postID, CreatedAt: time.Now()})
	}); err != nil {
		return err
	}

	if err = s.notificationService.Dispatch(ctx, consts.NotificationTypeLike, userID, post.UserID, postID, "赞了你的帖子"); err != nil {
		log.ErrorContext(ctx, "like notification dispatch failed", "postID", postID, "err", err)
	}
	return nil
}

func (s *postActionServiceImpl) CancelLikePost(ctx context.Context, userID, postID uint64) error {
	if _, err := s.getVisiblePost(ctx, postID); err != nil {
		return err
	}
	return s.revokeAction(func() (int64, error) {
		return s.actionRepo.DeleteLike(ctx, userID, postID)
	})
}

func (s *postActionServiceImpl) GetPostLikeCount(ctx context.Context, postID uint64) (int64, error) {
	return cachedCount(ctx, consts.PostLikeKey, postID, func() (int64, error) {
		return s.actionRepo.GetLikeCountByPostID(ctx, postID)
	})
}

func (s *postActionServiceImpl) LikeComment(ctx context.Context, userID, commentID uint64) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}

	if err = s.performAction(func() error {
		return s.actionRepo.CreateCommentLike(ctx, &model.CommentLike{UserID: userID, CommentID: commentID, CreatedAt: time.Now()})
	}); err != nil {
		return err
	}

	if err = s.notificationService.Dispatch(ctx, consts.NotificationTypeLike, userID, comment.UserID, comment.PostID, "赞了你的评论"); err != nil {
		log.ErrorContext(ctx, "comment like notification dispatch failed", "commentID", commentID, "err", err)
	}
	return nil
}

func (s *postActionServiceImpl) CancelLikeComment(ctx context.Context, userID, commentID uint64) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	return s.revokeAction(func() (int64, error) {
		return s.actionRepo.DeleteCommentLike(ctx, userID, commentID)
	})
}

func (s *postActionServiceImpl) GetCommentLikeCount(ctx context.Context, commentID uint64) (int64, error) {
	return cachedCount(ctx, consts.CommentLikeKey, commentID, func() (int64, error) {
		return s.actionRepo.GetCommentLikeCount(ctx, commentID)
	})
}

func (s *postActionServiceImpl) LikeReply(ctx context.Context, userID, replyID uint64) error {
	reply, err := s.commentRepo.GetReplyByID(ctx, replyID)
	if err != nil {
		return err
	}
	if reply == nil {
		return ErrReplyNotFound
	}

	if err = s.performAction(func() error {
		return s.actionRepo.CreateReplyLike(ctx, &model.ReplyLike{UserID: userID, ReplyID: replyID, CreatedAt: time.Now()})
	}); err != nil {
		return err
	}

	if err = s.notificationService.Dispatch(ctx, consts.NotificationTypeLike, userID, reply.UserID, reply.PostID, "赞了你的回复"); err != nil {
		log.ErrorContext(ctx, "reply like notification dispatch failed", "replyID", replyID, "err", err)
	}
	return nil
}

func (s *postActionServiceImpl) CancelLikeReply(ctx context.Context, userID, replyID uint64) error {
	reply, err := s.commentRepo.GetReplyByID(ctx, replyID)
	if err != nil {
		return err
	}
	if reply == nil {
		return ErrReplyNotFound
	}
	return s.revokeAction(func() (int64, error) {
		return s.actionRepo.DeleteReplyLike(ctx, userID, replyID)
	})
}

func (s *postActionServiceImpl) GetReplyLikeCount(ctx context.Context, replyID uint64) (int64, error) {
	return cachedCount(ctx, consts.ReplyLikeKey, replyID, func() (int64, error) {
		return s.actionRepo.GetReplyLikeCount(ctx, replyID)
	})
}

// getVisiblePost 过期帖子对所有互动不可见
func (s *postActionServiceImpl) getVisiblePost(ctx context.Context, postID uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.ExpiresAt.After(time.Now().In(AppLocation())) {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func (s *postActionServiceImpl) performAction(repoFunc func() error) error {
	if err := repoFunc(); err != nil {
		if isDuplicateError(err) {
			return ErrAlreadyReacted
		}
		return err
	}
	return nil
}

func (s *postActionServiceImpl) revokeAction(repoFunc func() (int64, error)) error {
	rows, err := repoFunc()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotReacted
	}
	return nil
}

// cachedCount 计数缓存，未命中回源后写缓存
func cachedCount(ctx context.Context, keyPrefix string, id uint64, fallback func() (int64, error)) (int64, error) {
	key := keyPrefix + strconv.FormatUint(id, 10)
	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}
	realCount, err := fallback()
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, realCount, cacheExpiration)
	return realCount, nil
}
