package service

import (
	"Flicker/internal/api/config"
	"Flicker/internal/api/dto"
	"Flicker/internal/model"
	"Flicker/internal/pkg/consts"
	"Flicker/internal/pkg/minio"
	"Flicker/internal/repository"
	"context"
	"time"

	log "log/slog"
)

const timeLayout = "2006-01-02 15:04:05"

type FeedService interface {
	GetFeed(ctx context.Context, viewerID uint64, page, pageSize int) (*dto.FeedDTO, error)
	GetPost(ctx context.Context, viewerID, postID uint64) (*dto.PostDTO, error)
}

type feedServiceImpl struct {
	postRepo    repository.PostRepo
	followRepo  repository.UserFollowRepo
	actionRepo  repository.PostActionRepo
	commentRepo repository.CommentRepo
}

func NewFeedService(
	postRepo repository.PostRepo,
	followRepo repository.UserFollowRepo,
	actionRepo repository.PostActionRepo,
	commentRepo repository.CommentRepo,
) FeedService {
	return &feedServiceImpl{
		postRepo:    postRepo,
		followRepo:  followRepo,
		actionRepo:  actionRepo,
		commentRepo: commentRepo,
	}
}

func feedPageSize() int {
	if config.Cfg != nil && config.Cfg.App.FeedPageSize > 0 {
		return config.Cfg.App.FeedPageSize
	}
	return consts.DefaultFeedPageSize
}

// GetFeed 关注流：先清理过期帖子，再取自己与关注者的未过期帖子
func (s *feedServiceImpl) GetFeed(ctx context.Context, viewerID uint64, page, pageSize int) (*dto.FeedDTO, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = feedPageSize()
	}

	now := time.Now().In(AppLocation())
	if _, err := s.postRepo.DeleteExpired(ctx, now); err != nil {
		log.ErrorContext(ctx, "expired post purge failed", "err", err)
	}

	followingIDs, err := s.followRepo.GetFollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	authorIDs := append(followingIDs, viewerID)

	posts, err := s.postRepo.GetFeedPosts(ctx, authorIDs, now, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	hasMore := len(posts) > pageSize
	if hasMore {
		posts = posts[:pageSize]
	}

	list, err := s.assemblePosts(ctx, viewerID, posts)
	if err != nil {
		return nil, err
	}
	return &dto.FeedDTO{List: list, HasMore: hasMore}, nil
}

// GetPost 获取单个帖子，过期视同不存在
func (s *feedServiceImpl) GetPost(ctx context.Context, viewerID, postID uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.ExpiresAt.After(time.Now().In(AppLocation())) {
		return nil, ErrPostNotFound
	}

	list, err := s.assemblePosts(ctx, viewerID, []*model.Post{post})
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

func (s *feedServiceImpl) assemblePosts(ctx context.Context, viewerID uint64, posts []*model.Post) ([]*dto.PostDTO, error) {
	postIDs := make([]uint64, 0, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.ID)
	}

	likedSet := make(map[uint64]struct{})
	if viewerID > 0 && len(postIDs) > 0 {
		likedIDs, err := s.actionRepo.GetLikedPostIDs(ctx, viewerID, postIDs)
		if err != nil {
			return nil, err
		}
		for _, id := range likedIDs {
			likedSet[id] = struct{}{}
		}
	}

	list := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		item := &dto.PostDTO{
			ID:        post.ID,
			Content:   post.Content,
			Timestamp: post.CreatedAt.In(AppLocation()).Format(timeLayout),
			ExpiresAt: post.ExpiresAt.In(AppLocation()).Format(timeLayout),
			UserID:    post.UserID,
		}

		if post.User.ID > 0 {
			item.Username = post.User.Username
			item.FirstName = post.User.FirstName
			item.LastName = post.User.LastName
			item.AvatarURL = minio.GetPublicURL(post.User.AvatarURL)
		}

		item.Images = make([]*dto.ImageDTO, 0, len(post.Images))
		for _, img := range post.Images {
			item.Images = append(item.Images, &dto.ImageDTO{
				ImageURL: minio.GetPublicURL(img.ImageURL),
				Width:    img.Width,
				Height:   img.Height,
			})
		}

		item.LikeCount, _ = cachedCount(ctx, consts.PostLikeKey, post.ID, func() (int64, error) {
			return s.actionRepo.GetLikeCountByPostID(ctx, post.ID)
		})
		item.CommentCount, _ = cachedCount(ctx, consts.PostCommentKey, post.ID, func() (int64, error) {
			comments, err := s.commentRepo.GetCommentCountByPostID(ctx, post.ID)
			if err != nil {
				return 0, err
			}
			replies, err := s.commentRepo.GetReplyCountByPostID(ctx, post.ID)
			if err != nil {
				return 0, err
			}
			return comments + replies, nil
		})

		_, item.LikedByUser = likedSet[post.ID]
		list = append(list, item)
	}

	return list, nil
}
