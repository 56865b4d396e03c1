package service

import (
	"Flicker/internal/api/dto"
	"Flicker/internal/model"
	"Flicker/internal/pkg/consts"
	"Flicker/internal/pkg/minio"
	"Flicker/internal/pkg/redis"
	"Flicker/internal/pkg/util"
	"Flicker/internal/repository"
	"context"
	"strconv"
	"time"

	log "log/slog"
)

type CommentService interface {
	GetThread(ctx context.Context, viewerID, postID uint64) (*dto.ThreadDTO, error)
	AddComment(ctx context.Context, userID uint64, req *dto.CommentCreateDTO) error
	DeleteComment(ctx context.Context, userID, commentID uint64) error
	AddReply(ctx context.Context, userID uint64, req *dto.ReplyCreateDTO) error
	DeleteReply(ctx context.Context, userID, replyID uint64) error
}

type commentServiceImpl struct {
	commentRepo         repository.CommentRepo
	postRepo            repository.PostRepo
	actionRepo          repository.PostActionRepo
	notificationService NotificationService
}

func NewCommentService(
	commentRepo repository.CommentRepo,
	postRepo repository.PostRepo,
	actionRepo repository.PostActionRepo,
	notificationService NotificationService,
) CommentService {
	return &commentServiceImpl{
		commentRepo:         commentRepo,
		postRepo:            postRepo,
		actionRepo:          actionRepo,
		notificationService: notificationService,
	}
}

// GetThread 拉平的评论与回复在内存重组成树
func (s *commentServiceImpl) GetThread(ctx context.Context, viewerID, postID uint64) (*dto.ThreadDTO, error) {
	if _, err := s.getVisiblePost(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	replies, err := s.commentRepo.GetRepliesByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	likedComments, likedReplies, err := s.batchGetLiked(ctx, viewerID, comments, replies)
	if err != nil {
		return nil, err
	}

	// 按根评论和父回复分组
	replyIndex := make(map[uint64]struct{}, len(replies))
	for _, reply := range replies {
		replyIndex[reply.ID] = struct{}{}
	}
	rootReplies := make(map[uint64][]*model.Reply)
	childReplies := make(map[uint64][]*model.Reply)
	for _, reply := range replies {
		if reply.ParentID == nil {
			rootReplies[reply.MainID] = append(rootReplies[reply.MainID], reply)
			continue
		}
		if _, ok := replyIndex[*reply.ParentID]; !ok {
			// 父回复已被删除，挂回根评论下
			rootReplies[reply.MainID] = append(rootReplies[reply.MainID], reply)
			continue
		}
		childReplies[*reply.ParentID] = append(childReplies[*reply.ParentID], reply)
	}

	total := len(comments) + len(replies)
	list := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		item := s.toCommentDTO(ctx, comment, likedComments)
		item.Replies = s.buildReplyTree(ctx, rootReplies[comment.ID], childReplies, likedReplies)
		list = append(list, item)
	}

	return &dto.ThreadDTO{List: list, Total: total}, nil
}

// AddComment 新增根评论并通知帖子作者
func (s *commentServiceImpl) AddComment(ctx context.Context, userID uint64, req *dto.CommentCreateDTO) error {
	if err := util.ValidateDTO(req); err != nil {
		return ErrMissingFields
	}

	post, err := s.getVisiblePost(ctx, req.PostID)
	if err != nil {
		return err
	}

	comment := &model.Comment{
		PostID:    req.PostID,
		UserID:    userID,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if err = s.commentRepo.CreateComment(ctx, comment); err != nil {
		return err
	}
	s.invalidateCommentCount(ctx, req.PostID)

	if err = s.notificationService.Dispatch(ctx, consts.NotificationTypeComment, userID, post.UserID, post.ID, "评论了你的帖子"); err != nil {
		log.ErrorContext(ctx, "comment notification dispatch failed", "postID", post.ID, "err", err)
	}
	return nil
}

func (s *commentServiceImpl) DeleteComment(ctx context.Context, userID, commentID uint64) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.UserID != userID {
		return UnauthorizedError
	}

	if err = s.commentRepo.DeleteComment(ctx, commentID); err != nil {
		return err
	}
	s.invalidateCommentCount(ctx, comment.PostID)
	return nil
}

// AddReply 回复根评论或其他回复，通知被回复者
func (s *commentServiceImpl) AddReply(ctx context.Context, userID uint64, req *dto.ReplyCreateDTO) error {
	if err := util.ValidateDTO(req); err != nil {
		return ErrMissingFields
	}

	comment, err := s.commentRepo.GetCommentByID(ctx, req.CommentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if _, err = s.getVisiblePost(ctx, comment.PostID); err != nil {
		return err
	}

	replyToUserID := comment.UserID
	if req.ParentID != nil {
		parent, err := s.commentRepo.GetReplyByID(ctx, *req.ParentID)
		if err != nil {
			return err
		}
		if parent == nil || parent.MainID != comment.ID {
			return ErrReplyNotFound
		}
		replyToUserID = parent.UserID
	}

	reply := &model.Reply{
		PostID:    comment.PostID,
		MainID:    comment.ID,
		ParentID:  req.ParentID,
		UserID:    userID,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if err = s.commentRepo.CreateReply(ctx, reply); err != nil {
		return err
	}
	s.invalidateCommentCount(ctx, comment.PostID)

	if err = s.notificationService.Dispatch(ctx, consts.NotificationTypeComment, userID, replyToUserID, comment.PostID, "回复了你"); err != nil {
		log.ErrorContext(ctx, "reply notification dispatch failed", "commentID", comment.ID, "err", err)
	}
	return nil
}

func (s *commentServiceImpl) DeleteReply(ctx context.Context, userID, replyID uint64) error {
	reply, err := s.commentRepo.GetReplyByID(ctx, replyID)
	if err != nil {
		return err
	}
	if reply == nil {
		return ErrReplyNotFound
	}
	if reply.UserID != userID {
		return UnauthorizedError
	}

	if err = s.commentRepo.DeleteReply(ctx, replyID); err != nil {
		return err
	}
	s.invalidateCommentCount(ctx, reply.PostID)
	return nil
}

func (s *commentServiceImpl) getVisiblePost(ctx context.Context, postID uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.ExpiresAt.After(time.Now().In(AppLocation())) {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *commentServiceImpl) invalidateCommentCount(ctx context.Context, postID uint64) {
	key := consts.PostCommentKey + strconv.FormatUint(postID, 10)
	if err := redis.DeleteKey(ctx, key); err != nil {
		log.ErrorContext(ctx, "comment count cache invalidation failed", "postID", postID, "err", err)
	}
}

func (s *commentServiceImpl) buildReplyTree(ctx context.Context, replies []*model.Reply, childReplies map[uint64][]*model.Reply, liked map[uint64]struct{}) []*dto.ReplyDTO {
	res := make([]*dto.ReplyDTO, 0, len(replies))
	for _, reply := range replies {
		item := s.toReplyDTO(ctx, reply, liked)
		item.Children = s.buildReplyTree(ctx, childReplies[reply.ID], childReplies, liked)
		res = append(res, item)
	}
	return res
}

func (s *commentServiceImpl) toCommentDTO(ctx context.Context, comment *model.Comment, liked map[uint64]struct{}) *dto.CommentDTO {
	item := &dto.CommentDTO{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt.In(AppLocation()).Format(timeLayout),
		UserID:    comment.UserID,
	}
	if comment.User.ID > 0 {
		item.Username = comment.User.Username
		item.AvatarURL = minio.GetPublicURL(comment.User.AvatarURL)
	}
	item.LikeCount, _ = cachedCount(ctx, consts.CommentLikeKey, comment.ID, func() (int64, error) {
		return s.actionRepo.GetCommentLikeCount(ctx, comment.ID)
	})
	_, item.IsLiked = liked[comment.ID]
	return item
}

func (s *commentServiceImpl) toReplyDTO(ctx context.Context, reply *model.Reply, liked map[uint64]struct{}) *dto.ReplyDTO {
	item := &dto.ReplyDTO{
		ID:        reply.ID,
		MainID:    reply.MainID,
		ParentID:  reply.ParentID,
		Content:   reply.Content,
		CreatedAt: reply.CreatedAt.In(AppLocation()).Format(timeLayout),
		UserID:    reply.UserID,
	}
	if reply.User.ID > 0 {
		item.Username = reply.User.Username
		item.AvatarURL = minio.GetPublicURL(reply.User.AvatarURL)
	}
	item.LikeCount, _ = cachedCount(ctx, consts.ReplyLikeKey, reply.ID, func() (int64, error) {
		return s.actionRepo.GetReplyLikeCount(ctx, reply.ID)
	})
	_, item.IsLiked = liked[reply.ID]
	return item
}

func (s *commentServiceImpl) batchGetLiked(ctx context.Context, viewerID uint64, comments []*model.Comment, replies []*model.Reply) (map[uint64]struct{}, map[uint64]struct{}, error) {
	likedComments := make(map[uint64]struct{})
	likedReplies := make(map[uint64]struct{})
	if viewerID == 0 {
		return likedComments, likedReplies, nil
	}

	if len(comments) > 0 {
		ids := make([]uint64, 0, len(comments))
		for _, c := range comments {
			ids = append(ids, c.ID)
		}
		likedIDs, err := s.actionRepo.GetLikedCommentIDs(ctx, viewerID, ids)
		if err != nil {
			return nil, nil, err
		}
		for _, id := range likedIDs {
			likedComments[id] = struct{}{}
		}
	}

	if len(replies) > 0 {
		ids := make([]uint64, 0, len(replies))
		for _, r := range replies {
			ids = append(ids, r.ID)
		}
		likedIDs, err := s.actionRepo.GetLikedReplyIDs(ctx, viewerID, ids)
		if err != nil {
			return nil, nil, err
		}
		for _, id := range likedIDs {
			likedReplies[id] = struct{}{}
		}
	}

	return likedComments, likedReplies, nil
}
