package handler

import (
	"Flicker/internal/api/dto"
	"Flicker/internal/pkg/response"
	"Flicker/internal/service"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// PostOpsHandler 帖子域信封入口：POST|GET /api/posts?operation=xxx&json={...}
type PostOpsHandler struct {
	postSvc    service.PostService
	feedSvc    service.FeedService
	commentSvc service.CommentService
	actionSvc  service.PostActionService
}

func NewPostOpsHandler(
	postSvc service.PostService,
	feedSvc service.FeedService,
	commentSvc service.CommentService,
	actionSvc service.PostActionService,
) *PostOpsHandler {
	return &PostOpsHandler{
		postSvc:    postSvc,
		feedSvc:    feedSvc,
		commentSvc: commentSvc,
		actionSvc:  actionSvc,
	}
}

// 信封参数对 GET 和 POST 一视同仁
func envelopeParam(c *gin.Context, key string) string {
	if v := c.PostForm(key); v != "" {
		return v
	}
	return c.Query(key)
}

// viewerID 优先取鉴权中间件注入的 UID，缺省回落到载荷里的 user_id
func viewerID(c *gin.Context, raw []byte) uint64 {
	if uid := c.GetUint64("user_id"); uid > 0 {
		return uid
	}
	var payload struct {
		UserID    uint64 `json:"user_id"`
		UserIDAlt uint64 `json:"userId"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return 0
	}
	if payload.UserID > 0 {
		return payload.UserID
	}
	return payload.UserIDAlt
}

func (s *PostOpsHandler) Dispatch(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodPost {
		response.InvalidRequestMethod(c)
		return
	}

	operation := envelopeParam(c, "operation")
	jsonStr := envelopeParam(c, "json")
	if operation == "" || jsonStr == "" {
		response.MissingParameters(c)
		return
	}
	raw := []byte(jsonStr)

	switch operation {
	case "createPost":
		s.createPost(c, raw)
	case "getFeed":
		s.getFeed(c, raw)
	case "getPost":
		s.getPost(c, raw)
	case "updatePost":
		s.updatePost(c, raw)
	case "deletePost":
		s.deletePost(c, raw)
	case "likePost":
		s.reaction(c, raw, s.likePost)
	case "unlikePost":
		s.reaction(c, raw, s.unlikePost)
	case "getComments":
		s.getComments(c, raw)
	case "addComment":
		s.addComment(c, raw)
	case "deleteComment":
		s.deleteComment(c, raw)
	case "addReply":
		s.addReply(c, raw)
	case "deleteReply":
		s.deleteReply(c, raw)
	case "likeComment":
		s.commentReaction(c, raw, s.actionSvc.LikeComment)
	case "unlikeComment":
		s.commentReaction(c, raw, s.actionSvc.CancelLikeComment)
	case "likeReply":
		s.replyReaction(c, raw, s.actionSvc.LikeReply)
	case "unlikeReply":
		s.replyReaction(c, raw, s.actionSvc.CancelLikeReply)
	default:
		response.InvalidOperation(c)
	}
}

func (s *PostOpsHandler) createPost(c *gin.Context, raw []byte) {
	var req dto.PostCreateDTO
	if err := json.Unmarshal(raw, &req); err != nil {
		response.Error(c, err)
		return
	}

	userID := viewerID(c, raw)
	if userID == 0 {
		response.Error(c, service.ErrMissingFields)
		return
	}

	var uploads []*service.ImageUpload
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["images"] {
			file, err := fh.Open()
			if err != nil {
				response.Error(c, service.ErrImageStore)
				return
			}
			defer file.Close()
			uploads = append(uploads, &service.ImageUpload{
				Name:   fh.Filename,
				Size:   fh.Size,
				Reader: file,
			})
		}
	}

	created, err := s.postSvc.CreatePost(c.Request.Context(), userID, &req, uploads)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, created)
}

func (s *PostOpsHandler) getFeed(c *gin.Context, raw []byte) {
	var req struct {
		Page     int `json:"page"`
		PageSize int `json:"page_size"`
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		response.Error(c, err)
		return
	}

	feed, err := s.feedSvc.GetFeed(c.Request.Context(), viewerID(c, raw), req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feed)
}

func (s *PostOpsHandler) getPost(c *gin.Context, raw []byte) {
	var req dto.PostReactionDTO
	if err := json.Unmarshal(raw, &req); err != nil {
		response.Error(c, err)
		return
	}
	if req.PostID == 0 {
		response.Error(c, service.ErrMissingFields)
		return
	}

	post, err := s.feedSvc.GetPost(c.Request.Context(), viewerID(c, raw), req.PostID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostOpsHandler) updatePost(c *gin.Context, raw []byte) {
	var req dto.PostUpdateDTO
	if err := json.Unmarshal(raw, &req); err != nil {
		response.Error(c, err)
		return
	}

	userID := viewerID(c, raw)
	if userID == 0 {
		response.Error(c, service.ErrMissingFields)
		return
	}

	if err := s.postSvc.UpdatePost(c.Request.Context(), userID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Post updated successfully.")
}

func (s *PostOpsHandler) deletePost(c *gin.Context, raw []byte) {
	var req dto.PostReactionDTO
	if err := json.Unmarshal(raw, &req); err != nil {
		response.Error(c, err)
		return
	}
	if req.PostID == 0 {
		response.Error(c, service.ErrMissingFields)
		return
	}

	userID := viewerID(c, raw)
	if userID == 0 {
		response.Error(c, service.ErrMissingFields)
		return
	}

	if err := s.postSvc.DeletePost(c.Request.Context(), userID, req.PostID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Post deleted successfully.")
}

func (s *PostOpsHandler) reaction(c *gin.Context, raw []byte, action func(c *gin.Context, userID, postID uint64) error) {
	var req dto.PostReactionDTO
	if err := json.Unmarshal(raw, &req); err != nil {
		response.Error(c, err)
		return
	}

	userID := viewerID(c, raw)
	if userID == 0 || req.PostID == 0 {
		response.Error(c, service.ErrMissingFields)
		return
	}

	if err := action(c, userID, req.PostID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, true)
}

func (s *PostOpsHandler) likePost(c *gin.Context, userID, postID uint64) error {
	return s.actionSvc.LikePost(c.Request.Context(), userID, postID)
}

func (s *PostOpsHandler) unlikePost(c *gin.Context, userID, postID uint64) error {
	return s.actionSvc.CancelLikePost(c.Request.Context(), userID, postID)
}

func (s *PostOpsHandler) getComments(c *gin.Context, raw []byte) {
	var req dto.PostReactionDTO
	if err := json.Unmarshal(raw, &req); err != nil {
		response.Error(c, err)
		return
	}
	if req.PostID == 0 {
		response.Error(c, service.ErrMissingFields)
		return
	}

	thread, err := s.commentSvc.GetThread(c.Request.Context(), viewerID(c, raw), req.PostID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, thread)
}

func (s *PostOpsHandler) addComment(c *gin.Context, raw []byte) {
	var req dto.CommentCreateDTO
	if err := json.Unmarshal(raw, &req); err != nil {
		response.Error(c, err)
		return
	}

	userID := viewerID(c, raw)
	if userID == 0 {
		response.Error(c, service.ErrMissingFields)
		return
	}

	if err := s.commentSvc.AddComment(c.Request.Context(), userID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, true)
}

func (s *PostOpsHandler) deleteComment(c *gin.Context, raw []byte) {
	var req dto.CommentReactionDTO
	if err := json.Unmarshal(raw, &req); err != nil {
		response.Error(c, err)
		return
	}

	userID := viewerID(c, raw)
	if userID == 0 || req.CommentID == 0 {
		response.Error(c, service.ErrMissingFields)
		return
	}

	if err := s.commentSvc.DeleteComment(c.Request.Context(), userID, req.CommentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, true)
}

func (s *PostOpsHandler) addReply(c *gin.Context, raw []byte) {
	var req dto.ReplyCreateDTO
	if err := json.Unmarshal(raw, &req); err != nil {
		response.Error(c, err)
		return
	}

	userID := viewerID(c, raw)
	if userID == 0 {
		response.Error(c, service.ErrMissingFields)
		return
	}

	if err := s.commentSvc.AddReply(c.Request.Context(), userID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, true)
}

func (s *PostOpsHandler) deleteReply(c *gin.Context, raw []byte) {
	var req dto.ReplyReactionDTO
	if err := json.Unmarshal(raw, &req); err != nil {
		response.Error(c, err)
		return
	}

	userID := viewerID(c, raw)
	if userID == 0 || req.ReplyID == 0 {
		response.Error(c, service.ErrMissingFields)
		return
	}

	if err := s.commentSvc.DeleteReply(c.Request.Context(), userID, req.ReplyID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, true)
}

func (s *PostOpsHandler) commentReaction(c *gin.Context, raw []byte, action func(ctx context.Context, userID, commentID uint64) error) {
	var req dto.CommentReactionDTO
	if err := json.Unmarshal(raw, &req); err != nil {
		response.Error(c, err)
		return
	}

	userID := viewerID(c, raw)
	if userID == 0 || req.CommentID == 0 {
		response.Error(c, service.ErrMissingFields)
		return
	}

	if err := action(c.Request.Context(), userID, req.CommentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, true)
}

func (s *PostOpsHandler) replyReaction(c *gin.Context, raw []byte, action func(ctx context.Context, userID, replyID uint64) error) {
	var req dto.ReplyReactionDTO
	if err := json.Unmarshal(raw, &req); err != nil {
		response.Error(c, err)
		return
	}

	userID := viewerID(c, raw)
	if userID == 0 || req.ReplyID == 0 {
		response.Error(c, service.ErrMissingFields)
		return
	}

	if err := action(c.Request.Context(), userID, req.ReplyID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, true)
}
