package dto

// PostReactionDTO 帖子点赞/取消点赞
type PostReactionDTO struct {
	PostID uint64 `json:"post_id" validate:"required"`
}

// CommentReactionDTO 评论点赞/取消点赞
type CommentReactionDTO struct {
	CommentID uint64 `json:"comment_id" validate:"required"`
}

// ReplyReactionDTO 回复点赞/取消点赞
type ReplyReactionDTO struct {
	ReplyID uint64 `json:"reply_id" validate:"required"`
}
