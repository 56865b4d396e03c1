package dto

// CommentDTO 根评论，Replies 为该评论下的整棵回复树
type CommentDTO struct {
	ID        uint64 `json:"comment_id"`
	PostID    uint64 `json:"post_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`

	UserID    uint64 `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"profile_image"`

	LikeCount int64 `json:"like_count"`
	IsLiked   bool  `json:"is_liked"`

	Replies []*ReplyDTO `json:"replies"`
}

// ReplyDTO 回复，Children 为嵌套的子回复
type ReplyDTO struct {
	ID        uint64  `json:"reply_id"`
	MainID    uint64  `json:"main_id"`
	ParentID  *uint64 `json:"parent_id"`
	Content   string  `json:"content"`
	CreatedAt string  `json:"created_at"`

	UserID    uint64 `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"profile_image"`

	LikeCount int64 `json:"like_count"`
	IsLiked   bool  `json:"is_liked"`

	Children []*ReplyDTO `json:"children"`
}

// ThreadDTO 帖子下的完整讨论树
type ThreadDTO struct {
	List  []*CommentDTO `json:"list"`
	Total int           `json:"total"`
}

// CommentCreateDTO 评论 - 新增
type CommentCreateDTO struct {
	PostID  uint64 `json:"post_id" validate:"required"`
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// ReplyCreateDTO 回复 - 新增，ParentID 为空表示直接回复根评论
type ReplyCreateDTO struct {
	CommentID uint64  `json:"comment_id" validate:"required"`
	ParentID  *uint64 `json:"parent_id"`
	Content   string  `json:"content" validate:"required,min=1,max=1000"`
}
