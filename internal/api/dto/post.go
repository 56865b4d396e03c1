package dto

// PostDTO 帖子
type PostDTO struct {
	// Post
	ID        uint64 `json:"post_id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	ExpiresAt string `json:"expires_at"`

	// PostImage
	Images []*ImageDTO `json:"images"`

	// User
	UserID    uint64 `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"profile_image"`

	// 统计与观察者状态
	LikeCount    int64 `json:"like_count"`
	CommentCount int64 `json:"comment_count"`
	LikedByUser  bool  `json:"liked_by_user"`
}

// ImageDTO 帖子图片
type ImageDTO struct {
	ImageURL string `json:"image_url"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// PostCreatedDTO 发帖结果：新帖子 id 与已入库的图片对象名
type PostCreatedDTO struct {
	PostID     uint64   `json:"post_id"`
	ImageNames []string `json:"image_names"`
}

// PostCreateDTO 帖子 - 新增
type PostCreateDTO struct {
	UserID         uint64 `json:"user_id" validate:"required"`
	Content        string `json:"content" validate:"required,min=1,max=1000"`
	ExpiryDuration string `json:"expiry_duration" validate:"required,max=16"`
}

// PostUpdateDTO 帖子 - 修改
type PostUpdateDTO struct {
	PostID         uint64 `json:"post_id" validate:"required"`
	Content        string `json:"content" validate:"required,min=1,max=1000"`
	ExpiryDuration string `json:"expiry_duration" validate:"required,max=16"`
}

// FeedDTO 关注流
type FeedDTO struct {
	List    []*PostDTO `json:"list"`
	HasMore bool       `json:"has_more"`
}
