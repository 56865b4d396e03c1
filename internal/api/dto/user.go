package dto

// UserDTO 用户目录条目
type UserDTO struct {
	ID        uint64 `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"profile_image"`
}

// UserSearchDTO 用户搜索
type UserSearchDTO struct {
	SearchQuery string `json:"search_query" validate:"required,min=1,max=64"`
}
