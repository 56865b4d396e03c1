package model

import "time"

// User 用户目录（注册、登录、资料编辑由外部服务负责，这里只读）
type User struct {
	ID        uint64    `gorm:"primaryKey"`
	Username  string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"username"`
	FirstName string    `gorm:"type:varchar(64)" json:"first_name"`
	LastName  string    `gorm:"type:varchar(64)" json:"last_name"`
	AvatarURL string    `gorm:"type:varchar(512)" json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
