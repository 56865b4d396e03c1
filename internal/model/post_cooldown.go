package model

import "time"

// PostCooldown 每个用户一行，记录下一次允许发帖的时间
type PostCooldown struct {
	UserID        uint64    `gorm:"primaryKey" json:"user_id"`
	NextAllowedAt time.Time `gorm:"not null" json:"next_allowed_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (PostCooldown) TableName() string {
	return "post_cooldowns"
}
