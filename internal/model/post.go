package model

import (
	"time"
)

type Post struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"not null;index:idx_posts_user_id" json:"user_id"`
	Content   string    `gorm:"not null" json:"content"`
	ExpiresAt time.Time `gorm:"not null;index:idx_posts_expires_at" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联关系
	User   User        `gorm:"foreignKey:UserID;references:ID"`
	Images []PostImage `gorm:"foreignKey:PostID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}
