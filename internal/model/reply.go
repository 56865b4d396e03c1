package model

import (
	"time"
)

// Reply 评论下的回复，MainID 指向根评论，ParentID 为空表示直接回复根评论
type Reply struct {
	ID        uint64    `gorm:"primaryKey"`
	PostID    uint64    `gorm:"not null;index:idx_replies_post_id" json:"postId"`
	MainID    uint64    `gorm:"not null;index:idx_replies_main_id" json:"mainId"`
	ParentID  *uint64   `gorm:"default:null" json:"parentId"`
	UserID    uint64    `gorm:"not null" json:"userId"`
	Content   string    `gorm:"type:varchar(1000);not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

func (Reply) TableName() string {
	return "replies"
}
