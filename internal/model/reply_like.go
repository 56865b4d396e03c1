package model

import (
	"time"
)

type ReplyLike struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	ReplyID   uint64    `gorm:"primaryKey;index:idx_reply_likes_reply_id" json:"replyId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ReplyLike) TableName() string {
	return "reply_likes"
}
