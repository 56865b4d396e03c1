package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationModel 通知模型
type NotificationModel struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReceiverID    uint64             `bson:"receiver_id" json:"receiverId"`          // 通知接收者ID
	SenderID      uint64             `bson:"sender_id" json:"senderId"`              // 动作发起者ID
	Type          int8               `bson:"type" json:"type"`                       // 通知类型: 1-点赞, 2-评论
	RelatedPostID uint64             `bson:"related_post_id" json:"relatedPostId"`   // 关联的帖子ID
	Message       string             `bson:"message" json:"message"`                 // 通知文案
	IsRead        bool               `bson:"is_read" json:"isRead"`                  // 是否已读
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`            // 创建时间
}
