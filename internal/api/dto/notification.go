package dto

// NotificationDTO 站内通知
type NotificationDTO struct {
	ID            string `json:"id"`
	SenderID      uint64 `json:"sender_id"`
	Type          int8   `json:"type"`
	RelatedPostID uint64 `json:"related_post_id"`
	Message       string `json:"message"`
	IsRead        bool   `json:"is_read"`
	CreatedAt     string `json:"created_at"`
}

// NotificationListDTO 通知列表
type NotificationListDTO struct {
	List    []*NotificationDTO `json:"list"`
	HasMore bool               `json:"has_more"`
}

// NotificationReadDTO 标记单条通知已读
type NotificationReadDTO struct {
	NotificationID string `json:"notification_id" validate:"required"`
}
