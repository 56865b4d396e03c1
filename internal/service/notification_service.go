package service

import (
	"Flicker/internal/api/dto"
	"Flicker/internal/pkg/mongo"
	"context"
	"errors"
	"time"

	"github.com/jinzhu/copier"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

type NotificationService interface {
	Dispatch(ctx context.Context, typ int8, senderID, receiverID, postID uint64, message string) error
	GetNotificationList(ctx context.Context, userID uint64, page, pageSize int) (*dto.NotificationListDTO, error)
	GetUnreadCount(ctx context.Context, userID uint64) (int64, error)
	MarkRead(ctx context.Context, userID uint64, msgID string) error
	MarkAllRead(ctx context.Context, userID uint64) error
}

type notificationServiceImpl struct {
	notificationRepo mongo.NotificationRepo
}

func NewNotificationService(notificationRepo mongo.NotificationRepo) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
	}
}

// Dispatch 投递一条通知，自己触发的动作不通知自己
func (s *notificationServiceImpl) Dispatch(ctx context.Context, typ int8, senderID, receiverID, postID uint64, message string) error {
	if senderID == receiverID {
		return nil
	}
	return s.notificationRepo.CreateNotification(ctx, &mongo.NotificationModel{
		ReceiverID:    receiverID,
		SenderID:      senderID,
		Type:          typ,
		RelatedPostID: postID,
		Message:       message,
		IsRead:        false,
		CreatedAt:     time.Now(),
	})
}

// GetNotificationList 按时间倒序分页获取通知
func (s *notificationServiceImpl) GetNotificationList(ctx context.Context, userID uint64, page, pageSize int) (*dto.NotificationListDTO, error) {
	limit := int64(pageSize + 1)
	offset := int64((page - 1) * pageSize)

	list, err := s.notificationRepo.GetNotificationList(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	hasMore := len(list) > pageSize
	if hasMore {
		list = list[:pageSize]
	}

	res := make([]*dto.NotificationDTO, 0, len(list))
	for _, m := range list {
		d := &dto.NotificationDTO{}
		_ = copier.Copy(d, m)
		d.ID = m.ID.Hex()
		d.CreatedAt = m.CreatedAt.UTC().Format(time.RFC3339)
		res = append(res, d)
	}

	return &dto.NotificationListDTO{List: res, HasMore: hasMore}, nil
}

func (s *notificationServiceImpl) GetUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	return s.notificationRepo.GetUnreadCount(ctx, userID)
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID uint64, msgID string) error {
	err := s.notificationRepo.MarkAsRead(ctx, userID, msgID)
	if err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) || errors.Is(err, mongoDB.ErrInvalidIndexValue) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID uint64) error {
	return s.notificationRepo.MarkAllAsRead(ctx, userID)
}
