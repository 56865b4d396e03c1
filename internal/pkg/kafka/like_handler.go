package kafka

import (
	"Flicker/internal/pkg/consts"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// LikesHandler 消费 likes 表的 Canal 变更，保持帖子点赞计数缓存同步。
// 通知在业务路径内联发出，这里只负责计数。
type LikesHandler struct {
}

func NewLikesHandler() *LikesHandler {
	return &LikesHandler{}
}

func (s *LikesHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("post like consumer setup")
	return nil
}

func (s *LikesHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("post like consumer cleanup")
	return nil
}

func (s *LikesHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-like consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-like process batch error", "err", err)
		return err
	}
	return nil
}

func (s *LikesHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "likes")
	if err != nil {
		return err
	}

	switch canalMsg.Type {
	case INSERT:
		return s.handleChange(ctx, canalMsg, true)
	case DELETE:
		return s.handleChange(ctx, canalMsg, false)
	default:
		return nil
	}
}

func (s *LikesHandler) handleChange(ctx context.Context, msg *CanalMessage, isIncrement bool) error {
	if len(msg.Data) == 0 {
		return nil
	}
	postID := StrToUint64(msg.Data[0]["post_id"])

	ExecAction(ctx, ActionParams{
		TargetID:       postID,
		CountKeyPrefix: consts.PostLikeKey,
		DirtyKey:       consts.PostDirtyKey,
		IsIncrement:    isIncrement,
	})

	log.InfoContext(ctx, "post like change processed", "postID", postID, "increment", isIncrement)
	return nil
}
