package kafka

import (
	"Flicker/internal/pkg/consts"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ReplyLikesHandler 消费 reply_likes 表的 Canal 变更
type ReplyLikesHandler struct {
}

func NewReplyLikesHandler() *ReplyLikesHandler {
	return &ReplyLikesHandler{}
}

func (s *ReplyLikesHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("reply like consumer setup")
	return nil
}

func (s *ReplyLikesHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("reply like consumer cleanup")
	return nil
}

func (s *ReplyLikesHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-reply-like consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-reply-like process batch error", "err", err)
		return err
	}
	return nil
}

func (s *ReplyLikesHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "reply_likes")
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

func (s *ReplyLikesHandler) handleChange(ctx context.Context, msg *CanalMessage, isIncrement bool) error {
	if len(msg.Data) == 0 {
		return nil
	}
	replyID := StrToUint64(msg.Data[0]["reply_id"])

	ExecAction(ctx, ActionParams{
		TargetID:       replyID,
		CountKeyPrefix: consts.ReplyLikeKey,
		DirtyKey:       consts.ReplyDirtyKey,
		IsIncrement:    isIncrement,
	})

	log.InfoContext(ctx, "reply like change processed", "replyID", replyID, "increment", isIncrement)
	return nil
}
