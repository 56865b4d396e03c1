package kafka

import (
	"Flicker/internal/pkg/consts"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// CommentLikesHandler 消费 comment_likes 表的 Canal 变更
type CommentLikesHandler struct {
}

func NewCommentLikesHandler() *CommentLikesHandler {
	return &CommentLikesHandler{}
}

func (s *CommentLikesHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("comment like consumer setup")
	return nil
}

func (s *CommentLikesHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("comment like consumer cleanup")
	return nil
}

func (s *CommentLikesHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-comment-like consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-comment-like process batch error", "err", err)
		return err
	}
	return nil
}

func (s *CommentLikesHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "comment_likes")
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

func (s *CommentLikesHandler) handleChange(ctx context.Context, msg *CanalMessage, isIncrement bool) error {
	if len(msg.Data) == 0 {
		return nil
	}
	commentID := StrToUint64(msg.Data[0]["comment_id"])

	ExecAction(ctx, ActionParams{
		TargetID:       commentID,
		CountKeyPrefix: consts.CommentLikeKey,
		DirtyKey:       consts.CommentDirtyKey,
		IsIncrement:    isIncrement,
	})

	log.InfoContext(ctx, "comment like change processed", "commentID", commentID, "increment", isIncrement)
	return nil
}
