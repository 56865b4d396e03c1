package job

import (
	"Flicker/internal/pkg/consts"
	"Flicker/internal/pkg/logger"
	"Flicker/internal/pkg/redis"
	"Flicker/internal/pkg/util"
	"Flicker/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const countCacheExpiration = 7 * 24 * time.Hour

// CountSyncJob 回源修正计数缓存。
// CDC 消费者对计数键做增减并把目标标记进脏集合，这里定期以数据库为准回刷，消除漂移。
type CountSyncJob struct {
	actionRepo repository.PostActionRepo
}

func NewCountSyncJob(actionRepo repository.PostActionRepo) *CountSyncJob {
	return &CountSyncJob{
		actionRepo: actionRepo,
	}
}

func (s *CountSyncJob) Run() {
	traceID := "job-count-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	s.syncDirtySet(ctx, consts.PostDirtyKey, consts.PostLikeKey, func(id uint64) (int64, error) {
		return s.actionRepo.GetLikeCountByPostID(ctx, id)
	})
	s.syncDirtySet(ctx, consts.CommentDirtyKey, consts.CommentLikeKey, func(id uint64) (int64, error) {
		return s.actionRepo.GetCommentLikeCount(ctx, id)
	})
	s.syncDirtySet(ctx, consts.ReplyDirtyKey, consts.ReplyLikeKey, func(id uint64) (int64, error) {
		return s.actionRepo.GetReplyLikeCount(ctx, id)
	})
}

func (s *CountSyncJob) syncDirtySet(ctx context.Context, dirtyKey, countKeyPrefix string, loadCount func(id uint64) (int64, error)) {
	processingKey := dirtyKey + ":processing"
	if err := redis.Rename(ctx, dirtyKey, processingKey); err != nil {
		return
	}

	tempSet, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get dirty set error", "key", processingKey, "err", err)
		return
	}

	ids, err := util.StrSliceToUInt64Slice(tempSet)
	if err != nil {
		log.ErrorContext(ctx, "convert dirty set error", "key", processingKey, "err", err)
		return
	}

	for _, id := range ids {
		count, err := loadCount(id)
		if err != nil {
			log.ErrorContext(ctx, "load count error", "id", id, "err", err)
			continue
		}
		key := countKeyPrefix + strconv.FormatUint(id, 10)
		if err = redis.SetWithExpiration(ctx, key, count, countCacheExpiration); err != nil {
			log.ErrorContext(ctx, "refresh count cache error", "key", key, "err", err)
		}
	}

	if err = redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete processing set error", "key", processingKey, "err", err)
	}

	if len(ids) > 0 {
		log.InfoContext(ctx, "count cache synced", "dirtyKey", dirtyKey, "count", len(ids))
	}
}
