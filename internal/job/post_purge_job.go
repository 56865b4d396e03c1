package job

import (
	"Flicker/internal/pkg/consts"
	"Flicker/internal/pkg/logger"
	"Flicker/internal/pkg/redis"
	"Flicker/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// PostPurgeJob 周期清理过期帖子，多实例部署时通过分布式锁保证单实例执行
type PostPurgeJob struct {
	postSvc service.PostService
}

func NewPostPurgeJob(postSvc service.PostService) *PostPurgeJob {
	return &PostPurgeJob{
		postSvc: postSvc,
	}
}

func (s *PostPurgeJob) Run() {
	traceID := "job-purge-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	lockUUID := uuid.NewString()
	ok, err := redis.TryLock(ctx, consts.PurgeLock, lockUUID, 50*time.Second, 0)
	if err != nil || !ok {
		return
	}
	defer redis.UnLock(ctx, consts.PurgeLock, lockUUID)

	purged, err := s.postSvc.PurgeExpired(ctx)
	if err != nil {
		log.ErrorContext(ctx, "expired post purge failed", "err", err)
		return
	}
	if purged > 0 {
		log.InfoContext(ctx, "expired posts purged", "count", purged)
	}
}
