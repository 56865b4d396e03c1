package cron

import (
	"Flicker/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine       *cron.Cron
	postPurgeJob *job.PostPurgeJob
	countSyncJob *job.CountSyncJob
}

func NewCronManager(postPurgeJob *job.PostPurgeJob, countSyncJob *job.CountSyncJob) *Manager {
	return &Manager{
		engine:       cron.New(cron.WithSeconds()),
		postPurgeJob: postPurgeJob,
		countSyncJob: countSyncJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("@every 1m", s.postPurgeJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@every 5m", s.countSyncJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
