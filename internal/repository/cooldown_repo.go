package repository

import (
	"Flicker/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CooldownRepo interface {
	GetCooldown(ctx context.Context, userID uint64) (*model.PostCooldown, error)
	UpsertCooldown(ctx context.Context, cooldown *model.PostCooldown) error
}

type CooldownRepoImpl struct {
	db *gorm.DB
}

func NewCooldownRepo(db *gorm.DB) CooldownRepo {
	return &CooldownRepoImpl{db: db}
}

func (s *CooldownRepoImpl) GetCooldown(ctx context.Context, userID uint64) (*model.PostCooldown, error) {
	var cooldown model.PostCooldown
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cooldown)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &cooldown, nil
}

// UpsertCooldown 单条 insert-or-update，避免同一用户并发发帖时丢失更新
func (s *CooldownRepoImpl) UpsertCooldown(ctx context.Context, cooldown *model.PostCooldown) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"next_allowed_at", "updated_at"}),
		}).
		Create(cooldown).Error
}
