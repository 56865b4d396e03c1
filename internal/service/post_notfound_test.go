package service

import (
	"Flicker/internal/model"
	"Flicker/internal/repository"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 真实仓储 + 内存库，保证缺失帖子走到 ErrPostNotFound 而不是泄漏驱动错误
func newLookupFixture(t *testing.T) (FeedService, PostActionService) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.UserFollow{},
		&model.Post{},
		&model.PostImage{},
		&model.Like{},
		&model.Comment{},
		&model.CommentLike{},
		&model.Reply{},
		&model.ReplyLike{},
	))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewUserFollowRepo(db)
	actionRepo := repository.NewPostActionRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	notification := &fakeNotificationService{}

	feedSvc := NewFeedService(postRepo, followRepo, actionRepo, commentRepo)
	actionSvc := NewPostActionService(actionRepo, postRepo, commentRepo, notification)
	return feedSvc, actionSvc
}

func TestGetPost_MissingPostNotFound(t *testing.T) {
	feedSvc, _ := newLookupFixture(t)

	_, err := feedSvc.GetPost(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestLikePost_MissingPostNotFound(t *testing.T) {
	_, actionSvc := newLookupFixture(t)

	err := actionSvc.LikePost(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrPostNotFound)
}
