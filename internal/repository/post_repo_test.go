package repository

import (
	"Flicker/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepo_CreatePostWithImages(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	seedUser(t, db, 1, "ana")

	post := &model.Post{
		UserID:    1,
		Content:   "hello",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	images := []*model.PostImage{
		{ImageURL: "posts/a.png", Width: 100, Height: 50},
		{ImageURL: "posts/b.png", Width: 30, Height: 30},
	}
	require.NoError(t, repo.CreatePost(context.Background(), post, images))
	require.NotZero(t, post.ID)

	got, err := repo.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Content)
	assert.Equal(t, "ana", got.User.Username)
	require.Len(t, got.Images, 2)
	assert.Equal(t, post.ID, got.Images[0].PostID)
}

func TestPostRepo_GetPostMissingReturnsNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	got, err := repo.GetPost(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPostRepo_GetPostNilAfterPurge(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	seedUser(t, db, 1, "ana")

	post := &model.Post{UserID: 1, Content: "gone", ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, repo.CreatePost(context.Background(), post, nil))

	_, err := repo.DeleteExpired(context.Background(), time.Now())
	require.NoError(t, err)

	got, err := repo.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPostRepo_GetFeedPostsFiltersAndOrders(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	seedUser(t, db, 1, "ana")
	seedUser(t, db, 2, "bob")
	seedUser(t, db, 3, "eve")

	now := time.Now()
	rows := []*model.Post{
		{UserID: 1, Content: "old", ExpiresAt: now.Add(time.Hour), CreatedAt: now.Add(-3 * time.Hour)},
		{UserID: 2, Content: "new", ExpiresAt: now.Add(time.Hour), CreatedAt: now.Add(-time.Hour)},
		{UserID: 2, Content: "expired", ExpiresAt: now.Add(-time.Minute), CreatedAt: now.Add(-2 * time.Hour)},
		{UserID: 3, Content: "stranger", ExpiresAt: now.Add(time.Hour), CreatedAt: now},
	}
	for _, p := range rows {
		require.NoError(t, db.Create(p).Error)
	}

	posts, err := repo.GetFeedPosts(context.Background(), []uint64{1, 2}, now, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "new", posts[0].Content)
	assert.Equal(t, "old", posts[1].Content)
}

func TestPostRepo_DeletePostRemovesImages(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	seedUser(t, db, 1, "ana")

	post := &model.Post{UserID: 1, Content: "x", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.CreatePost(context.Background(), post, []*model.PostImage{{ImageURL: "posts/a.png"}}))

	require.NoError(t, repo.DeletePost(context.Background(), post.ID))

	var imageCount int64
	require.NoError(t, db.Model(&model.PostImage{}).Where("post_id = ?", post.ID).Count(&imageCount).Error)
	assert.Zero(t, imageCount)
}

func TestPostRepo_DeleteExpired(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	seedUser(t, db, 1, "ana")

	now := time.Now()
	expired := &model.Post{UserID: 1, Content: "gone", ExpiresAt: now.Add(-time.Minute)}
	require.NoError(t, repo.CreatePost(context.Background(), expired, []*model.PostImage{{ImageURL: "posts/gone.png"}}))
	alive := &model.Post{UserID: 1, Content: "alive", ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, repo.CreatePost(context.Background(), alive, nil))

	purged, err := repo.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	var postCount, imageCount int64
	require.NoError(t, db.Model(&model.Post{}).Count(&postCount).Error)
	require.NoError(t, db.Model(&model.PostImage{}).Count(&imageCount).Error)
	assert.Equal(t, int64(1), postCount)
	assert.Zero(t, imageCount)

	// 没有到期帖子时幂等
	purged, err = repo.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, purged)
}

func TestPostRepo_UpdatePost(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	seedUser(t, db, 1, "ana")

	post := &model.Post{UserID: 1, Content: "before", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.CreatePost(context.Background(), post, nil))

	newExpiry := time.Now().Add(2 * time.Hour)
	require.NoError(t, repo.UpdatePost(context.Background(), post.ID, "after", newExpiry))

	got, err := repo.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Content)
	assert.WithinDuration(t, newExpiry, got.ExpiresAt, time.Second)
}
