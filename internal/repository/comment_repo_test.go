package repository

import (
	"Flicker/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepo_FetchOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepo(db)
	seedUser(t, db, 1, "ana")

	now := time.Now()
	first := &model.Comment{PostID: 9, UserID: 1, Content: "first", CreatedAt: now.Add(-2 * time.Hour)}
	second := &model.Comment{PostID: 9, UserID: 1, Content: "second", CreatedAt: now.Add(-time.Hour)}
	require.NoError(t, repo.CreateComment(context.Background(), first))
	require.NoError(t, repo.CreateComment(context.Background(), second))

	early := &model.Reply{PostID: 9, MainID: first.ID, UserID: 1, Content: "early", CreatedAt: now.Add(-time.Hour)}
	require.NoError(t, repo.CreateReply(context.Background(), early))
	late := &model.Reply{PostID: 9, MainID: first.ID, ParentID: &early.ID, UserID: 1, Content: "late", CreatedAt: now}
	require.NoError(t, repo.CreateReply(context.Background(), late))

	comments, err := repo.GetCommentsByPostID(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Content)
	assert.Equal(t, "ana", comments[0].User.Username)

	replies, err := repo.GetRepliesByPostID(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, "early", replies[0].Content)
	require.NotNil(t, replies[1].ParentID)
	assert.Equal(t, early.ID, *replies[1].ParentID)
}

func TestCommentRepo_DeleteCommentCascadesReplies(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepo(db)
	seedUser(t, db, 1, "ana")

	comment := &model.Comment{PostID: 9, UserID: 1, Content: "root"}
	require.NoError(t, repo.CreateComment(context.Background(), comment))
	other := &model.Comment{PostID: 9, UserID: 1, Content: "keep"}
	require.NoError(t, repo.CreateComment(context.Background(), other))

	require.NoError(t, repo.CreateReply(context.Background(), &model.Reply{PostID: 9, MainID: comment.ID, UserID: 1, Content: "r1"}))
	require.NoError(t, repo.CreateReply(context.Background(), &model.Reply{PostID: 9, MainID: comment.ID, UserID: 1, Content: "r2"}))
	require.NoError(t, repo.CreateReply(context.Background(), &model.Reply{PostID: 9, MainID: other.ID, UserID: 1, Content: "survivor"}))

	require.NoError(t, repo.DeleteComment(context.Background(), comment.ID))

	got, err := repo.GetCommentByID(context.Background(), comment.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	replies, err := repo.GetRepliesByPostID(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "survivor", replies[0].Content)
}

func TestCommentRepo_Counts(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepo(db)
	seedUser(t, db, 1, "ana")

	comment := &model.Comment{PostID: 9, UserID: 1, Content: "c"}
	require.NoError(t, repo.CreateComment(context.Background(), comment))
	require.NoError(t, repo.CreateReply(context.Background(), &model.Reply{PostID: 9, MainID: comment.ID, UserID: 1, Content: "r"}))
	require.NoError(t, repo.CreateReply(context.Background(), &model.Reply{PostID: 9, MainID: comment.ID, UserID: 1, Content: "r2"}))

	comments, err := repo.GetCommentCountByPostID(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, int64(1), comments)

	replies, err := repo.GetReplyCountByPostID(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, int64(2), replies)
}

func TestCommentRepo_GetMissingReturnsNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepo(db)

	comment, err := repo.GetCommentByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, comment)

	reply, err := repo.GetReplyByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, reply)
}
