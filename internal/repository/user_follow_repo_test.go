package repository

import (
	"Flicker/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserFollowRepo_GetFollowingIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserFollowRepo(db)

	require.NoError(t, db.Create(&model.UserFollow{FollowerID: 1, FollowingID: 2}).Error)
	require.NoError(t, db.Create(&model.UserFollow{FollowerID: 1, FollowingID: 3}).Error)
	require.NoError(t, db.Create(&model.UserFollow{FollowerID: 2, FollowingID: 1}).Error)

	ids, err := repo.GetFollowingIDs(context.Background(), 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{2, 3}, ids)

	ids, err = repo.GetFollowingIDs(context.Background(), 9)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestUserFollowRepo_CheckFollowExists(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserFollowRepo(db)

	require.NoError(t, db.Create(&model.UserFollow{FollowerID: 1, FollowingID: 2}).Error)

	ok, err := repo.CheckFollowExists(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.CheckFollowExists(context.Background(), 2, 3)
	require.NoError(t, err)
	assert.False(t, ok)
}
