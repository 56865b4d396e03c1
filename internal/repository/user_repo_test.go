package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_SearchUsers(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)

	seedUser(t, db, 1, "anabelle")
	seedUser(t, db, 2, "banana")
	seedUser(t, db, 3, "carol")

	users, err := repo.SearchUsers(context.Background(), "ana", 10)
	require.NoError(t, err)
	require.Len(t, users, 2)

	users, err = repo.SearchUsers(context.Background(), "zzz", 10)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserRepo_SearchUsersHonorsLimit(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)

	for i := 1; i <= 15; i++ {
		seedUser(t, db, uint64(i), fmt.Sprintf("ana_%02d", i))
	}

	users, err := repo.SearchUsers(context.Background(), "ana", 10)
	require.NoError(t, err)
	assert.Len(t, users, 10)
}

func TestUserRepo_GetUserByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	seedUser(t, db, 1, "ana")

	user, err := repo.GetUserByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "ana", user.Username)

	user, err = repo.GetUserByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, user)
}
