package service

import (
	"Flicker/internal/api/dto"
	"Flicker/internal/model"
	"Flicker/internal/repository"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users []*model.User
}

var _ repository.UserRepo = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) GetUserByID(_ context.Context, id uint64) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByIDs(_ context.Context, ids []uint64) ([]*model.User, error) {
	var out []*model.User
	for _, u := range f.users {
		for _, id := range ids {
			if u.ID == id {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) SearchUsers(_ context.Context, keyword string, limit int) ([]*model.User, error) {
	var out []*model.User
	for _, u := range f.users {
		if strings.Contains(u.Username, keyword) {
			out = append(out, u)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func TestSearchUsers(t *testing.T) {
	repo := &fakeUserRepo{users: []*model.User{
		{ID: 1, Username: "anabelle", FirstName: "Ana", LastName: "Belle"},
		{ID: 2, Username: "banana"},
		{ID: 3, Username: "carol"},
	}}
	svc := NewUserService(repo)

	users, err := svc.SearchUsers(context.Background(), &dto.UserSearchDTO{SearchQuery: "ana"})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, uint64(1), users[0].ID)
	assert.Equal(t, "Ana", users[0].FirstName)
}

func TestSearchUsers_MissingQuery(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{})

	_, err := svc.SearchUsers(context.Background(), &dto.UserSearchDTO{})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestSearchUsers_NoMatches(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{users: []*model.User{{ID: 1, Username: "ana"}}})

	users, err := svc.SearchUsers(context.Background(), &dto.UserSearchDTO{SearchQuery: "zzz"})
	require.NoError(t, err)
	assert.Empty(t, users)
}
