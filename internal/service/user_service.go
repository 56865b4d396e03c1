package service

import (
	"Flicker/internal/api/dto"
	"Flicker/internal/pkg/minio"
	"Flicker/internal/pkg/util"
	"Flicker/internal/repository"
	"context"
)

const userSearchLimit = 10

type UserService interface {
	SearchUsers(ctx context.Context, req *dto.UserSearchDTO) ([]*dto.UserDTO, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

// SearchUsers 用户名模糊搜索，最多返回 10 条
func (s *userServiceImpl) SearchUsers(ctx context.Context, req *dto.UserSearchDTO) ([]*dto.UserDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, ErrMissingFields
	}

	users, err := s.userRepo.SearchUsers(ctx, req.SearchQuery, userSearchLimit)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.UserDTO, 0, len(users))
	for _, user := range users {
		res = append(res, &dto.UserDTO{
			ID:        user.ID,
			Username:  user.Username,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			AvatarURL: minio.GetPublicURL(user.AvatarURL),
		})
	}
	return res, nil
}
