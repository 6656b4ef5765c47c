package service

import (
	"context"

	"github.com/Skotchmaster/shop_schema/internal/models"
	"github.com/Skotchmaster/shop_schema/internal/transport"
)

func (s *ShopService) CreateUser(ctx context.Context, req transport.CreateUserRequest) (*models.User, error) {
	user, err := models.NewUser(req.Username, req.Email)
	if err != nil {
		return nil, validation(err)
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, mapRepoError(err)
	}

	s.publish(ctx, TopicUser, user.ID, "user_created", map[string]any{"userID": user.ID, "username": user.Username})
	return user, nil
}

func (s *ShopService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Repo.GetUser(ctx, id)
	return user, mapRepoError(err)
}

// PatchUser assigns each provided field through its validating setter; a
// rejected value leaves the stored user untouched.
func (s *ShopService) PatchUser(ctx context.Context, id uint, req transport.PatchUserRequest) (*models.User, error) {
	user, err := s.Repo.GetUser(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if req.Username != nil {
		if err := user.SetUsername(*req.Username); err != nil {
			return nil, validation(err)
		}
	}
	if req.Email != nil {
		if err := user.SetEmail(*req.Email); err != nil {
			return nil, validation(err)
		}
	}

	if err := s.Repo.UpdateUser(ctx, user); err != nil {
		return nil, mapRepoError(err)
	}

	s.publish(ctx, TopicUser, user.ID, "user_updated", map[string]any{"userID": user.ID, "username": user.Username})
	return user, nil
}

func (s *ShopService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteUser(ctx, id); err != nil {
		return mapRepoError(err)
	}
	s.publish(ctx, TopicUser, id, "user_deleted", map[string]any{"userID": id})
	return nil
}
