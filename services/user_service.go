package services

import (
	"context"

	"blog-api/models"
	"blog-api/repositories"
)

type UserService interface {
	GetMe(ctx context.Context, user *models.User) (*models.User, error)
	UpdateMe(ctx context.Context, req models.UpdateUserRequest, user *models.User) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetMe(ctx context.Context, user *models.User) (*models.User, error) {
	fresh, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.NotFoundf("User not found")
		}
		return nil, internal(ctx, "load user failed", err, "user_id", user.ID)
	}
	return fresh.Sanitize(), nil
}

func (s *userService) UpdateMe(ctx context.Context, req models.UpdateUserRequest, user *models.User) (*models.User, error) {
	fields := map[string]any{}
	if req.Email != nil {
		fields["email"] = normalizeEmail(*req.Email)
	}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}

	if err := s.userRepo.Update(ctx, user.ID, fields); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, models.ErrorConflict{Message: MsgEmailTaken}
		}
		return nil, internal(ctx, "update user failed", err, "user_id", user.ID)
	}

	return s.GetMe(ctx, user)
}
