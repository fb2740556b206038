package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"food-ordering/internal/data/repository"
	"food-ordering/internal/dto/request"
	"food-ordering/internal/dto/response"
	"food-ordering/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) *response.UserResponse
	UpdateProfile(ctx context.Context, userID string, req *request.UpdateProfileRequest) (bool, error)
	UpdatePassword(ctx context.Context, userID string, req *request.UpdatePasswordRequest) (bool, error)
	UpdatePrivacy(ctx context.Context, userID string, req *request.UpdatePrivacyRequest) error
}

type userService struct {
	userRepo repository.UserRepository
	net      network
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, delay time.Duration, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		net:      network{delay: delay},
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID string) *response.UserResponse {
	if err := us.net.wait(ctx); err != nil {
		return nil
	}

	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to get profile", zap.Error(err), zap.String("user_id", userID))
		return nil
	}
	if user == nil {
		return nil
	}

	resp := response.UserToResponse(user)
	return &resp
}

// UpdateProfile merges the non-nil fields of req into the stored user. It
// returns false when the new phone number belongs to another account.
func (us *userService) UpdateProfile(ctx context.Context, userID string, req *request.UpdateProfileRequest) (bool, error) {
	if err := validate(us.log, "Update profile", req); err != nil {
		return false, err
	}
	if err := us.net.wait(ctx); err != nil {
		return false, err
	}

	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, fmt.Errorf("user %s: %w", userID, repository.ErrNotFound)
	}

	if req.Phone != nil && *req.Phone != user.Phone {
		other, err := us.userRepo.FindByPhone(ctx, *req.Phone)
		if err != nil {
			return false, err
		}
		if other != nil && other.ID != user.ID {
			us.log.Info("Phone change rejected, number in use",
				zap.String("user_id", userID),
				zap.String("phone", *req.Phone))
			return false, nil
		}
		user.Phone = *req.Phone
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.ImageURL != nil {
		user.ImageURL = req.ImageURL
	}
	user.UpdatedAt = time.Now().UTC()

	if err := us.userRepo.Update(ctx, user); err != nil {
		return false, err
	}

	us.log.Info("Profile updated", zap.String("user_id", userID))
	return true, nil
}

// UpdatePassword returns false when the current password does not match.
func (us *userService) UpdatePassword(ctx context.Context, userID string, req *request.UpdatePasswordRequest) (bool, error) {
	if err := validate(us.log, "Update password", req); err != nil {
		return false, err
	}
	if err := us.net.wait(ctx); err != nil {
		return false, err
	}

	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, fmt.Errorf("user %s: %w", userID, repository.ErrNotFound)
	}
	if !utils.CheckPassword(user.Password, req.CurrentPassword) {
		us.log.Warn("Wrong current password", zap.String("user_id", userID))
		return false, nil
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		us.log.Error("Failed to hash password", zap.Error(err))
		return false, fmt.Errorf("hash password: %w", err)
	}
	user.Password = hashed
	user.UpdatedAt = time.Now().UTC()

	if err := us.userRepo.Update(ctx, user); err != nil {
		return false, err
	}

	us.log.Info("Password updated", zap.String("user_id", userID))
	return true, nil
}

func (us *userService) UpdatePrivacy(ctx context.Context, userID string, req *request.UpdatePrivacyRequest) error {
	if err := validate(us.log, "Update privacy", req); err != nil {
		return err
	}
	if !json.Valid(req.Settings) {
		return &ValidationError{Fields: map[string]string{"Settings": "Must be valid JSON"}}
	}
	if err := us.net.wait(ctx); err != nil {
		return err
	}

	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %s: %w", userID, repository.ErrNotFound)
	}

	user.PrivacySettings = string(req.Settings)
	user.UpdatedAt = time.Now().UTC()
	return us.userRepo.Update(ctx, user)
}
