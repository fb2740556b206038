package usecase

import (
	"context"
	"fmt"
	"time"

	"food-ordering/internal/data/entity"
	"food-ordering/internal/data/repository"
	"food-ordering/internal/dto/request"
	"food-ordering/internal/dto/response"
	"food-ordering/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (bool, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	VerifyToken(ctx context.Context, token string) *response.UserResponse
	Logout(ctx context.Context) error
}

type authService struct {
	repo    *repository.Repository
	session *Session
	token   utils.TokenConfig
	net     network
	log     *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	session *Session,
	token utils.TokenConfig,
	delay time.Duration,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:    repo,
		session: session,
		token:   token,
		net:     network{delay: delay},
		log:     log.With(zap.String("service", "auth")),
	}
}

// Register returns false when the phone number already belongs to an account.
func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (bool, error) {
	if err := validate(s.log, "Register", req); err != nil {
		return false, err
	}
	if err := s.net.wait(ctx); err != nil {
		return false, err
	}

	existing, err := s.repo.User.FindByPhone(ctx, req.Phone)
	if err != nil {
		return false, fmt.Errorf("check phone: %w", err)
	}
	if existing != nil {
		s.log.Info("Phone already registered", zap.String("phone", req.Phone))
		return false, nil
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return false, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &entity.User{
		Base: entity.Base{
			ID:        utils.GenerateUUIDString(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Password:  hashed,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return false, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID),
		zap.String("phone", user.Phone))
	return true, nil
}

// Login returns nil without an error for an unknown phone or a wrong password.
func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if err := validate(s.log, "Login", req); err != nil {
		return nil, err
	}
	if err := s.net.wait(ctx); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByPhone(ctx, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		s.log.Warn("User not found for login", zap.String("phone", req.Phone))
		return nil, nil
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID))
		return nil, nil
	}

	ttl := time.Duration(s.token.ExpiryHours) * time.Hour
	token, err := utils.GenerateToken(user.ID, user.Phone, s.token.Secret, ttl)
	if err != nil {
		s.log.Error("Failed to generate token", zap.Error(err), zap.String("user_id", user.ID))
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID))
	return &response.AuthResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(ttl).UTC(),
		User:      response.UserToResponse(user),
	}, nil
}

// VerifyToken resolves the user behind token, or nil when the token is malformed,
// tampered with, expired or names a user that no longer exists.
func (s *authService) VerifyToken(ctx context.Context, token string) *response.UserResponse {
	if err := s.net.wait(ctx); err != nil {
		return nil
	}

	claims, err := utils.ParseToken(token, s.token.Secret)
	if err != nil {
		s.log.Debug("Rejected token", zap.Error(err))
		return nil
	}

	user, err := s.repo.User.FindByID(ctx, claims.UserID)
	if err != nil {
		s.log.Error("Failed to resolve token user", zap.Error(err), zap.String("user_id", claims.UserID))
		return nil
	}
	if user == nil {
		return nil
	}

	resp := response.UserToResponse(user)
	return &resp
}

// Logout forgets the persisted session token and stops synchronization.
func (s *authService) Logout(ctx context.Context) error {
	if err := s.session.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info("User logged out")
	return nil
}
