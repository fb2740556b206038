package usecase

import (
	"context"
	"errors"
	"time"

	"food-ordering/internal/data/repository"
	"food-ordering/pkg/utils"

	"go.uber.org/zap"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrEmptyCart  = errors.New("cart is empty")
)

// ValidationError carries per-field messages and matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func validate(log *zap.Logger, op string, req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		log.Warn(op+" validation failed", zap.Any("errors", errs))
		return &ValidationError{Fields: errs}
	}
	return nil
}

// network stands in for the round trip to the remote API.
type network struct {
	delay time.Duration
}

func (n network) wait(ctx context.Context) error {
	if n.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(n.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Service is the single entry point used by handlers and commands. Read
// operations log failures and degrade to empty or nil results; write
// operations return their errors.
type Service struct {
	Auth     AuthService
	User     UserService
	Dish     DishService
	Cart     CartService
	Order    OrderService
	Favorite FavoriteService
	Session  *Session
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	delay := config.Remote.NetworkDelay
	session := NewSession(repo.Preference, config.Remote, log)

	return &Service{
		Auth:     NewAuthService(repo, session, config.Token, delay, log),
		User:     NewUserService(repo.User, delay, log),
		Dish:     NewDishService(repo, delay, log),
		Cart:     NewCartService(repo.Cart, delay, log),
		Order:    NewOrderService(repo, delay, log),
		Favorite: NewFavoriteService(repo.Favorite, delay, log),
		Session:  session,
	}
}
