package usecase

import (
	"context"
	"time"

	"food-ordering/internal/data/repository"
	"food-ordering/internal/dto/response"

	"go.uber.org/zap"
)

type FavoriteService interface {
	Add(ctx context.Context, userID, dishID string) (bool, error)
	Remove(ctx context.Context, userID, dishID string) (bool, error)
	Toggle(ctx context.Context, userID, dishID string) (bool, error)
	List(ctx context.Context, userID string) []response.DishResponse
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	net          network
	log          *zap.Logger
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, delay time.Duration, log *zap.Logger) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		net:          network{delay: delay},
		log:          log.With(zap.String("service", "favorite")),
	}
}

func (s *favoriteService) Add(ctx context.Context, userID, dishID string) (bool, error) {
	if err := s.net.wait(ctx); err != nil {
		return false, err
	}
	return s.favoriteRepo.Add(ctx, userID, dishID)
}

func (s *favoriteService) Remove(ctx context.Context, userID, dishID string) (bool, error) {
	if err := s.net.wait(ctx); err != nil {
		return false, err
	}
	return s.favoriteRepo.Remove(ctx, userID, dishID)
}

// Toggle flips the favorite state of the pair and returns the new state.
func (s *favoriteService) Toggle(ctx context.Context, userID, dishID string) (bool, error) {
	if err := s.net.wait(ctx); err != nil {
		return false, err
	}

	exists, err := s.favoriteRepo.Exists(ctx, userID, dishID)
	if err != nil {
		return false, err
	}
	if exists {
		_, err := s.favoriteRepo.Remove(ctx, userID, dishID)
		return false, err
	}
	if _, err := s.favoriteRepo.Add(ctx, userID, dishID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *favoriteService) List(ctx context.Context, userID string) []response.DishResponse {
	if err := s.net.wait(ctx); err != nil {
		return []response.DishResponse{}
	}

	dishes, err := s.favoriteRepo.FindDishes(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list favorites", zap.Error(err), zap.String("user_id", userID))
		return []response.DishResponse{}
	}
	return response.DishesToResponse(dishes)
}
