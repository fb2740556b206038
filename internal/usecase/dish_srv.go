package usecase

import (
	"context"
	"strings"
	"time"

	"food-ordering/internal/data/entity"
	"food-ordering/internal/data/repository"
	"food-ordering/internal/dto/response"

	"go.uber.org/zap"
)

type DishService interface {
	List(ctx context.Context) []response.DishResponse
	Get(ctx context.Context, id string) *response.DishResponse
	Search(ctx context.Context, query string) []response.DishResponse
	Seed(ctx context.Context, dishes []*entity.Dish) error
}

type dishService struct {
	repo *repository.Repository
	net  network
	log  *zap.Logger
}

func NewDishService(repo *repository.Repository, delay time.Duration, log *zap.Logger) DishService {
	return &dishService{
		repo: repo,
		net:  network{delay: delay},
		log:  log.With(zap.String("service", "dish")),
	}
}

func (s *dishService) all(ctx context.Context) []*entity.Dish {
	if err := s.net.wait(ctx); err != nil {
		return nil
	}
	dishes, err := s.repo.Dish.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list dishes", zap.Error(err))
		return nil
	}
	return dishes
}

func (s *dishService) List(ctx context.Context) []response.DishResponse {
	return response.DishesToResponse(s.all(ctx))
}

func (s *dishService) Get(ctx context.Context, id string) *response.DishResponse {
	if err := s.net.wait(ctx); err != nil {
		return nil
	}

	dish, err := s.repo.Dish.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get dish", zap.Error(err), zap.String("dish_id", id))
		return nil
	}
	if dish == nil {
		return nil
	}

	resp := response.DishToResponse(dish)
	return &resp
}

// Search matches query case-insensitively against name, description and
// ingredients. A blank query returns the whole catalog.
func (s *dishService) Search(ctx context.Context, query string) []response.DishResponse {
	dishes := s.all(ctx)
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return response.DishesToResponse(dishes)
	}

	matches := make([]*entity.Dish, 0, len(dishes))
	for _, dish := range dishes {
		if strings.Contains(strings.ToLower(dish.Name), q) ||
			strings.Contains(strings.ToLower(dish.Description), q) ||
			strings.Contains(strings.ToLower(dish.Ingredients), q) {
			matches = append(matches, dish)
		}
	}
	return response.DishesToResponse(matches)
}

// Seed replaces the catalog in one transaction.
func (s *dishService) Seed(ctx context.Context, dishes []*entity.Dish) error {
	if err := s.net.wait(ctx); err != nil {
		return err
	}

	err := s.repo.Atomic(ctx, func(tx *repository.Repository) error {
		return tx.Dish.ReplaceAll(ctx, dishes)
	})
	if err != nil {
		s.log.Error("Failed to seed dishes", zap.Error(err))
		return err
	}

	s.log.Info("Catalog seeded", zap.Int("dishes", len(dishes)))
	return nil
}
