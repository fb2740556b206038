package usecase

import (
	"context"
	"fmt"

	"food-ordering/internal/data/seed"
	"food-ordering/internal/dto/request"
)

// Seed replaces the dish catalog and registers the sample accounts whose phone
// numbers are still free. Running it twice leaves one account per phone.
func (s *Service) Seed(ctx context.Context, cat *seed.Catalog) error {
	if err := s.Dish.Seed(ctx, cat.EntityDishes()); err != nil {
		return fmt.Errorf("seed dishes: %w", err)
	}

	for _, u := range cat.Users {
		_, err := s.Auth.Register(ctx, &request.RegisterRequest{
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Phone:     u.Phone,
			Password:  u.Password,
		})
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.Phone, err)
		}
	}
	return nil
}
