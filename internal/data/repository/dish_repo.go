package repository

import (
	"context"
	"fmt"

	"food-ordering/internal/data/entity"
	"food-ordering/internal/data/store"

	"go.uber.org/zap"
)

type DishRepository interface {
	FindAll(ctx context.Context) ([]*entity.Dish, error)
	FindByID(ctx context.Context, id string) (*entity.Dish, error)
	ReplaceAll(ctx context.Context, dishes []*entity.Dish) error
}

type dishRepository struct {
	db  store.Ops
	log *zap.Logger
}

func NewDishRepository(db store.Ops, log *zap.Logger) DishRepository {
	return &dishRepository{
		db:  db,
		log: log.With(zap.String("repository", "dish")),
	}
}

func (r *dishRepository) FindAll(ctx context.Context) ([]*entity.Dish, error) {
	dishes, err := collect[entity.Dish](r.db.Scan(ctx, store.CollectionDishes))
	if err != nil {
		r.log.Error("Failed to find all dishes", zap.Error(err))
		return nil, fmt.Errorf("find all dishes: %w", err)
	}
	return dishes, nil
}

func (r *dishRepository) FindByID(ctx context.Context, id string) (*entity.Dish, error) {
	dish, err := get[entity.Dish](ctx, r.db, store.CollectionDishes, id)
	if err != nil {
		r.log.Error("Failed to find dish by ID",
			zap.Error(err),
			zap.String("dish_id", id),
		)
		return nil, fmt.Errorf("find dish by ID %s: %w", id, err)
	}
	return dish, nil
}

// ReplaceAll clears the catalog and writes dishes. Run it inside
// Repository.Atomic so readers never observe an empty catalog.
func (r *dishRepository) ReplaceAll(ctx context.Context, dishes []*entity.Dish) error {
	if err := r.db.Clear(ctx, store.CollectionDishes); err != nil {
		r.log.Error("Failed to clear dishes", zap.Error(err))
		return fmt.Errorf("clear dishes: %w", err)
	}

	for _, dish := range dishes {
		if _, err := put(ctx, r.db, store.CollectionDishes, dish.ID, dish); err != nil {
			r.log.Error("Failed to put dish",
				zap.Error(err),
				zap.String("dish_id", dish.ID),
			)
			return fmt.Errorf("put dish %s: %w", dish.ID, err)
		}
	}
	return nil
}
