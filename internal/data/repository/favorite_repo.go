package repository

import (
	"context"
	"errors"
	"fmt"

	"food-ordering/internal/data/entity"
	"food-ordering/internal/data/store"

	"go.uber.org/zap"
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID, dishID string) (bool, error)
	Remove(ctx context.Context, userID, dishID string) (bool, error)
	Exists(ctx context.Context, userID, dishID string) (bool, error)
	FindDishes(ctx context.Context, userID string) ([]*entity.Dish, error)
}

type favoriteRepository struct {
	db  store.Ops
	log *zap.Logger
}

func NewFavoriteRepository(db store.Ops, log *zap.Logger) FavoriteRepository {
	return &favoriteRepository{
		db:  db,
		log: log.With(zap.String("repository", "favorite")),
	}
}

func (r *favoriteRepository) find(ctx context.Context, userID, dishID string) (*entity.Favorite, error) {
	for rec, err := range r.db.ScanByIndex(ctx, store.CollectionFavorites, store.IndexUserDish, userID, dishID) {
		if err != nil {
			r.log.Error("Failed to look up favorite",
				zap.Error(err),
				zap.String("user_id", userID),
				zap.String("dish_id", dishID),
			)
			return nil, fmt.Errorf("find favorite %s/%s: %w", userID, dishID, err)
		}
		return decode[entity.Favorite](rec)
	}
	return nil, nil
}

// Add reports false when the pair is already a favorite.
func (r *favoriteRepository) Add(ctx context.Context, userID, dishID string) (bool, error) {
	existing, err := r.find(ctx, userID, dishID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	fav := &entity.Favorite{UserID: userID, DishID: dishID}
	if _, err := put(ctx, r.db, store.CollectionFavorites, "", fav); err != nil {
		if errors.Is(err, store.ErrConstraint) {
			return false, nil
		}
		r.log.Error("Failed to add favorite",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("dish_id", dishID),
		)
		return false, fmt.Errorf("add favorite %s/%s: %w", userID, dishID, err)
	}
	return true, nil
}

// Remove reports false when the pair was not a favorite.
func (r *favoriteRepository) Remove(ctx context.Context, userID, dishID string) (bool, error) {
	existing, err := r.find(ctx, userID, dishID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	if err := r.db.Delete(ctx, store.CollectionFavorites, existing.ID); err != nil {
		r.log.Error("Failed to remove favorite",
			zap.Error(err),
			zap.String("favorite_id", existing.ID),
		)
		return false, fmt.Errorf("remove favorite %s: %w", existing.ID, err)
	}
	return true, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, dishID string) (bool, error) {
	existing, err := r.find(ctx, userID, dishID)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

// FindDishes returns the user's favorite dishes. Favorites pointing at a dish that
// no longer exists are skipped.
func (r *favoriteRepository) FindDishes(ctx context.Context, userID string) ([]*entity.Dish, error) {
	favs, err := collect[entity.Favorite](r.db.ScanByIndex(ctx, store.CollectionFavorites, store.IndexUserID, userID))
	if err != nil {
		r.log.Error("Failed to find favorites by user",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("find favorites by user %s: %w", userID, err)
	}

	dishes := make([]*entity.Dish, 0, len(favs))
	for _, fav := range favs {
		dish, err := get[entity.Dish](ctx, r.db, store.CollectionDishes, fav.DishID)
		if err != nil {
			return nil, fmt.Errorf("find dish %s for favorite %s: %w", fav.DishID, fav.ID, err)
		}
		if dish != nil {
			dishes = append(dishes, dish)
		}
	}
	return dishes, nil
}
