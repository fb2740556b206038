package repository

import (
	"context"
	"fmt"

	"food-ordering/internal/data/entity"
	"food-ordering/internal/data/store"

	"go.uber.org/zap"
)

type CartRepository interface {
	Add(ctx context.Context, item *entity.CartItem) error
	FindByID(ctx context.Context, id string) (*entity.CartItem, error)
	FindByUserID(ctx context.Context, userID string) ([]*entity.CartItem, error)
	FindLines(ctx context.Context, userID string) ([]entity.CartLine, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context, userID string) error
}

type cartRepository struct {
	db  store.Ops
	log *zap.Logger
}

func NewCartRepository(db store.Ops, log *zap.Logger) CartRepository {
	return &cartRepository{
		db:  db,
		log: log.With(zap.String("repository", "cart")),
	}
}

// Add merges item into the user's cart: an existing row for the same dish has its
// quantity increased, otherwise a new row is inserted. On return item carries the
// stored row's ID and quantity.
func (r *cartRepository) Add(ctx context.Context, item *entity.CartItem) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	items, err := r.FindByUserID(ctx, item.UserID)
	if err != nil {
		return err
	}

	row := &entity.CartItem{UserID: item.UserID, DishID: item.DishID, Quantity: item.Quantity}
	for _, existing := range items {
		if existing.DishID == item.DishID {
			row = existing
			row.Quantity += item.Quantity
			break
		}
	}

	id, err := put(ctx, r.db, store.CollectionCartItems, row.ID, row)
	if err != nil {
		r.log.Error("Failed to add cart item",
			zap.Error(err),
			zap.String("user_id", item.UserID),
			zap.String("dish_id", item.DishID),
		)
		return fmt.Errorf("add cart item %s: %w", item.DishID, err)
	}

	item.ID = id
	item.Quantity = row.Quantity
	return nil
}

func (r *cartRepository) FindByID(ctx context.Context, id string) (*entity.CartItem, error) {
	item, err := get[entity.CartItem](ctx, r.db, store.CollectionCartItems, id)
	if err != nil {
		r.log.Error("Failed to find cart item by ID",
			zap.Error(err),
			zap.String("cart_item_id", id),
		)
		return nil, fmt.Errorf("find cart item by ID %s: %w", id, err)
	}
	return item, nil
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	items, err := collect[entity.CartItem](r.db.ScanByIndex(ctx, store.CollectionCartItems, store.IndexUserID, userID))
	if err != nil {
		r.log.Error("Failed to find cart items by user",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("find cart items by user %s: %w", userID, err)
	}
	return items, nil
}

// FindLines returns the user's cart joined with dishes. Rows whose dish no longer
// exists are skipped.
func (r *cartRepository) FindLines(ctx context.Context, userID string) ([]entity.CartLine, error) {
	items, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]entity.CartLine, 0, len(items))
	for _, item := range items {
		dish, err := get[entity.Dish](ctx, r.db, store.CollectionDishes, item.DishID)
		if err != nil {
			r.log.Error("Failed to hydrate cart line",
				zap.Error(err),
				zap.String("cart_item_id", item.ID),
				zap.String("dish_id", item.DishID),
			)
			return nil, fmt.Errorf("find dish %s for cart item %s: %w", item.DishID, item.ID, err)
		}
		if dish == nil {
			r.log.Debug("Dropping cart line with missing dish",
				zap.String("cart_item_id", item.ID),
				zap.String("dish_id", item.DishID),
			)
			continue
		}
		lines = append(lines, entity.CartLine{ID: item.ID, Dish: *dish, Quantity: item.Quantity})
	}
	return lines, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	item, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("cart item %s: %w", id, ErrNotFound)
	}

	item.Quantity = quantity
	if _, err := put(ctx, r.db, store.CollectionCartItems, item.ID, item); err != nil {
		r.log.Error("Failed to update cart item quantity",
			zap.Error(err),
			zap.String("cart_item_id", id),
			zap.Int("quantity", quantity),
		)
		return fmt.Errorf("update cart item %s: %w", id, err)
	}
	return nil
}

func (r *cartRepository) Remove(ctx context.Context, id string) error {
	if err := r.db.Delete(ctx, store.CollectionCartItems, id); err != nil {
		r.log.Error("Failed to remove cart item",
			zap.Error(err),
			zap.String("cart_item_id", id),
		)
		return fmt.Errorf("remove cart item %s: %w", id, err)
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID string) error {
	items, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}

	for _, item := range items {
		if err := r.Remove(ctx, item.ID); err != nil {
			return fmt.Errorf("clear cart of user %s: %w", userID, err)
		}
	}
	return nil
}
