package repository

import (
	"context"
	"fmt"
	"time"

	"food-ordering/internal/data/entity"
	"food-ordering/internal/data/store"

	"go.uber.org/zap"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id string) (*entity.Order, error)
	FindByUserID(ctx context.Context, userID string) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error
}

type orderRepository struct {
	db  store.Ops
	log *zap.Logger
}

func NewOrderRepository(db store.Ops, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

// Create inserts order under a new auto key. An empty status defaults to pending.
func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.Status == "" {
		order.Status = entity.OrderStatusPending
	}
	if !order.Status.Valid() {
		return fmt.Errorf("create order: unknown status %q", order.Status)
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}

	id, err := put(ctx, r.db, store.CollectionOrders, "", order)
	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("user_id", order.UserID),
			zap.String("status", string(order.Status)),
		)
		return fmt.Errorf("create order for user %s: %w", order.UserID, err)
	}

	order.ID = id
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	order, err := get[entity.Order](ctx, r.db, store.CollectionOrders, id)
	if err != nil {
		r.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.String("order_id", id),
		)
		return nil, fmt.Errorf("find order by ID %s: %w", id, err)
	}
	return order, nil
}

// FindByUserID returns the user's orders oldest first.
func (r *orderRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Order, error) {
	orders, err := collect[entity.Order](r.db.ScanByIndex(ctx, store.CollectionOrders, store.IndexUserID, userID))
	if err != nil {
		r.log.Error("Failed to find orders by user",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("find orders by user %s: %w", userID, err)
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	order, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	if !order.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, order.Status, status)
	}

	order.Status = status
	if _, err := put(ctx, r.db, store.CollectionOrders, order.ID, order); err != nil {
		r.log.Error("Failed to update order status",
			zap.Error(err),
			zap.String("order_id", id),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update order status %s: %w", id, err)
	}
	return nil
}
