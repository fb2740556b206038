package repository

import (
	"context"
	"fmt"

	"food-ordering/internal/data/entity"
	"food-ordering/internal/data/store"

	"go.uber.org/zap"
)

type OrderDetailRepository interface {
	Create(ctx context.Context, detail *entity.OrderDetail) error
	FindByOrderID(ctx context.Context, orderID string) ([]*entity.OrderDetail, error)
}

type orderDetailRepository struct {
	db  store.Ops
	log *zap.Logger
}

func NewOrderDetailRepository(db store.Ops, log *zap.Logger) OrderDetailRepository {
	return &orderDetailRepository{
		db:  db,
		log: log.With(zap.String("repository", "order_detail")),
	}
}

func (r *orderDetailRepository) Create(ctx context.Context, detail *entity.OrderDetail) error {
	if detail.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	id, err := put(ctx, r.db, store.CollectionOrderDetails, "", detail)
	if err != nil {
		r.log.Error("Failed to create order detail",
			zap.Error(err),
			zap.String("order_id", detail.OrderID),
			zap.String("dish_id", detail.DishID),
		)
		return fmt.Errorf("create order detail for order %s: %w", detail.OrderID, err)
	}

	detail.ID = id
	return nil
}

func (r *orderDetailRepository) FindByOrderID(ctx context.Context, orderID string) ([]*entity.OrderDetail, error) {
	details, err := collect[entity.OrderDetail](r.db.ScanByIndex(ctx, store.CollectionOrderDetails, store.IndexOrderID, orderID))
	if err != nil {
		r.log.Error("Failed to find order details",
			zap.Error(err),
			zap.String("order_id", orderID),
		)
		return nil, fmt.Errorf("find order details by order %s: %w", orderID, err)
	}
	return details, nil
}
