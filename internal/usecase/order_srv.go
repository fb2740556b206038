package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"food-ordering/internal/data/entity"
	"food-ordering/internal/data/repository"
	"food-ordering/internal/dto/request"
	"food-ordering/internal/dto/response"
	"food-ordering/pkg/utils"

	"go.uber.org/zap"
)

type OrderService interface {
	Checkout(ctx context.Context, userID string) (*response.OrderResponse, error)
	CreateOrder(ctx context.Context, req *request.CreateOrderRequest) (*response.OrderResponse, error)
	AddDetail(ctx context.Context, orderID string, req *request.AddOrderDetailRequest) (*response.OrderItemResponse, error)
	Get(ctx context.Context, orderID string) *response.OrderResponse
	Details(ctx context.Context, orderID string) []response.OrderItemResponse
	UserOrders(ctx context.Context, userID string, req *request.PaginatedRequest) *response.PaginatedResponse[response.OrderResponse]
	Current(ctx context.Context, userID string) *response.OrderResponse
	UpdateStatus(ctx context.Context, orderID string, req *request.UpdateOrderStatusRequest) error
}

type orderService struct {
	repo *repository.Repository
	net  network
	log  *zap.Logger
}

func NewOrderService(repo *repository.Repository, delay time.Duration, log *zap.Logger) OrderService {
	return &orderService{
		repo: repo,
		net:  network{delay: delay},
		log:  log.With(zap.String("service", "order")),
	}
}

// Checkout turns the user's cart into an in-progress order with one detail per
// line and empties the cart, all in one transaction.
func (s *orderService) Checkout(ctx context.Context, userID string) (*response.OrderResponse, error) {
	if err := s.net.wait(ctx); err != nil {
		return nil, err
	}

	var resp response.OrderResponse
	err := s.repo.Atomic(ctx, func(tx *repository.Repository) error {
		lines, err := tx.Cart.FindLines(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		order := &entity.Order{UserID: userID, Status: entity.OrderStatusInProgress}
		if err := tx.Order.Create(ctx, order); err != nil {
			return err
		}

		items := make([]response.OrderItemResponse, 0, len(lines))
		for _, line := range lines {
			detail := &entity.OrderDetail{OrderID: order.ID, DishID: line.Dish.ID, Quantity: line.Quantity}
			if err := tx.OrderDetail.Create(ctx, detail); err != nil {
				return err
			}
			items = append(items, response.OrderItemToResponse(detail, &line.Dish))
		}

		if err := tx.Cart.Clear(ctx, userID); err != nil {
			return err
		}

		resp = response.OrderToResponse(order).WithItems(items)
		return nil
	})
	if err != nil {
		s.log.Warn("Checkout failed", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}

	s.log.Info("Order placed",
		zap.String("order_id", resp.ID),
		zap.String("user_id", userID),
		zap.Int("items", len(resp.Items)),
	)
	return &resp, nil
}

func (s *orderService) CreateOrder(ctx context.Context, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	if err := validate(s.log, "Create order", req); err != nil {
		return nil, err
	}
	if err := s.net.wait(ctx); err != nil {
		return nil, err
	}

	order := &entity.Order{UserID: req.UserID, Status: entity.OrderStatus(req.Status)}
	if err := s.repo.Order.Create(ctx, order); err != nil {
		return nil, err
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

// AddDetail appends a line to an existing order.
func (s *orderService) AddDetail(ctx context.Context, orderID string, req *request.AddOrderDetailRequest) (*response.OrderItemResponse, error) {
	if err := validate(s.log, "Add order detail", req); err != nil {
		return nil, err
	}
	if err := s.net.wait(ctx); err != nil {
		return nil, err
	}

	order, err := s.repo.Order.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %s: %w", orderID, repository.ErrNotFound)
	}

	detail := &entity.OrderDetail{OrderID: order.ID, DishID: req.DishID, Quantity: req.Quantity}
	if err := s.repo.OrderDetail.Create(ctx, detail); err != nil {
		return nil, err
	}

	resp := response.OrderItemToResponse(detail, nil)
	return &resp, nil
}

func (s *orderService) Get(ctx context.Context, orderID string) *response.OrderResponse {
	if err := s.net.wait(ctx); err != nil {
		return nil
	}

	order, err := s.repo.Order.FindByID(ctx, orderID)
	if err != nil {
		s.log.Error("Failed to get order", zap.Error(err), zap.String("order_id", orderID))
		return nil
	}
	if order == nil {
		return nil
	}

	resp := response.OrderToResponse(order)
	return &resp
}

func (s *orderService) Details(ctx context.Context, orderID string) []response.OrderItemResponse {
	if err := s.net.wait(ctx); err != nil {
		return []response.OrderItemResponse{}
	}

	items, err := s.items(ctx, orderID)
	if err != nil {
		s.log.Error("Failed to get order details", zap.Error(err), zap.String("order_id", orderID))
		return []response.OrderItemResponse{}
	}
	return items
}

// UserOrders pages through the user's orders, newest first.
func (s *orderService) UserOrders(ctx context.Context, userID string, req *request.PaginatedRequest) *response.PaginatedResponse[response.OrderResponse] {
	page, perPage := req.Page, req.Limit()
	if page < 1 {
		page = 1
	}
	empty := response.NewPaginatedResponse([]response.OrderResponse{}, page, perPage, 0)

	if err := s.net.wait(ctx); err != nil {
		return empty
	}

	orders, err := s.repo.Order.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get user orders", zap.Error(err), zap.String("user_id", userID))
		return empty
	}
	slices.Reverse(orders)

	total := int64(len(orders))
	start := min(utils.CalculateOffset(page, perPage), len(orders))
	end := min(start+perPage, len(orders))

	out := make([]response.OrderResponse, 0, end-start)
	for _, order := range orders[start:end] {
		out = append(out, response.OrderToResponse(order))
	}
	return response.NewPaginatedResponse(out, page, perPage, total)
}

// Current returns the user's first in-progress order, in creation order, with its items.
func (s *orderService) Current(ctx context.Context, userID string) *response.OrderResponse {
	if err := s.net.wait(ctx); err != nil {
		return nil
	}

	orders, err := s.repo.Order.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get current order", zap.Error(err), zap.String("user_id", userID))
		return nil
	}

	for _, order := range orders {
		if order.Status != entity.OrderStatusInProgress {
			continue
		}
		items, err := s.items(ctx, order.ID)
		if err != nil {
			s.log.Error("Failed to get current order items", zap.Error(err), zap.String("order_id", order.ID))
			return nil
		}
		resp := response.OrderToResponse(order).WithItems(items)
		return &resp
	}
	return nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID string, req *request.UpdateOrderStatusRequest) error {
	if err := validate(s.log, "Update order status", req); err != nil {
		return err
	}
	if err := s.net.wait(ctx); err != nil {
		return err
	}

	if err := s.repo.Order.UpdateStatus(ctx, orderID, entity.OrderStatus(req.Status)); err != nil {
		return err
	}

	s.log.Info("Order status updated",
		zap.String("order_id", orderID),
		zap.String("status", req.Status))
	return nil
}

func (s *orderService) items(ctx context.Context, orderID string) ([]response.OrderItemResponse, error) {
	details, err := s.repo.OrderDetail.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	items := make([]response.OrderItemResponse, 0, len(details))
	for _, detail := range details {
		dish, err := s.repo.Dish.FindByID(ctx, detail.DishID)
		if err != nil {
			return nil, err
		}
		items = append(items, response.OrderItemToResponse(detail, dish))
	}
	return items, nil
}
