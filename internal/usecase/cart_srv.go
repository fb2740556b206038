package usecase

import (
	"context"
	"fmt"
	"time"

	"food-ordering/internal/data/entity"
	"food-ordering/internal/data/repository"
	"food-ordering/internal/dto/request"
	"food-ordering/internal/dto/response"

	"go.uber.org/zap"
)

type CartService interface {
	Add(ctx context.Context, req *request.AddToCartRequest) (*response.CartItemResponse, error)
	Lines(ctx context.Context, userID string) []response.CartLineResponse
	UpdateQuantity(ctx context.Context, userID, itemID string, req *request.UpdateCartItemRequest) error
	Remove(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error
}

type cartService struct {
	cartRepo repository.CartRepository
	net      network
	log      *zap.Logger
}

func NewCartService(cartRepo repository.CartRepository, delay time.Duration, log *zap.Logger) CartService {
	return &cartService{
		cartRepo: cartRepo,
		net:      network{delay: delay},
		log:      log.With(zap.String("service", "cart")),
	}
}

// Add puts quantity of a dish in the cart, merging with an existing line.
func (s *cartService) Add(ctx context.Context, req *request.AddToCartRequest) (*response.CartItemResponse, error) {
	if err := validate(s.log, "Add to cart", req); err != nil {
		return nil, err
	}
	if err := s.net.wait(ctx); err != nil {
		return nil, err
	}

	item := &entity.CartItem{UserID: req.UserID, DishID: req.DishID, Quantity: req.Quantity}
	if err := s.cartRepo.Add(ctx, item); err != nil {
		return nil, err
	}

	resp := response.CartItemToResponse(item)
	return &resp, nil
}

func (s *cartService) Lines(ctx context.Context, userID string) []response.CartLineResponse {
	if err := s.net.wait(ctx); err != nil {
		return []response.CartLineResponse{}
	}

	lines, err := s.cartRepo.FindLines(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load cart", zap.Error(err), zap.String("user_id", userID))
		return []response.CartLineResponse{}
	}

	out := make([]response.CartLineResponse, len(lines))
	for i, line := range lines {
		out[i] = response.CartLineToResponse(line)
	}
	return out
}

// UpdateQuantity sets a line's quantity. Zero removes the line and negative
// values are rejected before reaching storage.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, itemID string, req *request.UpdateCartItemRequest) error {
	if err := validate(s.log, "Update cart item", req); err != nil {
		return err
	}
	if err := s.net.wait(ctx); err != nil {
		return err
	}
	if err := s.ensureOwner(ctx, userID, itemID); err != nil {
		return err
	}

	if req.Quantity == 0 {
		return s.cartRepo.Remove(ctx, itemID)
	}
	return s.cartRepo.UpdateQuantity(ctx, itemID, req.Quantity)
}

func (s *cartService) Remove(ctx context.Context, userID, itemID string) error {
	if err := s.net.wait(ctx); err != nil {
		return err
	}
	if err := s.ensureOwner(ctx, userID, itemID); err != nil {
		return err
	}
	return s.cartRepo.Remove(ctx, itemID)
}

func (s *cartService) Clear(ctx context.Context, userID string) error {
	if err := s.net.wait(ctx); err != nil {
		return err
	}
	return s.cartRepo.Clear(ctx, userID)
}

// ensureOwner hides other users' cart lines behind ErrNotFound.
func (s *cartService) ensureOwner(ctx context.Context, userID, itemID string) error {
	item, err := s.cartRepo.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil || item.UserID != userID {
		return fmt.Errorf("cart item %s: %w", itemID, repository.ErrNotFound)
	}
	return nil
}
