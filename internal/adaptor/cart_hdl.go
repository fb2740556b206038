package adaptor

import (
	"net/http"

	"food-ordering/internal/dto/request"
	"food-ordering/internal/usecase"
	"food-ordering/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CartHandler struct {
	service usecase.CartService
	log     *zap.Logger
}

func NewCartHandler(service usecase.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		log:     log,
	}
}

// Add handles POST /cart. The line always belongs to the caller.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.AddToCartRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.UserID = userID

	item, err := h.service.Add(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add to cart")
		return
	}

	utils.ResponseCreated(w, "Dish added to cart", item)
}

// Get handles GET /cart/{userId}
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	lines := h.service.Lines(r.Context(), chi.URLParam(r, "userId"))
	utils.ResponseSuccess(w, "Cart retrieved successfully", lines)
}

// Clear handles DELETE /cart/{userId}
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), chi.URLParam(r, "userId")); err != nil {
		handleServiceError(w, h.log, err, "clear cart")
		return
	}
	utils.ResponseSuccess(w, "Cart cleared", nil)
}

// UpdateItem handles PUT /cart/items/{id}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.UpdateCartItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.UpdateQuantity(r.Context(), userID, chi.URLParam(r, "id"), &req); err != nil {
		handleServiceError(w, h.log, err, "update cart item")
		return
	}
	utils.ResponseSuccess(w, "Cart item updated", nil)
}

// RemoveItem handles DELETE /cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.service.Remove(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "remove cart item")
		return
	}
	utils.ResponseSuccess(w, "Cart item removed", nil)
}
