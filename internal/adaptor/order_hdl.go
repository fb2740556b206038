package adaptor

import (
	"net/http"

	"food-ordering/internal/dto/request"
	"food-ordering/internal/dto/response"
	"food-ordering/internal/usecase"
	"food-ordering/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log,
	}
}

// Create handles POST /orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.UserID = userID

	order, err := h.service.CreateOrder(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create order")
		return
	}
	utils.ResponseCreated(w, "Order created", order)
}

// AddDetail handles POST /orders/{id}/details
func (h *OrderHandler) AddDetail(w http.ResponseWriter, r *http.Request) {
	order, ok := h.ownedOrder(w, r)
	if !ok {
		return
	}

	var req request.AddOrderDetailRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.AddDetail(r.Context(), order.ID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add order detail")
		return
	}
	utils.ResponseCreated(w, "Order detail added", item)
}

// Details handles GET /orders/{id}/details
func (h *OrderHandler) Details(w http.ResponseWriter, r *http.Request) {
	order, ok := h.ownedOrder(w, r)
	if !ok {
		return
	}
	utils.ResponseSuccess(w, "Order details retrieved successfully", h.service.Details(r.Context(), order.ID))
}

// UpdateStatus handles PUT /orders/{id}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	order, ok := h.ownedOrder(w, r)
	if !ok {
		return
	}

	var req request.UpdateOrderStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.UpdateStatus(r.Context(), order.ID, &req); err != nil {
		handleServiceError(w, h.log, err, "update order status")
		return
	}
	utils.ResponseSuccess(w, "Order status updated", nil)
}

// ownedOrder loads the order named in the path. Orders of other users look
// exactly like missing ones.
func (h *OrderHandler) ownedOrder(w http.ResponseWriter, r *http.Request) (*response.OrderResponse, bool) {
	userID, ok := currentUser(w, r)
	if !ok {
		return nil, false
	}

	order := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if order == nil || order.UserID != userID {
		utils.ResponseNotFound(w, "Order not found")
		return nil, false
	}
	return order, true
}
