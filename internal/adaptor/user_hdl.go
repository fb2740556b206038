package adaptor

import (
	"net/http"

	"food-ordering/internal/dto/request"
	"food-ordering/internal/usecase"
	"food-ordering/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserHandler serves /users/{id}. Routes are mounted behind SameUser, so the
// path ID is always the caller.
type UserHandler struct {
	service usecase.UserService
	orders  usecase.OrderService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, orders usecase.OrderService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		orders:  orders,
		log:     log,
	}
}

// GetProfile handles GET /users/{id}
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile := h.service.GetProfile(r.Context(), chi.URLParam(r, "id"))
	if profile == nil {
		utils.ResponseNotFound(w, "User not found")
		return
	}
	utils.ResponseSuccess(w, "Profile retrieved successfully", profile)
}

// UpdateProfile handles PUT /users/{id}
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID := chi.URLParam(r, "id")
	updated, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update profile")
		return
	}
	if !updated {
		utils.ResponseConflict(w, "Profile not updated: phone number already in use")
		return
	}

	utils.ResponseSuccess(w, "Profile updated successfully", h.service.GetProfile(r.Context(), userID))
}

// UpdatePassword handles PUT /users/{id}/password
func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.service.UpdatePassword(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update password")
		return
	}
	if !updated {
		utils.ResponseBadRequest(w, "Current password is incorrect", nil)
		return
	}

	utils.ResponseSuccess(w, "Password updated successfully", nil)
}

// UpdatePrivacy handles PUT /users/{id}/privacy
func (h *UserHandler) UpdatePrivacy(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePrivacyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.UpdatePrivacy(r.Context(), chi.URLParam(r, "id"), &req); err != nil {
		handleServiceError(w, h.log, err, "update privacy")
		return
	}
	utils.ResponseSuccess(w, "Privacy settings updated", nil)
}

// Checkout handles POST /users/{id}/checkout
func (h *UserHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Checkout(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "checkout")
		return
	}
	utils.ResponseCreated(w, "Order placed", order)
}

// Orders handles GET /users/{id}/orders?page=1&per_page=10
func (h *UserHandler) Orders(w http.ResponseWriter, r *http.Request) {
	orders := h.orders.UserOrders(r.Context(), chi.URLParam(r, "id"), paginationFromQuery(r))
	utils.ResponseSuccess(w, "Orders retrieved successfully", orders)
}

// CurrentOrder handles GET /users/{id}/orders/current
func (h *UserHandler) CurrentOrder(w http.ResponseWriter, r *http.Request) {
	order := h.orders.Current(r.Context(), chi.URLParam(r, "id"))
	if order == nil {
		utils.ResponseNotFound(w, "No order in progress")
		return
	}
	utils.ResponseSuccess(w, "Current order retrieved successfully", order)
}
