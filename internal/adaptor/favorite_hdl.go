package adaptor

import (
	"net/http"

	"food-ordering/internal/dto/response"
	"food-ordering/internal/usecase"
	"food-ordering/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FavoriteHandler struct {
	service usecase.FavoriteService
	log     *zap.Logger
}

func NewFavoriteHandler(service usecase.FavoriteService, log *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
		log:     log,
	}
}

// List handles GET /users/{id}/favorites
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	dishes := h.service.List(r.Context(), chi.URLParam(r, "id"))
	utils.ResponseSuccess(w, "Favorites retrieved successfully", dishes)
}

// Add handles POST /users/{id}/favorites/{dishId}
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, dishID := chi.URLParam(r, "id"), chi.URLParam(r, "dishId")

	added, err := h.service.Add(r.Context(), userID, dishID)
	if err != nil {
		handleServiceError(w, h.log, err, "add favorite")
		return
	}
	if !added {
		utils.ResponseConflict(w, "Dish is already a favorite")
		return
	}
	utils.ResponseCreated(w, "Favorite added", response.FavoriteToggleResponse{DishID: dishID, Favorite: true})
}

// Remove handles DELETE /users/{id}/favorites/{dishId}
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, dishID := chi.URLParam(r, "id"), chi.URLParam(r, "dishId")

	removed, err := h.service.Remove(r.Context(), userID, dishID)
	if err != nil {
		handleServiceError(w, h.log, err, "remove favorite")
		return
	}
	if !removed {
		utils.ResponseNotFound(w, "Favorite not found")
		return
	}
	utils.ResponseSuccess(w, "Favorite removed", response.FavoriteToggleResponse{DishID: dishID, Favorite: false})
}

// Toggle handles POST /users/{id}/favorites/{dishId}/toggle
func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, dishID := chi.URLParam(r, "id"), chi.URLParam(r, "dishId")

	favorite, err := h.service.Toggle(r.Context(), userID, dishID)
	if err != nil {
		handleServiceError(w, h.log, err, "toggle favorite")
		return
	}
	utils.ResponseSuccess(w, "Favorite toggled", response.FavoriteToggleResponse{DishID: dishID, Favorite: favorite})
}
