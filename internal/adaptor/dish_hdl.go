package adaptor

import (
	"net/http"

	"food-ordering/internal/usecase"
	"food-ordering/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type DishHandler struct {
	service usecase.DishService
	log     *zap.Logger
}

func NewDishHandler(service usecase.DishService, log *zap.Logger) *DishHandler {
	return &DishHandler{
		service: service,
		log:     log,
	}
}

// List handles GET /dishes
func (h *DishHandler) List(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Dishes retrieved successfully", h.service.List(r.Context()))
}

// Search handles GET /dishes/search?q=
func (h *DishHandler) Search(w http.ResponseWriter, r *http.Request) {
	dishes := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	utils.ResponseSuccess(w, "Dishes retrieved successfully", dishes)
}

// Get handles GET /dishes/{id}
func (h *DishHandler) Get(w http.ResponseWriter, r *http.Request) {
	dish := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if dish == nil {
		utils.ResponseNotFound(w, "Dish not found")
		return
	}
	utils.ResponseSuccess(w, "Dish retrieved successfully", dish)
}
