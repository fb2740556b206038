package wire

import (
	"food-ordering/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireDish mounts the public catalog routes.
func wireDish(r chi.Router, dishHandler *adaptor.DishHandler) {
	r.Route("/dishes", func(r chi.Router) {
		r.Get("/", dishHandler.List)
		r.Get("/search", dishHandler.Search)
		r.Get("/{id}", dishHandler.Get)
	})
}
