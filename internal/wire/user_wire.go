package wire

import (
	"net/http"

	"food-ordering/internal/adaptor"
	"food-ordering/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser mounts per-user routes. Every route requires the token user to match {id}.
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	favoriteHandler *adaptor.FavoriteHandler,
	auth func(http.Handler) http.Handler,
	log *zap.Logger,
) {
	r.With(auth, middleware.SameUser("id", log)).Route("/users/{id}", func(r chi.Router) {
		r.Get("/", userHandler.GetProfile)
		r.Put("/", userHandler.UpdateProfile)
		r.Put("/password", userHandler.UpdatePassword)
		r.Put("/privacy", userHandler.UpdatePrivacy)

		r.Post("/checkout", userHandler.Checkout)
		r.Get("/orders", userHandler.Orders)
		r.Get("/orders/current", userHandler.CurrentOrder)

		r.Get("/favorites", favoriteHandler.List)
		r.Post("/favorites/{dishId}", favoriteHandler.Add)
		r.Delete("/favorites/{dishId}", favoriteHandler.Remove)
		r.Post("/favorites/{dishId}/toggle", favoriteHandler.Toggle)
	})
}
