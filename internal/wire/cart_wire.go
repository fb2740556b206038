package wire

import (
	"net/http"

	"food-ordering/internal/adaptor"
	"food-ordering/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCart(r chi.Router, cartHandler *adaptor.CartHandler, auth func(http.Handler) http.Handler, log *zap.Logger) {
	r.With(auth).Route("/cart", func(r chi.Router) {
		r.Post("/", cartHandler.Add)

		r.Put("/items/{id}", cartHandler.UpdateItem)
		r.Delete("/items/{id}", cartHandler.RemoveItem)

		r.With(middleware.SameUser("userId", log)).Get("/{userId}", cartHandler.Get)
		r.With(middleware.SameUser("userId", log)).Delete("/{userId}", cartHandler.Clear)
	})
}
