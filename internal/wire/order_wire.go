package wire

import (
	"net/http"

	"food-ordering/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireOrder mounts order routes. Ownership of {id} is checked by the handler.
func wireOrder(r chi.Router, orderHandler *adaptor.OrderHandler, auth func(http.Handler) http.Handler) {
	r.With(auth).Route("/orders", func(r chi.Router) {
		r.Post("/", orderHandler.Create)
		r.Post("/{id}/details", orderHandler.AddDetail)
		r.Get("/{id}/details", orderHandler.Details)
		r.Put("/{id}/status", orderHandler.UpdateStatus)
	})
}
