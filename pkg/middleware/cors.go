package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows any origin and answers preflight requests directly.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Origin", "Content-Type", "Authorization"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         43200, // 12h
	})
}
