package middleware

import (
	"net/http"
	"strings"

	"food-ordering/internal/usecase"
	"food-ordering/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Auth resolves the bearer token to a user and stores the user ID and token in
// the request context.
func Auth(auth usecase.AuthService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}
			token = strings.TrimSpace(token)

			user := auth.VerifyToken(r.Context(), token)
			if user == nil {
				logger.Warn("Invalid or expired token", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SameUser rejects requests whose URL parameter param names a different user
// than the authenticated one. It must run after Auth.
func SameUser(param string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if target := chi.URLParam(r, param); target != userID {
				logger.Warn("Cross-user access attempt",
					zap.String("user_id", userID),
					zap.String("target", target),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Access to another user's data is not allowed")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
