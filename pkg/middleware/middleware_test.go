package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"food-ordering/internal/dto/request"
	"food-ordering/internal/dto/response"
	"food-ordering/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubAuth struct {
	users map[string]string // token -> user ID
}

func (s stubAuth) Register(context.Context, *request.RegisterRequest) (bool, error) { return false, nil }

func (s stubAuth) Login(context.Context, *request.LoginRequest) (*response.AuthResponse, error) {
	return nil, nil
}

func (s stubAuth) VerifyToken(_ context.Context, token string) *response.UserResponse {
	id, ok := s.users[token]
	if !ok {
		return nil
	}
	return &response.UserResponse{ID: id}
}

func (s stubAuth) Logout(context.Context) error { return nil }

func echoUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	token, _ := utils.GetTokenFromContext(r.Context())
	w.Write([]byte(userID + "|" + token))
}

func TestAuth(t *testing.T) {
	h := Auth(stubAuth{users: map[string]string{"good": "u1"}}, zap.NewNop())(http.HandlerFunc(echoUser))

	tests := []struct {
		name   string
		header string
		code   int
		body   string
	}{
		{name: "missing", header: "", code: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", code: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", code: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer bad", code: http.StatusUnauthorized},
		{name: "valid", header: "Bearer good", code: http.StatusOK, body: "u1|good"},
		{name: "lowercase scheme", header: "bearer good", code: http.StatusOK, body: "u1|good"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestSameUser(t *testing.T) {
	r := chi.NewRouter()
	r.With(
		Auth(stubAuth{users: map[string]string{"t1": "u1"}}, zap.NewNop()),
		SameUser("id", zap.NewNop()),
	).Get("/users/{id}", echoUser)

	do := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer t1")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("/users/u1"))
	assert.Equal(t, http.StatusForbidden, do("/users/u2"))
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":false,"message":"Internal server error"}`, rec.Body.String())
}

func TestCORS(t *testing.T) {
	h := CORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Length", rec.Header().Get("Access-Control-Expose-Headers"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Less(t, rec.Code, http.StatusMultipleChoices)
	assert.NotEqual(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.MethodPut, rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "43200", rec.Header().Get("Access-Control-Max-Age"))

	// Headers outside the allow list fail the preflight.
	req.Header.Set("Access-Control-Request-Headers", "X-Secret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
