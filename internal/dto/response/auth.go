package response

import (
	"encoding/json"
	"time"

	"food-ordering/internal/data/entity"
)

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID              string          `json:"id"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	Phone           string          `json:"phone"`
	ImageURL        *string         `json:"image_url"`
	PrivacySettings json.RawMessage `json:"privacy_settings,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		ImageURL:  user.ImageURL,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if user.PrivacySettings != "" && json.Valid([]byte(user.PrivacySettings)) {
		resp.PrivacySettings = json.RawMessage(user.PrivacySettings)
	}
	return resp
}
