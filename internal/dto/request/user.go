package request

import "encoding/json"

// UpdateProfileRequest is partial: nil fields keep their stored value.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=50"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=50"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,numeric,min=6,max=15"`
	ImageURL  *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// UpdatePrivacyRequest carries the client's privacy settings as an opaque JSON value.
type UpdatePrivacyRequest struct {
	Settings json.RawMessage `json:"settings" validate:"required"`
}
