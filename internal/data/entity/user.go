package entity

// User is keyed by an externally generated UUID. Password holds a bcrypt hash.
type User struct {
	Base
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Phone           string  `json:"phone"`
	Password        string  `json:"password"`
	ImageURL        *string `json:"image_url"`
	PrivacySettings string  `json:"privacy_settings,omitempty"`
}
