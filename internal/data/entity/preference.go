package entity

const PreferenceAuthToken = "auth_token"

// Preference is a persistent client-side key/value, such as the session token.
type Preference struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
