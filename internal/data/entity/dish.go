package entity

// Dish is catalog data: seeded at startup, never edited by end users.
type Dish struct {
	BaseSimple
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
	Ingredients string  `json:"ingredients"`
}
