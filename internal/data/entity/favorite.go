package entity

type Favorite struct {
	BaseSimple
	UserID string `json:"user_id"`
	DishID string `json:"dish_id"`
}
