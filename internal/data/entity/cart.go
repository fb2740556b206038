package entity

type CartItem struct {
	BaseSimple
	UserID   string `json:"user_id"`
	DishID   string `json:"dish_id"`
	Quantity int    `json:"quantity"`
}

// CartLine is a cart item joined with its dish.
type CartLine struct {
	ID       string
	Dish     Dish
	Quantity int
}
