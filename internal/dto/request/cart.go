package request

type AddToCartRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	DishID   string `json:"dish_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// UpdateCartItemRequest sets an absolute quantity; zero removes the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}
