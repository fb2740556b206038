package request

type CreateOrderRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Status string `json:"status" validate:"omitempty,oneof=pending in_progress delivered cancelled"`
}

type AddOrderDetailRequest struct {
	DishID   string `json:"dish_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress delivered cancelled"`
}
