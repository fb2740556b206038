package response

import "food-ordering/internal/data/entity"

type CartItemResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	DishID   string `json:"dish_id"`
	Quantity int    `json:"quantity"`
}

type CartLineResponse struct {
	ID       string       `json:"id"`
	Dish     DishResponse `json:"dish"`
	Quantity int          `json:"quantity"`
	Subtotal float64      `json:"subtotal"`
}

func CartItemToResponse(item *entity.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:       item.ID,
		UserID:   item.UserID,
		DishID:   item.DishID,
		Quantity: item.Quantity,
	}
}

func CartLineToResponse(line entity.CartLine) CartLineResponse {
	return CartLineResponse{
		ID:       line.ID,
		Dish:     DishToResponse(&line.Dish),
		Quantity: line.Quantity,
		Subtotal: line.Dish.Price * float64(line.Quantity),
	}
}
