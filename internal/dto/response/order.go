package response

import (
	"time"

	"food-ordering/internal/data/entity"
)

type OrderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"user_id"`
	Status    entity.OrderStatus  `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	Items     []OrderItemResponse `json:"items,omitempty"`
	Total     float64             `json:"total,omitempty"`
}

// OrderItemResponse is one order detail. Dish is nil when the dish left the catalog.
type OrderItemResponse struct {
	ID       string        `json:"id"`
	DishID   string        `json:"dish_id"`
	Dish     *DishResponse `json:"dish,omitempty"`
	Quantity int           `json:"quantity"`
}

func OrderToResponse(order *entity.Order) OrderResponse {
	return OrderResponse{
		ID:        order.ID,
		UserID:    order.UserID,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	}
}

func OrderItemToResponse(detail *entity.OrderDetail, dish *entity.Dish) OrderItemResponse {
	resp := OrderItemResponse{
		ID:       detail.ID,
		DishID:   detail.DishID,
		Quantity: detail.Quantity,
	}
	if dish != nil {
		d := DishToResponse(dish)
		resp.Dish = &d
	}
	return resp
}

// WithItems attaches items and recomputes the total from the hydrated dishes.
func (o OrderResponse) WithItems(items []OrderItemResponse) OrderResponse {
	o.Items = items
	o.Total = 0
	for _, item := range items {
		if item.Dish != nil {
			o.Total += item.Dish.Price * float64(item.Quantity)
		}
	}
	return o
}
