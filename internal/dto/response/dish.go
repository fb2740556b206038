package response

import "food-ordering/internal/data/entity"

type DishResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
	Ingredients string  `json:"ingredients"`
}

func DishToResponse(dish *entity.Dish) DishResponse {
	return DishResponse{
		ID:          dish.ID,
		Name:        dish.Name,
		Description: dish.Description,
		Price:       dish.Price,
		ImageURL:    dish.ImageURL,
		Category:    dish.Category,
		Ingredients: dish.Ingredients,
	}
}

func DishesToResponse(dishes []*entity.Dish) []DishResponse {
	out := make([]DishResponse, len(dishes))
	for i, dish := range dishes {
		out[i] = DishToResponse(dish)
	}
	return out
}

type FavoriteToggleResponse struct {
	DishID   string `json:"dish_id"`
	Favorite bool   `json:"favorite"`
}
