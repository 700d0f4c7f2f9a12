package models

import "time"

// Favourite is a user's bookmark of a meal, denormalized so the favourites
// list renders without joining the catalog.
type Favourite struct {
	ID        string    `json:"id"`
	UserEmail string    `json:"userEmail"`
	MealID    string    `json:"mealId"`
	MealName  string    `json:"mealName"`
	ChefName  string    `json:"chefName"`
	Price     float64   `json:"price"`
	AddedTime time.Time `json:"addedTime"`
}

// AddFavouriteRequest is the payload for bookmarking a meal.
type AddFavouriteRequest struct {
	MealID string `json:"mealId" validate:"required"`
}
