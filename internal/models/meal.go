package models

import "time"

// Meal is a menu item offered by a chef. Rating is aggregated server-side
// from reviews and is never accepted from a client.
type Meal struct {
	ID                    string    `json:"id"`
	FoodName              string    `json:"foodName"`
	ChefID                string    `json:"chefId"`
	ChefName              string    `json:"chefName"`
	ChefEmail             string    `json:"chefEmail"`
	Price                 float64   `json:"price"`
	Rating                float64   `json:"rating"`
	Ingredients           []string  `json:"ingredients"`
	EstimatedDeliveryTime string    `json:"estimatedDeliveryTime"`
	DeliveryArea          string    `json:"deliveryArea"`
	FoodImage             string    `json:"foodImage"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// CreateMealRequest is the chef payload for adding a meal.
type CreateMealRequest struct {
	FoodName              string   `json:"foodName" validate:"required,min=2"`
	Price                 float64  `json:"price" validate:"required,gt=0"`
	Ingredients           []string `json:"ingredients" validate:"required,min=1,dive,required"`
	EstimatedDeliveryTime string   `json:"estimatedDeliveryTime" validate:"required"`
	DeliveryArea          string   `json:"deliveryArea" validate:"required"`
	FoodImage             string   `json:"foodImage" validate:"required,url"`
}

// UpdateMealRequest carries the fields a chef may change on an existing meal.
// Nil fields are left untouched.
type UpdateMealRequest struct {
	FoodName              *string   `json:"foodName,omitempty" validate:"omitempty,min=2"`
	Price                 *float64  `json:"price,omitempty" validate:"omitempty,gt=0"`
	Ingredients           *[]string `json:"ingredients,omitempty" validate:"omitempty,min=1,dive,required"`
	EstimatedDeliveryTime *string   `json:"estimatedDeliveryTime,omitempty"`
	DeliveryArea          *string   `json:"deliveryArea,omitempty"`
	FoodImage             *string   `json:"foodImage,omitempty" validate:"omitempty,url"`
}

// MealListQuery collects the query parameters of the public catalog listing.
type MealListQuery struct {
	Page   int
	Limit  int
	Search string
	SortBy string // price | rating | foodName
	Order  string // asc | desc
}
