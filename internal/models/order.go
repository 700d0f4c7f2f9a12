package models

import (
	"math"
	"time"
)

// Order statuses. Transitions are validated server-side against the table in
// internal/modules/orders/state.go; delivered and cancelled are terminal.
const (
	OrderStatusPending   = "pending"
	OrderStatusAccepted  = "accepted"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Payment statuses. Casing differs from order statuses because the original
// wire format spells them this way.
const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
)

// Order is a placed purchase of a meal.
type Order struct {
	ID              string    `json:"id"`
	FoodID          string    `json:"foodId"`
	MealName        string    `json:"mealName"`
	ChefID          string    `json:"chefId"`
	UserEmail       string    `json:"userEmail"`
	Quantity        int       `json:"quantity"`
	Price           float64   `json:"price"` // unit price snapshot at order time
	OrderStatus     string    `json:"orderStatus"`
	PaymentStatus   string    `json:"paymentStatus"`
	UserAddress     string    `json:"userAddress"`
	StripeSessionID string    `json:"-"`
	OrderTime       time.Time `json:"orderTime"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Total returns the amount due for the order, rounded to cents.
func (o *Order) Total() float64 {
	return RoundMoney(o.Price * float64(o.Quantity))
}

// RoundMoney rounds a dollar amount to two decimal places.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// CreateOrderRequest is the buyer payload for placing an order. Quantity is
// capped at 50 per order; the address minimum matches the client-side rule.
type CreateOrderRequest struct {
	FoodID      string `json:"foodId" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,min=1,max=50"`
	UserAddress string `json:"userAddress" validate:"required,min=10"`
}

// UpdateOrderStatusRequest is the chef payload for moving an order through
// its lifecycle.
type UpdateOrderStatusRequest struct {
	OrderStatus string `json:"orderStatus" validate:"required,oneof=accepted delivered cancelled"`
}

// CheckoutRequest is the payload for starting a payment redirect.
type CheckoutRequest struct {
	OrderID     string  `json:"id" validate:"required"`
	SenderEmail string  `json:"senderEmail" validate:"required,email"`
	Cost        float64 `json:"cost" validate:"required,gt=0"`
}

// CheckoutResponse carries the hosted payment page the client navigates to.
type CheckoutResponse struct {
	URL string `json:"url"`
}
