package models

import "time"

// Roles assigned server-side. Every role-gated route matches one exact role
// string; there is no hierarchy (an admin is not implicitly a chef).
const (
	RoleUser  = "user"
	RoleChef  = "chef"
	RoleAdmin = "admin"
)

// Account statuses. A fraud-flagged chef keeps their account but their meals
// disappear from the public catalog.
const (
	StatusActive = "active"
	StatusFraud  = "fraud"
)

// User represents a marketplace account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Photo        string    `json:"photo,omitempty"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	PhotoURL string `json:"photoUrl" validate:"required,url"`
}

// LoginRequest is the payload for signing in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the signed token plus the account it belongs to.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UpsertUserRequest is the payload for recording an account on first
// sign-in. Existing accounts are returned unchanged.
type UpsertUserRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	PhotoURL string `json:"photoUrl" validate:"omitempty,url"`
}

// UpdateProfileRequest updates the display fields of the caller's account.
type UpdateProfileRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	PhotoURL string `json:"photoUrl" validate:"omitempty,url"`
}

// UpdateFraudStatusRequest is the admin payload for flagging an account.
type UpdateFraudStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active fraud"`
}

// RoleResponse is the shape of the role-lookup endpoint.
type RoleResponse struct {
	Role string `json:"role"`
}
