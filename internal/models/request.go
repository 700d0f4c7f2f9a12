package models

import "time"

// Role request lifecycle.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// RoleRequest is a user's pending ask to be upgraded to chef or admin.
// Approval flips the user's role; rejection leaves it untouched.
type RoleRequest struct {
	ID            string    `json:"id"`
	UserName      string    `json:"userName"`
	UserEmail     string    `json:"userEmail"`
	RequestType   string    `json:"requestType"` // chef | admin
	RequestStatus string    `json:"requestStatus"`
	RequestTime   time.Time `json:"requestTime"`
}

// CreateRoleRequest is the payload for asking for an upgrade.
type CreateRoleRequest struct {
	UserName    string `json:"userName" validate:"required"`
	UserEmail   string `json:"userEmail" validate:"required,email"`
	RequestType string `json:"requestType" validate:"required,oneof=chef admin"`
}

// ApproveRequestBody names the role being granted; it must match the request
// record so a stale admin screen cannot grant the wrong role.
type ApproveRequestBody struct {
	RequestType string `json:"requestType" validate:"required,oneof=chef admin"`
}
