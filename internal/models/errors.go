package models

import "errors"

var ErrNotFound = errors.New("requested resource not found")
var ErrForbidden = errors.New("user does not have permission to access this resource")
var ErrConflict = errors.New("resource conflict, item already exists")
var ErrInvalidToken = errors.New("token not found or expired")
var ErrInvalidCredentials = errors.New("invalid credentials") // email or password provided does not match database record
var ErrEmailTaken = errors.New("an account with this email already exists")

// ErrInvalidTransition indicates that the requested order status change is not
// allowed from the order's current status.
var ErrInvalidTransition = errors.New("invalid order status transition")

// ErrOrderNotPayable covers both an order still waiting for the chef's
// decision and an order that has already been paid.
var ErrOrderNotPayable = errors.New("order cannot be paid in its current state")

var ErrRequestPending = errors.New("a role request from this user is already pending")
