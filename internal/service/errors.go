package service

import "errors"

// Domain errors surfaced by the order/inventory/sales core. Handlers select
// the HTTP status with errors.Is; the wrapped message carries the offending
// identifier. Anything not in this list is treated as an internal
// persistence failure and surfaced as a generic error.
var (
	ErrSelfTrade              = errors.New("a seller cannot buy their own products")
	ErrProductNotFound        = errors.New("product not found or inactive")
	ErrInsufficientStock      = errors.New("insufficient stock remaining")
	ErrOwnershipViolation     = errors.New("actor does not own this resource")
	ErrInvalidStateTransition = errors.New("order state does not allow this transition")
	ErrOrderNotFound          = errors.New("order not found")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrEmailTaken         = errors.New("email already registered")
	ErrRoleNotAllowed     = errors.New("role must be buyer or seller")
)
