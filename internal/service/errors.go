package service

import "errors"

// Caller-facing errors. Handlers map these onto HTTP status codes; anything
// not in this list is a persistence or upstream failure and surfaces as 500.
var (
	// validation
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidQuantity = errors.New("invalid product ID or quantity")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrSelfDelete      = errors.New("cannot delete your own admin account")
	ErrEmailRegistered = errors.New("email already registered")
	ErrUsernameTaken   = errors.New("username already taken")

	// not found
	ErrProductNotFound   = errors.New("product not found")
	ErrCartNotFound      = errors.New("cart not found")
	ErrCartItemNotFound  = errors.New("item not found in cart")
	ErrOrderNotFound     = errors.New("order not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrComplaintNotFound = errors.New("complaint not found")

	// authentication
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSignature   = errors.New("invalid signature")
)
