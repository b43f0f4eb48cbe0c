package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrEmptyCart indicates an order was submitted with no resolvable items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrOrderNotPending indicates a transition was requested on an order
	// already in a terminal state.
	ErrOrderNotPending = errors.New("order is not pending")
	// ErrInvalidOrderRef indicates a gateway order reference that does not
	// match the expected format.
	ErrInvalidOrderRef = errors.New("invalid gateway order reference")
	// ErrUnknownGatewayStatus indicates a transaction status this service
	// has no mapping for.
	ErrUnknownGatewayStatus = errors.New("unknown gateway transaction status")
	// ErrNotSuccessful indicates an operation that requires a paid order.
	ErrNotSuccessful = errors.New("order payment not completed")
	// ErrInsufficientBalance indicates a withdrawal exceeding the available balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
