package order

import "errors"

var (
	ErrOrderIDRequired = errors.New("order id is required")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrNotCancellable  = errors.New("only pending orders can be cancelled")
)
