package cart

import "errors"

var (
	// -- Validation & Input --
	ErrNothingSelected = errors.New("select at least one cart item")

	// -- Resource State --
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrRowBusy          = errors.New("cart item is being updated")
	ErrViewClosed       = errors.New("cart view is closed")
)
