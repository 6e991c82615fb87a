package product

import "errors"

var (
	ErrProductIDRequired = errors.New("product id is required")
	ErrProductNotFound   = errors.New("product not found")
)
