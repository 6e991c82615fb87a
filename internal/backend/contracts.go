package backend

import (
	"hmade-storefront/internal/address"
	"hmade-storefront/internal/cart"
	"hmade-storefront/internal/checkout"
	"hmade-storefront/internal/order"
	"hmade-storefront/internal/product"
	"hmade-storefront/internal/search"
)

var (
	_ cart.Backend     = (*Client)(nil)
	_ product.Fetcher  = (*Client)(nil)
	_ address.Backend  = (*Client)(nil)
	_ checkout.Backend = (*Client)(nil)
	_ order.Backend    = (*Client)(nil)
	_ search.Backend   = (*Client)(nil)
)
