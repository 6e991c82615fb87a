package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"hmade-storefront/internal/auth"
	"hmade-storefront/internal/product"
)

// GetProduct reads a public product. The session is accepted to satisfy the
// catalog contract but is not sent.
func (c *Client) GetProduct(ctx context.Context, _ auth.Session, id string) (*product.Product, error) {
	p, err := escaped(id)
	if err != nil {
		return nil, err
	}

	var out product.Product
	if err := c.do(ctx, call{name: "products.get", method: http.MethodGet, path: "products/" + p}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchProducts(ctx context.Context, keyword string, skip, limit int) ([]product.Product, error) {
	q := url.Values{}
	q.Set("keyword", keyword)
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	var out []product.Product
	if err := c.do(ctx, call{name: "products.search", method: http.MethodGet, path: "products/search", query: q}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []product.Product{}
	}
	return out, nil
}
