package backend

import (
	"context"
	"net/http"

	"hmade-storefront/internal/auth"
	"hmade-storefront/internal/cart"
)

func (c *Client) GetCart(ctx context.Context, sess auth.Session) (*cart.ServerCart, error) {
	var out cart.ServerCart
	err := c.do(ctx, call{name: "cart.get", method: http.MethodGet, path: "cart/", sess: authed(sess)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddCartItem(ctx context.Context, sess auth.Session, in cart.AddInput) (*cart.Mutation, error) {
	var out cart.Mutation
	err := c.do(ctx, call{name: "cart.add", method: http.MethodPost, path: "cart/items", body: in, sess: authed(sess)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCartItem(ctx context.Context, sess auth.Session, id string, quantity int) (*cart.Mutation, error) {
	p, err := escaped(id)
	if err != nil {
		return nil, err
	}

	var out cart.Mutation
	err = c.do(ctx, call{
		name:   "cart.update",
		method: http.MethodPatch,
		path:   "cart/items/" + p,
		body:   cart.UpdateInput{Quantity: quantity},
		sess:   authed(sess),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCartItem(ctx context.Context, sess auth.Session, id string) (*cart.Mutation, error) {
	p, err := escaped(id)
	if err != nil {
		return nil, err
	}

	var out cart.Mutation
	err = c.do(ctx, call{name: "cart.delete", method: http.MethodDelete, path: "cart/items/" + p, sess: authed(sess)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ClearCart(ctx context.Context, sess auth.Session) error {
	return c.do(ctx, call{name: "cart.clear", method: http.MethodDelete, path: "cart/", sess: authed(sess)}, nil)
}
