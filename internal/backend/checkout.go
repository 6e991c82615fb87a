package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"hmade-storefront/internal/auth"
	"hmade-storefront/internal/checkout"
)

// OrderPreview prices the given cart lines. No ids previews the whole cart.
func (c *Client) OrderPreview(ctx context.Context, sess auth.Session, itemIDs []string) (*checkout.Preview, error) {
	var q url.Values
	if len(itemIDs) > 0 {
		q = url.Values{"item_ids": {strings.Join(itemIDs, ",")}}
	}

	var out checkout.Preview
	err := c.do(ctx, call{name: "checkout.preview", method: http.MethodGet, path: "checkout/order-preview", query: q, sess: authed(sess)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ShippingRates(ctx context.Context, sess auth.Session, req checkout.RatesRequest) (*checkout.RatesResponse, error) {
	var out checkout.RatesResponse
	err := c.do(ctx, call{name: "checkout.rates", method: http.MethodPost, path: "checkout/shipping-rates", body: req, sess: authed(sess)}, &out)
	if err != nil {
		return nil, err
	}
	if out.Rates == nil {
		out.Rates = []checkout.ShippingRate{}
	}
	return &out, nil
}

func (c *Client) CreateCheckout(ctx context.Context, sess auth.Session, req checkout.Request) (*checkout.Response, error) {
	var out checkout.Response
	err := c.do(ctx, call{name: "checkout.create", method: http.MethodPost, path: "checkout/", body: req, sess: authed(sess)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyGatewayReturn forwards the gateway's signed query untouched; re-encoding
// it would break the signature.
func (c *Client) VerifyGatewayReturn(ctx context.Context, sess auth.Session, rawQuery string) (*checkout.GatewayResult, error) {
	var out checkout.GatewayResult
	err := c.do(ctx, call{name: "checkout.vnpay_return", method: http.MethodGet, path: "checkout/vnpay-return", rawQuery: rawQuery, sess: authed(sess)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
