package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"hmade-storefront/internal/auth"
	"hmade-storefront/internal/order"
)

func pageQuery(skip, limit int) url.Values {
	return url.Values{
		"skip":  {strconv.Itoa(skip)},
		"limit": {strconv.Itoa(limit)},
	}
}

// -- Customer --

func (c *Client) ListMyOrders(ctx context.Context, sess auth.Session, skip, limit int) ([]order.Order, error) {
	var out []order.Order
	err := c.do(ctx, call{name: "orders.mine", method: http.MethodGet, path: "orders/my-orders", query: pageQuery(skip, limit), sess: authed(sess)}, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []order.Order{}
	}
	return out, nil
}

func (c *Client) GetMyOrder(ctx context.Context, sess auth.Session, id string) (*order.Order, error) {
	p, err := escaped(id)
	if err != nil {
		return nil, err
	}

	var out order.Order
	if err := c.do(ctx, call{name: "orders.mine.get", method: http.MethodGet, path: "orders/my-orders/" + p, sess: authed(sess)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelMyOrder(ctx context.Context, sess auth.Session, id string) (*order.Message, error) {
	p, err := escaped(id)
	if err != nil {
		return nil, err
	}

	var out order.Message
	if err := c.do(ctx, call{name: "orders.mine.cancel", method: http.MethodPost, path: "orders/my-orders/" + p + "/cancel", sess: authed(sess)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// -- Admin --

func (c *Client) AdminListOrders(ctx context.Context, sess auth.Session, params order.ListParams) (*order.Page, error) {
	q := pageQuery(params.Skip, params.Limit)
	if params.Status != "" {
		q.Set("status_filter", string(params.Status))
	}

	var out order.Page
	if err := c.do(ctx, call{name: "orders.admin.list", method: http.MethodGet, path: "orders/", query: q, sess: authed(sess)}, &out); err != nil {
		return nil, err
	}
	if out.Orders == nil {
		out.Orders = []order.Order{}
	}
	return &out, nil
}

func (c *Client) AdminGetOrder(ctx context.Context, sess auth.Session, id string) (*order.Order, error) {
	p, err := escaped(id)
	if err != nil {
		return nil, err
	}

	var out order.Order
	if err := c.do(ctx, call{name: "orders.admin.get", method: http.MethodGet, path: "orders/" + p, sess: authed(sess)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminUpdateStatus(ctx context.Context, sess auth.Session, id string, status order.Status) (*order.StatusUpdate, error) {
	p, err := escaped(id)
	if err != nil {
		return nil, err
	}

	body := map[string]string{"status": string(status)}

	var out order.StatusUpdate
	if err := c.do(ctx, call{name: "orders.admin.status", method: http.MethodPatch, path: "orders/" + p + "/status", body: body, sess: authed(sess)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// -- Shipments --

func (c *Client) CreateShipment(ctx context.Context, sess auth.Session, req order.ShipmentRequest) (*order.Shipment, error) {
	var out order.Shipment
	if err := c.do(ctx, call{name: "goship.shipments.create", method: http.MethodPost, path: "goship/shipments", body: req, sess: authed(sess)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TrackShipment(ctx context.Context, sess auth.Session, orderID string) (*order.Shipment, error) {
	p, err := escaped(orderID)
	if err != nil {
		return nil, err
	}

	var out order.Shipment
	if err := c.do(ctx, call{name: "goship.shipments.track", method: http.MethodGet, path: "goship/shipments/" + p + "/tracking", sess: authed(sess)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelShipment(ctx context.Context, sess auth.Session, orderID string) (*order.Shipment, error) {
	p, err := escaped(orderID)
	if err != nil {
		return nil, err
	}

	var out order.Shipment
	if err := c.do(ctx, call{name: "goship.shipments.cancel", method: http.MethodPatch, path: "goship/shipments/" + p + "/cancel", sess: authed(sess)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
