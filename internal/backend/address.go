package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"hmade-storefront/internal/address"
	"hmade-storefront/internal/auth"
)

func (c *Client) ListAddresses(ctx context.Context, sess auth.Session) ([]address.Address, error) {
	var out []address.Address
	if err := c.do(ctx, call{name: "addresses.list", method: http.MethodGet, path: "addresses/", sess: authed(sess)}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []address.Address{}
	}
	return out, nil
}

func (c *Client) CreateAddress(ctx context.Context, sess auth.Session, in address.CreateInput) (*address.Address, error) {
	var out address.Address
	err := c.do(ctx, call{name: "addresses.create", method: http.MethodPost, path: "addresses/", body: in, sess: authed(sess)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAddress(ctx context.Context, sess auth.Session, id string, in address.UpdateInput) (*address.Address, error) {
	p, err := escaped(id)
	if err != nil {
		return nil, err
	}

	var out address.Address
	err = c.do(ctx, call{name: "addresses.update", method: http.MethodPut, path: "addresses/" + p, body: in, sess: authed(sess)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAddress(ctx context.Context, sess auth.Session, id string) error {
	p, err := escaped(id)
	if err != nil {
		return err
	}
	return c.do(ctx, call{name: "addresses.delete", method: http.MethodDelete, path: "addresses/" + p, sess: authed(sess)}, nil)
}

// -- Locations (public) --

func (c *Client) Cities(ctx context.Context) ([]address.Location, error) {
	return c.locations(ctx, "goship.cities", "goship/cities")
}

func (c *Client) Districts(ctx context.Context, cityID int) ([]address.Location, error) {
	return c.locations(ctx, "goship.districts", "goship/cities/"+strconv.Itoa(cityID)+"/districts")
}

func (c *Client) Wards(ctx context.Context, districtID int) ([]address.Location, error) {
	return c.locations(ctx, "goship.wards", "goship/districts/"+strconv.Itoa(districtID)+"/wards")
}

func (c *Client) locations(ctx context.Context, name, path string) ([]address.Location, error) {
	var raw json.RawMessage
	if err := c.do(ctx, call{name: name, method: http.MethodGet, path: path}, &raw); err != nil {
		return nil, err
	}
	out, err := decodeLocations(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s response: %w", name, err)
	}
	return out, nil
}

// decodeLocations accepts both a bare array and the {data: [...]} envelope.
func decodeLocations(raw json.RawMessage) ([]address.Location, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []address.Location{}, nil
	}

	var out []address.Location
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
	} else {
		var envelope struct {
			Data []address.Location `json:"data"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, err
		}
		out = envelope.Data
	}

	if out == nil {
		out = []address.Location{}
	}
	return out, nil
}
