package validation

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string `json:"name" validate:"required"`
	Qty    int    `json:"quantity" validate:"gte=1"`
	Method string `json:"payment_method" validate:"omitempty,oneof=cod vnpay"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(sample{Name: "a", Qty: 1}))

	err := Struct(sample{Qty: 0, Method: "card"})
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "is required", verr.Fields["name"])
	assert.Equal(t, "must be at least 1", verr.Fields["quantity"])
	assert.Equal(t, "must be one of [cod vnpay]", verr.Fields["payment_method"])
	assert.Equal(t, "validation failed: name is required, payment_method must be one of [cod vnpay], quantity must be at least 1", verr.Error())
}

func TestDecodeJSONBody(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x","quantity":2}`))
		var s sample
		require.NoError(t, DecodeJSONBody(req, &s))
		assert.Equal(t, 2, s.Qty)
	})

	t.Run("Unknown field", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x","quantity":2,"extra":1}`))
		var s sample
		assert.ErrorIs(t, DecodeJSONBody(req, &s), ErrInvalidBody)
	})

	t.Run("Invalid", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"quantity":2}`))
		var s sample
		var verr *Error
		assert.ErrorAs(t, DecodeJSONBody(req, &s), &verr)
	})
}
