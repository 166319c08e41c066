package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toykart/storefront/internal/model"
	"github.com/toykart/storefront/internal/validator"
)

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"CouponCode":    "coupon_code",
		"FullName":      "full_name",
		"Email":         "email",
		"MRP":           "mrp",
		"ImageURL":      "image_url",
		"StockQuantity": "stock_quantity",
	}
	for in, want := range cases {
		assert.Equal(t, want, snakeCase(in), "snakeCase(%q)", in)
	}
}

func TestFormatValidationError_NamesField(t *testing.T) {
	v := validator.New()

	err := v.Struct(model.GrantAdminRequest{Email: "nope"})
	assert.Equal(t, "invalid request: email must be a valid email address", formatValidationError(err))

	err = v.Struct(model.CheckoutRequest{})
	assert.Equal(t, "invalid request: full_name is required", formatValidationError(err))
}
