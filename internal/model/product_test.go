package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	price := func(f float64) *float64 { return &f }

	cases := []struct {
		name    string
		product Product
		want    float64
	}{
		{name: "no_discount", product: Product{MRP: 500}, want: 500},
		{name: "discounted", product: Product{MRP: 500, DiscountPrice: price(400)}, want: 400},
		{name: "zero_discount_ignored", product: Product{MRP: 500, DiscountPrice: price(0)}, want: 500},
		{name: "discount_above_mrp_ignored", product: Product{MRP: 500, DiscountPrice: price(600)}, want: 500},
		{name: "discount_equal_mrp_ignored", product: Product{MRP: 500, DiscountPrice: price(500)}, want: 500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.product.EffectivePrice())
		})
	}
}

func TestCartLineTotal(t *testing.T) {
	price := func(f float64) *float64 { return &f }

	line := CartLine{
		CartItem: CartItem{Quantity: 3},
		Product:  Product{MRP: 500, DiscountPrice: price(400)},
	}
	assert.Equal(t, float64(1200), line.LineTotal())
}
