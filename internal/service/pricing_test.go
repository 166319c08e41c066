package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toykart/storefront/internal/model"
)

func TestShippingFor(t *testing.T) {
	p := Pricing{ShippingFee: 50, FreeShippingThreshold: 500}

	assert.Equal(t, float64(50), p.ShippingFor(100))
	assert.Equal(t, float64(50), p.ShippingFor(500), "threshold itself still pays shipping")
	assert.Equal(t, float64(0), p.ShippingFor(500.01))
	assert.Equal(t, float64(0), p.ShippingFor(800))
}

func TestSubtotal_EffectivePrices(t *testing.T) {
	lines := []model.CartLine{
		{
			CartItem: model.CartItem{Quantity: 2},
			Product:  model.Product{MRP: 500, DiscountPrice: floatPtr(400)},
		},
		{
			CartItem: model.CartItem{Quantity: 1},
			Product:  model.Product{MRP: 150},
		},
	}

	assert.Equal(t, float64(950), Subtotal(lines))
}

func TestSubtotal_IgnoresInvalidDiscount(t *testing.T) {
	lines := []model.CartLine{
		{
			// discount above MRP is treated as no discount
			CartItem: model.CartItem{Quantity: 1},
			Product:  model.Product{MRP: 100, DiscountPrice: floatPtr(150)},
		},
	}

	assert.Equal(t, float64(100), Subtotal(lines))
}
