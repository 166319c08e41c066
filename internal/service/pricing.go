package service

import "github.com/toykart/storefront/internal/model"

// Pricing holds the checkout pricing rules: a flat shipping fee waived
// once the subtotal exceeds the free-shipping threshold.
type Pricing struct {
	ShippingFee           float64
	FreeShippingThreshold float64
}

// ShippingFor returns the shipping fee for a subtotal.
func (p Pricing) ShippingFor(subtotal float64) float64 {
	if subtotal > p.FreeShippingThreshold {
		return 0
	}
	return p.ShippingFee
}

// Subtotal sums the line totals of a cart at effective unit prices.
func Subtotal(lines []model.CartLine) float64 {
	var sum float64
	for i := range lines {
		sum += lines[i].LineTotal()
	}
	return sum
}
