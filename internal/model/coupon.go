package model

import "time"

// Discount types for coupons.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Coupon represents a discount code. Codes are stored uppercase and
// matched exactly. MaxUses of nil means uncapped; MinPurchaseAmount and
// MaxDiscountAmount of nil mean no floor/ceiling.
type Coupon struct {
	ID                string    `json:"id"`
	Code              string    `json:"code"`
	DiscountType      string    `json:"discount_type"`
	DiscountValue     float64   `json:"discount_value"`
	MaxUses           *int      `json:"max_uses,omitempty"`
	CurrentUses       int       `json:"current_uses"`
	ValidFrom         time.Time `json:"valid_from"`
	ValidUntil        time.Time `json:"valid_until"`
	MinPurchaseAmount *float64  `json:"min_purchase_amount,omitempty"`
	MaxDiscountAmount *float64  `json:"max_discount_amount,omitempty"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
}

// CouponUsage records one successful redemption against an order.
type CouponUsage struct {
	ID             string    `json:"id"`
	CouponID       string    `json:"coupon_id"`
	UserID         string    `json:"user_id"`
	OrderID        string    `json:"order_id"`
	DiscountAmount float64   `json:"discount_amount"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateCouponRequest is the admin DTO for creating a coupon.
type CreateCouponRequest struct {
	Code              string   `json:"code" validate:"required,notblank,max=64"`
	DiscountType      string   `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue     *float64 `json:"discount_value" validate:"required,gt=0"`
	MaxUses           *int     `json:"max_uses" validate:"omitempty,gte=1"`
	ValidFrom         string   `json:"valid_from" validate:"required"`
	ValidUntil        string   `json:"valid_until" validate:"required"`
	MinPurchaseAmount *float64 `json:"min_purchase_amount" validate:"omitempty,gt=0"`
	MaxDiscountAmount *float64 `json:"max_discount_amount" validate:"omitempty,gt=0"`
	IsActive          *bool    `json:"is_active"`
}

// UpdateCouponRequest is the admin DTO for editing a coupon. Nil fields
// are left unchanged.
type UpdateCouponRequest struct {
	DiscountType      *string  `json:"discount_type" validate:"omitempty,oneof=percentage fixed"`
	DiscountValue     *float64 `json:"discount_value" validate:"omitempty,gt=0"`
	MaxUses           *int     `json:"max_uses" validate:"omitempty,gte=1"`
	ValidFrom         *string  `json:"valid_from"`
	ValidUntil        *string  `json:"valid_until"`
	MinPurchaseAmount *float64 `json:"min_purchase_amount" validate:"omitempty,gte=0"`
	MaxDiscountAmount *float64 `json:"max_discount_amount" validate:"omitempty,gte=0"`
	IsActive          *bool    `json:"is_active"`
}
