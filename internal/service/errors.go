package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned when request data is invalid or incomplete
	ErrInvalidRequest = errors.New("invalid request")

	// ErrEmailTaken is returned when registering with an email that already has an account
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on login with a wrong email or password
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrNotAuthorized is returned when the caller lacks the required role
	ErrNotAuthorized = errors.New("not authorized")

	// ErrRootAdminImmutable is returned when attempting to revoke the root admin
	ErrRootAdminImmutable = errors.New("root admin cannot be revoked")

	// ErrProductNotFound is returned when a product cannot be found
	ErrProductNotFound = errors.New("product not found")

	// ErrProductOutOfStock is returned when adding an out-of-stock product to the cart
	ErrProductOutOfStock = errors.New("product out of stock")

	// ErrCartItemNotFound is returned when a cart line cannot be found for the user
	ErrCartItemNotFound = errors.New("cart item not found")

	// ErrCartEmpty is returned when checkout is attempted with an empty cart
	ErrCartEmpty = errors.New("cart is empty")

	// ErrCouponNotFound is returned for an unknown or inactive coupon code
	ErrCouponNotFound = errors.New("invalid coupon code")

	// ErrCouponExists is returned when creating a coupon whose code is already taken
	ErrCouponExists = errors.New("coupon code already exists")

	// ErrCouponExpired is returned when the current time is outside the
	// coupon's validity window
	ErrCouponExpired = errors.New("coupon has expired or is not yet valid")

	// ErrCouponUsageLimit is returned when a coupon has reached its usage cap
	ErrCouponUsageLimit = errors.New("coupon has reached its usage limit")

	// ErrOrderNotFound is returned when an order cannot be found
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidTransition is returned for a disallowed order status change
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrBannerNotFound is returned when no announcement banner row exists
	ErrBannerNotFound = errors.New("announcement banner not found")
)

// MinPurchaseError is returned when the cart subtotal is below a coupon's
// minimum purchase amount. It carries the amount for the user-facing
// message.
type MinPurchaseError struct {
	Amount float64
}

func (e *MinPurchaseError) Error() string {
	return fmt.Sprintf("minimum purchase amount of ₹%.2f required", e.Amount)
}

// InsufficientStockError is returned when a checkout line requests more
// units than are available. The whole checkout rolls back when it occurs.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d",
		e.ProductName, e.Available, e.Requested)
}
