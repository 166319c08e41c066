package model

import "time"

// Order statuses. Transitions are pending → processing → shipped →
// delivered; cancelled is reachable from any non-terminal state.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// statusTransitions maps each status to the statuses it may move to.
var statusTransitions = map[string][]string{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered, OrderCancelled},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is a persisted order with its shipping details. TotalAmount is
// always Subtotal + ShippingFee - DiscountAmount.
type Order struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	OrderNumber    string    `json:"order_number"`
	Status         string    `json:"status"`
	Subtotal       float64   `json:"subtotal"`
	ShippingFee    float64   `json:"shipping_fee"`
	DiscountAmount float64   `json:"discount_amount"`
	TotalAmount    float64   `json:"total_amount"`
	CouponID       *string   `json:"coupon_id,omitempty"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	Pincode        string    `json:"pincode"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem is one line of an order, priced at checkout time.
type OrderItem struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

// CheckoutRequest is the DTO for placing an order. This is the single
// validation boundary for the loosely-typed form the storefront submits.
type CheckoutRequest struct {
	FullName   string `json:"full_name" validate:"required,notblank,max=100"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Phone      string `json:"phone" validate:"required,min=10,max=15"`
	Address    string `json:"address" validate:"required,min=10,max=500"`
	City       string `json:"city" validate:"required,notblank,max=100"`
	State      string `json:"state" validate:"required,notblank,max=100"`
	Pincode    string `json:"pincode" validate:"required,len=6,numeric"`
	Notes      string `json:"notes" validate:"max=500"`
	CouponCode string `json:"coupon_code" validate:"omitempty,max=64"`
}

// QuoteRequest is the DTO for previewing checkout totals, optionally with
// a coupon applied.
type QuoteRequest struct {
	CouponCode string `json:"coupon_code" validate:"omitempty,max=64"`
}

// Quote is the server-computed price breakdown for the current cart.
type Quote struct {
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	Discount   float64 `json:"discount"`
	Total      float64 `json:"total"`
	CouponCode string  `json:"coupon_code,omitempty"`
}

// UpdateOrderStatusRequest is the admin DTO for moving an order through
// its lifecycle.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}
