package model

import "time"

// CartItem is one row of a user's cart, mirroring the cart_items table.
type CartItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartLine is a cart item joined with its product, as served to clients
// and consumed by checkout.
type CartLine struct {
	CartItem
	Product Product `json:"product"`
}

// LineTotal is the effective unit price times quantity.
func (l *CartLine) LineTotal() float64 {
	return l.Product.EffectivePrice() * float64(l.Quantity)
}

// CartResponse is the API response for GET /api/cart. Totals are computed
// server-side so clients never do price arithmetic.
type CartResponse struct {
	Items    []CartLine `json:"items"`
	Subtotal float64    `json:"subtotal"`
	Shipping float64    `json:"shipping"`
	Total    float64    `json:"total"`
}

// AddToCartRequest is the DTO for adding a product to the cart. Quantity
// accumulates onto any existing line for the same product.
type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,gte=1,lte=99"`
}

// UpdateCartItemRequest is the DTO for changing a line's quantity.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1,lte=99"`
}

// WishlistItem is one row of a user's wishlist.
type WishlistItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// WishlistLine is a wishlist item joined with its product.
type WishlistLine struct {
	WishlistItem
	Product Product `json:"product"`
}

// AddToWishlistRequest is the DTO for saving a product to the wishlist.
type AddToWishlistRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
}
