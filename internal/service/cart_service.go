package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/toykart/storefront/internal/model"
	"github.com/toykart/storefront/pkg/database"
)

// CartRepositoryInterface defines the interface for cart data access.
type CartRepositoryInterface interface {
	ListByUser(ctx context.Context, userID string) ([]model.CartLine, error)
	Upsert(ctx context.Context, item *model.CartItem) error
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (bool, error)
	Delete(ctx context.Context, userID, itemID string) (bool, error)
	Clear(ctx context.Context, q database.TxQuerier, userID string) error
}

// CartService provides cart operations scoped to the calling user.
type CartService struct {
	carts    CartRepositoryInterface
	products ProductRepositoryInterface
	pool     database.TxQuerier
	pricing  Pricing
}

// NewCartService creates a new CartService.
func NewCartService(carts CartRepositoryInterface, products ProductRepositoryInterface, pool database.TxQuerier, pricing Pricing) *CartService {
	return &CartService{carts: carts, products: products, pool: pool, pricing: pricing}
}

// GetCart returns the user's cart lines with server-computed totals.
func (s *CartService) GetCart(ctx context.Context, userID string) (*model.CartResponse, error) {
	lines, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	subtotal := Subtotal(lines)
	shipping := s.pricing.ShippingFor(subtotal)
	return &model.CartResponse{
		Items:    lines,
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}, nil
}

// AddItem adds a product to the cart, accumulating quantity onto an
// existing line.
// Returns ErrProductNotFound for an unknown product and
// ErrProductOutOfStock when the product has no stock at all.
func (s *CartService) AddItem(ctx context.Context, userID string, req *model.AddToCartRequest) error {
	if req == nil {
		return ErrInvalidRequest
	}

	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if product.StockQuantity <= 0 {
		return ErrProductOutOfStock
	}

	item := &model.CartItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	return s.carts.Upsert(ctx, item)
}

// UpdateQuantity sets a cart line's quantity.
// Returns ErrCartItemNotFound when the line doesn't exist for this user.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	ok, err := s.carts.UpdateQuantity(ctx, userID, itemID, quantity)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCartItemNotFound
	}
	return nil
}

// RemoveItem deletes a cart line.
// Returns ErrCartItemNotFound when the line doesn't exist for this user.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) error {
	ok, err := s.carts.Delete(ctx, userID, itemID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCartItemNotFound
	}
	return nil
}

// ClearCart removes everything from the user's cart.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	return s.carts.Clear(ctx, s.pool, userID)
}
