package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/toykart/storefront/internal/model"
)

// WishlistRepositoryInterface defines the interface for wishlist data access.
type WishlistRepositoryInterface interface {
	ListByUser(ctx context.Context, userID string) ([]model.WishlistLine, error)
	Insert(ctx context.Context, item *model.WishlistItem) error
	Delete(ctx context.Context, userID, productID string) (bool, error)
}

// WishlistService provides wishlist operations scoped to the calling user.
type WishlistService struct {
	wishlists WishlistRepositoryInterface
	products  ProductRepositoryInterface
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(wishlists WishlistRepositoryInterface, products ProductRepositoryInterface) *WishlistService {
	return &WishlistService{wishlists: wishlists, products: products}
}

// List returns the user's wishlist with product details.
func (s *WishlistService) List(ctx context.Context, userID string) ([]model.WishlistLine, error) {
	return s.wishlists.ListByUser(ctx, userID)
}

// Add saves a product to the wishlist. Re-adding is a no-op.
// Returns ErrProductNotFound for an unknown product.
func (s *WishlistService) Add(ctx context.Context, userID string, req *model.AddToWishlistRequest) error {
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

	item := &model.WishlistItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: req.ProductID,
	}
	return s.wishlists.Insert(ctx, item)
}

// Remove deletes a product from the user's wishlist.
// Returns ErrProductNotFound when it wasn't on the list.
func (s *WishlistService) Remove(ctx context.Context, userID, productID string) error {
	ok, err := s.wishlists.Delete(ctx, userID, productID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	return nil
}
