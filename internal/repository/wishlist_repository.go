package repository

import (
	"context"
	"fmt"

	"github.com/toykart/storefront/internal/model"
)

// WishlistRepository provides data access for wishlist entries.
type WishlistRepository struct {
	pool Pool
}

// NewWishlistRepository creates a new WishlistRepository with the given pool.
func NewWishlistRepository(pool Pool) *WishlistRepository {
	return &WishlistRepository{pool: pool}
}

// ListByUser returns a user's wishlist joined with products, newest first.
func (r *WishlistRepository) ListByUser(ctx context.Context, userID string) ([]model.WishlistLine, error) {
	query := `
		SELECT wi.id, wi.user_id, wi.product_id, wi.created_at,
		       p.id, p.name, p.description, p.brand, p.sub_brand, p.category, p.age_range,
		       p.barcode, p.mrp, p.discount_price, p.stock_quantity, p.image_url,
		       p.created_at, p.updated_at
		FROM wishlist_items wi
		JOIN products p ON p.id = wi.product_id
		WHERE wi.user_id = $1
		ORDER BY wi.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist for %s: %w", userID, err)
	}
	defer rows.Close()

	lines := []model.WishlistLine{}
	for rows.Next() {
		var l model.WishlistLine
		err := rows.Scan(
			&l.ID, &l.UserID, &l.ProductID, &l.CreatedAt,
			&l.Product.ID, &l.Product.Name, &l.Product.Description, &l.Product.Brand,
			&l.Product.SubBrand, &l.Product.Category, &l.Product.AgeRange,
			&l.Product.Barcode, &l.Product.MRP, &l.Product.DiscountPrice,
			&l.Product.StockQuantity, &l.Product.ImageURL,
			&l.Product.CreatedAt, &l.Product.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan wishlist line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishlist rows: %w", err)
	}
	return lines, nil
}

// Insert saves a product to the wishlist. Re-adding is a no-op.
func (r *WishlistRepository) Insert(ctx context.Context, item *model.WishlistItem) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO wishlist_items (id, user_id, product_id) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, product_id) DO NOTHING`,
		item.ID, item.UserID, item.ProductID)
	if err != nil {
		return fmt.Errorf("insert wishlist item: %w", err)
	}
	return nil
}

// Delete removes a product from a user's wishlist.
// Returns false when nothing was deleted.
func (r *WishlistRepository) Delete(ctx context.Context, userID, productID string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID)
	if err != nil {
		return false, fmt.Errorf("delete wishlist item: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
