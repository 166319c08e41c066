package repository

import (
	"context"
	"fmt"

	"github.com/toykart/storefront/internal/model"
	"github.com/toykart/storefront/pkg/database"
)

// CartRepository provides data access for cart lines.
type CartRepository struct {
	pool Pool
}

// NewCartRepository creates a new CartRepository with the given pool.
func NewCartRepository(pool Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

// ListByUser returns a user's cart lines joined with their products,
// oldest first. Returns an empty slice (not nil) when the cart is empty.
func (r *CartRepository) ListByUser(ctx context.Context, userID string) ([]model.CartLine, error) {
	query := `
		SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
		       p.id, p.name, p.description, p.brand, p.sub_brand, p.category, p.age_range,
		       p.barcode, p.mrp, p.discount_price, p.stock_quantity, p.image_url,
		       p.created_at, p.updated_at
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart for %s: %w", userID, err)
	}
	defer rows.Close()

	lines := []model.CartLine{}
	for rows.Next() {
		var l model.CartLine
		err := rows.Scan(
			&l.ID, &l.UserID, &l.ProductID, &l.Quantity, &l.CreatedAt, &l.UpdatedAt,
			&l.Product.ID, &l.Product.Name, &l.Product.Description, &l.Product.Brand,
			&l.Product.SubBrand, &l.Product.Category, &l.Product.AgeRange,
			&l.Product.Barcode, &l.Product.MRP, &l.Product.DiscountPrice,
			&l.Product.StockQuantity, &l.Product.ImageURL,
			&l.Product.CreatedAt, &l.Product.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart rows: %w", err)
	}
	return lines, nil
}

// Upsert adds a product to the cart, accumulating quantity onto an
// existing line for the same product.
func (r *CartRepository) Upsert(ctx context.Context, item *model.CartItem) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO cart_items (id, user_id, product_id, quantity)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, product_id) DO UPDATE
		 SET quantity = cart_items.quantity + EXCLUDED.quantity,
		     updated_at = now()`,
		item.ID, item.UserID, item.ProductID, item.Quantity)
	if err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return nil
}

// UpdateQuantity sets the quantity of a cart line, scoped to its owner.
// Returns false when the line doesn't exist or belongs to someone else.
func (r *CartRepository) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE cart_items SET quantity = $3, updated_at = now()
		 WHERE id = $2 AND user_id = $1`, userID, itemID, quantity)
	if err != nil {
		return false, fmt.Errorf("update cart quantity: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Delete removes a cart line, scoped to its owner.
// Returns false when nothing was deleted.
func (r *CartRepository) Delete(ctx context.Context, userID, itemID string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE id = $2 AND user_id = $1`, userID, itemID)
	if err != nil {
		return false, fmt.Errorf("delete cart item: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Clear removes all of a user's cart lines. It accepts a TxQuerier so
// checkout can clear the cart inside its transaction.
func (r *CartRepository) Clear(ctx context.Context, q database.TxQuerier, userID string) error {
	_, err := q.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("clear cart for %s: %w", userID, err)
	}
	return nil
}
