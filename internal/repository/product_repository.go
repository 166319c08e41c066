package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/toykart/storefront/internal/model"
	"github.com/toykart/storefront/internal/service"
	"github.com/toykart/storefront/pkg/database"
)

const productColumns = `id, name, description, brand, sub_brand, category, age_range,
	barcode, mrp, discount_price, stock_quantity, image_url, created_at, updated_at`

// ProductRepository provides data access for the product catalog.
type ProductRepository struct {
	pool Pool
}

// NewProductRepository creates a new ProductRepository with the given pool.
func NewProductRepository(pool Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Brand, &p.SubBrand, &p.Category,
		&p.AgeRange, &p.Barcode, &p.MRP, &p.DiscountPrice, &p.StockQuantity,
		&p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns products matching the filter, newest first unless the
// filter requests a price sort.
func (r *ProductRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + productColumns + ` FROM products`)

	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Category != "" {
		conds = append(conds, "category = "+arg(filter.Category))
	}
	if filter.AgeRange != "" {
		conds = append(conds, "age_range = "+arg(filter.AgeRange))
	}
	if filter.MinPrice > 0 {
		conds = append(conds, "COALESCE(discount_price, mrp) >= "+arg(filter.MinPrice))
	}
	if filter.MaxPrice > 0 {
		conds = append(conds, "COALESCE(discount_price, mrp) <= "+arg(filter.MaxPrice))
	}
	if filter.Search != "" {
		conds = append(conds, "name ILIKE "+arg("%"+filter.Search+"%"))
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}

	switch filter.Sort {
	case "price_asc":
		sb.WriteString(" ORDER BY COALESCE(discount_price, mrp) ASC")
	case "price_desc":
		sb.WriteString(" ORDER BY COALESCE(discount_price, mrp) DESC")
	default:
		sb.WriteString(" ORDER BY created_at DESC")
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	sb.WriteString(" LIMIT " + arg(limit))
	if filter.Offset > 0 {
		sb.WriteString(" OFFSET " + arg(filter.Offset))
	}

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return products, nil
}

// GetByID retrieves a product by id.
// Returns nil, nil when not found (service layer handles this).
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

// GetImages returns a product's gallery images in display order.
func (r *ProductRepository) GetImages(ctx context.Context, productID string) ([]model.ProductImage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, product_id, image_url, display_order
		 FROM product_images WHERE product_id = $1 ORDER BY display_order`, productID)
	if err != nil {
		return nil, fmt.Errorf("get images for %s: %w", productID, err)
	}
	defer rows.Close()

	images := []model.ProductImage{}
	for rows.Next() {
		var img model.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.ImageURL, &img.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scan product image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate image rows: %w", err)
	}
	return images, nil
}

// Insert creates a product row.
func (r *ProductRepository) Insert(ctx context.Context, p *model.Product) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO products (id, name, description, brand, sub_brand, category,
		   age_range, barcode, mrp, discount_price, stock_quantity, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.Name, p.Description, p.Brand, p.SubBrand, p.Category,
		p.AgeRange, p.Barcode, p.MRP, p.DiscountPrice, p.StockQuantity, p.ImageURL)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Update overwrites a product row.
// Returns service.ErrProductNotFound when no row matches.
func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET name = $2, description = $3, brand = $4, sub_brand = $5,
		   category = $6, age_range = $7, barcode = $8, mrp = $9, discount_price = $10,
		   stock_quantity = $11, image_url = $12, updated_at = now()
		 WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Brand, p.SubBrand, p.Category,
		p.AgeRange, p.Barcode, p.MRP, p.DiscountPrice, p.StockQuantity, p.ImageURL)
	if err != nil {
		return fmt.Errorf("update product %s: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrProductNotFound
	}
	return nil
}

// Delete removes a product row.
// Returns service.ErrProductNotFound when no row matches.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrProductNotFound
	}
	return nil
}

// GetStockForUpdate reads a product's name and stock with a row lock.
// Must be called within a transaction; the lock holds until commit.
// Returns service.ErrProductNotFound when the product doesn't exist.
func (r *ProductRepository) GetStockForUpdate(ctx context.Context, tx database.TxQuerier, id string) (name string, stock int, err error) {
	err = tx.QueryRow(ctx,
		`SELECT name, stock_quantity FROM products WHERE id = $1 FOR UPDATE`, id).
		Scan(&name, &stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", 0, service.ErrProductNotFound
		}
		return "", 0, fmt.Errorf("lock product %s: %w", id, err)
	}
	return name, stock, nil
}

// DecrementStock subtracts qty from a product's stock, refusing to go
// negative. Returns false when stock was insufficient; the caller decides
// whether to abort the transaction.
func (r *ProductRepository) DecrementStock(ctx context.Context, tx database.TxQuerier, id string, qty int) (bool, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE products SET stock_quantity = stock_quantity - $2, updated_at = now()
		 WHERE id = $1 AND stock_quantity >= $2`, id, qty)
	if err != nil {
		return false, fmt.Errorf("decrement stock for %s: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}
