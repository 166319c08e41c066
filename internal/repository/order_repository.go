package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/toykart/storefront/internal/model"
	"github.com/toykart/storefront/internal/service"
	"github.com/toykart/storefront/pkg/database"
)

const orderColumns = `id, user_id, order_number, status, subtotal, shipping_fee,
	discount_amount, total_amount, coupon_id, full_name, email, phone, address,
	city, state, pincode, notes, created_at, updated_at`

// OrderRepository provides data access for orders and their items.
type OrderRepository struct {
	pool Pool
}

// NewOrderRepository creates a new OrderRepository with the given pool.
func NewOrderRepository(pool Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.OrderNumber, &o.Status, &o.Subtotal, &o.ShippingFee,
		&o.DiscountAmount, &o.TotalAmount, &o.CouponID, &o.FullName, &o.Email,
		&o.Phone, &o.Address, &o.City, &o.State, &o.Pincode, &o.Notes,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Insert creates an order row within the checkout transaction.
func (r *OrderRepository) Insert(ctx context.Context, tx database.TxQuerier, o *model.Order) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO orders (id, user_id, order_number, status, subtotal, shipping_fee,
		   discount_amount, total_amount, coupon_id, full_name, email, phone, address,
		   city, state, pincode, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		o.ID, o.UserID, o.OrderNumber, o.Status, o.Subtotal, o.ShippingFee,
		o.DiscountAmount, o.TotalAmount, o.CouponID, o.FullName, o.Email,
		o.Phone, o.Address, o.City, o.State, o.Pincode, o.Notes)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// InsertItems creates the order's line rows within the checkout transaction.
func (r *OrderRepository) InsertItems(ctx context.Context, tx database.TxQuerier, items []model.OrderItem) error {
	for _, item := range items {
		_, err := tx.Exec(ctx,
			`INSERT INTO order_items (id, order_id, product_id, quantity, price)
			 VALUES ($1, $2, $3, $4, $5)`,
			item.ID, item.OrderID, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// itemsByOrder loads items for a set of orders in one query.
func (r *OrderRepository) itemsByOrder(ctx context.Context, orderIDs []string) (map[string][]model.OrderItem, error) {
	if len(orderIDs) == 0 {
		return map[string][]model.OrderItem{}, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT oi.id, oi.order_id, oi.product_id, COALESCE(p.name, ''), oi.quantity,
		        oi.price, oi.created_at
		 FROM order_items oi
		 LEFT JOIN products p ON p.id = oi.product_id
		 WHERE oi.order_id = ANY($1)
		 ORDER BY oi.created_at`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	byOrder := map[string][]model.OrderItem{}
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.Price, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order item rows: %w", err)
	}
	return byOrder, nil
}

func (r *OrderRepository) listOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	ids := []string{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	items, err := r.itemsByOrder(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

// ListByUser returns a user's orders, newest first, items embedded.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return r.listOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
}

// ListAll returns orders for the admin panel, newest first. An empty
// status means all statuses.
func (r *OrderRepository) ListAll(ctx context.Context, status string) ([]model.Order, error) {
	if status != "" {
		return r.listOrders(ctx,
			`SELECT `+orderColumns+` FROM orders WHERE status = $1 ORDER BY created_at DESC`,
			status)
	}
	return r.listOrders(ctx,
		`SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`)
}

// GetByID retrieves a single order with its items.
// Returns nil, nil when not found (service layer handles this).
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}

	items, err := r.itemsByOrder(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

// UpdateStatus overwrites an order's status. Transition rules are the
// service layer's concern.
// Returns service.ErrOrderNotFound when no row matches.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrOrderNotFound
	}
	return nil
}
