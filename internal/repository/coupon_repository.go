package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/toykart/storefront/internal/model"
	"github.com/toykart/storefront/internal/service"
	"github.com/toykart/storefront/pkg/database"
)

const couponColumns = `id, code, discount_type, discount_value, max_uses, current_uses,
	valid_from, valid_until, min_purchase_amount, max_discount_amount, is_active, created_at`

// CouponRepository provides data access for coupons and their usage rows.
type CouponRepository struct {
	pool Pool
}

// NewCouponRepository creates a new CouponRepository with the given pool.
func NewCouponRepository(pool Pool) *CouponRepository {
	return &CouponRepository{pool: pool}
}

func scanCoupon(row pgx.Row) (*model.Coupon, error) {
	var c model.Coupon
	err := row.Scan(
		&c.ID, &c.Code, &c.DiscountType, &c.DiscountValue, &c.MaxUses, &c.CurrentUses,
		&c.ValidFrom, &c.ValidUntil, &c.MinPurchaseAmount, &c.MaxDiscountAmount,
		&c.IsActive, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetActiveByCode retrieves an active coupon by exact code match.
// Returns nil, nil when no active coupon carries the code.
func (r *CouponRepository) GetActiveByCode(ctx context.Context, code string) (*model.Coupon, error) {
	c, err := scanCoupon(r.pool.QueryRow(ctx,
		`SELECT `+couponColumns+` FROM coupons WHERE code = $1 AND is_active`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coupon by code: %w", err)
	}
	return c, nil
}

// GetActiveByCodeForUpdate retrieves an active coupon with a row lock so
// the usage cap cannot be overshot by concurrent checkouts. Must be
// called within a transaction.
// Returns service.ErrCouponNotFound when no active coupon carries the code.
func (r *CouponRepository) GetActiveByCodeForUpdate(ctx context.Context, tx database.TxQuerier, code string) (*model.Coupon, error) {
	c, err := scanCoupon(tx.QueryRow(ctx,
		`SELECT `+couponColumns+` FROM coupons WHERE code = $1 AND is_active FOR UPDATE`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrCouponNotFound
		}
		return nil, fmt.Errorf("lock coupon %s: %w", code, err)
	}
	return c, nil
}

// IncrementUsage bumps a coupon's redemption counter. Must be called
// within a transaction after locking the row.
func (r *CouponRepository) IncrementUsage(ctx context.Context, tx database.TxQuerier, couponID string) error {
	_, err := tx.Exec(ctx,
		`UPDATE coupons SET current_uses = current_uses + 1 WHERE id = $1`, couponID)
	if err != nil {
		return fmt.Errorf("increment usage for coupon %s: %w", couponID, err)
	}
	return nil
}

// InsertUsage records one redemption against an order.
func (r *CouponRepository) InsertUsage(ctx context.Context, tx database.TxQuerier, usage *model.CouponUsage) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO coupon_usage (id, coupon_id, user_id, order_id, discount_amount)
		 VALUES ($1, $2, $3, $4, $5)`,
		usage.ID, usage.CouponID, usage.UserID, usage.OrderID, usage.DiscountAmount)
	if err != nil {
		return fmt.Errorf("insert coupon usage: %w", err)
	}
	return nil
}

// List returns all coupons, newest first, for the admin panel.
func (r *CouponRepository) List(ctx context.Context) ([]model.Coupon, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+couponColumns+` FROM coupons ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	defer rows.Close()

	coupons := []model.Coupon{}
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan coupon: %w", err)
		}
		coupons = append(coupons, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate coupon rows: %w", err)
	}
	return coupons, nil
}

// GetByID retrieves a coupon regardless of active state, for admin edits.
// Returns nil, nil when not found.
func (r *CouponRepository) GetByID(ctx context.Context, id string) (*model.Coupon, error) {
	c, err := scanCoupon(r.pool.QueryRow(ctx,
		`SELECT `+couponColumns+` FROM coupons WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coupon %s: %w", id, err)
	}
	return c, nil
}

// Insert creates a coupon row.
// Returns service.ErrCouponExists when the code is already taken.
func (r *CouponRepository) Insert(ctx context.Context, c *model.Coupon) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO coupons (id, code, discount_type, discount_value, max_uses,
		   valid_from, valid_until, min_purchase_amount, max_discount_amount, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Code, c.DiscountType, c.DiscountValue, c.MaxUses,
		c.ValidFrom, c.ValidUntil, c.MinPurchaseAmount, c.MaxDiscountAmount, c.IsActive)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return service.ErrCouponExists
		}
		return fmt.Errorf("insert coupon: %w", err)
	}
	return nil
}

// Update overwrites a coupon's rule fields. The code and usage counter are
// immutable through this path.
// Returns service.ErrCouponNotFound when no row matches.
func (r *CouponRepository) Update(ctx context.Context, c *model.Coupon) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE coupons SET discount_type = $2, discount_value = $3, max_uses = $4,
		   valid_from = $5, valid_until = $6, min_purchase_amount = $7,
		   max_discount_amount = $8, is_active = $9
		 WHERE id = $1`,
		c.ID, c.DiscountType, c.DiscountValue, c.MaxUses,
		c.ValidFrom, c.ValidUntil, c.MinPurchaseAmount, c.MaxDiscountAmount, c.IsActive)
	if err != nil {
		return fmt.Errorf("update coupon %s: %w", c.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrCouponNotFound
	}
	return nil
}

// Delete removes a coupon row.
// Returns service.ErrCouponNotFound when no row matches.
func (r *CouponRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete coupon %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrCouponNotFound
	}
	return nil
}
