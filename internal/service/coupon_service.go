package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/toykart/storefront/internal/model"
	"github.com/toykart/storefront/pkg/database"
)

// CouponRepositoryInterface defines the interface for coupon data access.
type CouponRepositoryInterface interface {
	GetActiveByCode(ctx context.Context, code string) (*model.Coupon, error)
	GetActiveByCodeForUpdate(ctx context.Context, tx database.TxQuerier, code string) (*model.Coupon, error)
	IncrementUsage(ctx context.Context, tx database.TxQuerier, couponID string) error
	InsertUsage(ctx context.Context, tx database.TxQuerier, usage *model.CouponUsage) error
	List(ctx context.Context) ([]model.Coupon, error)
	GetByID(ctx context.Context, id string) (*model.Coupon, error)
	Insert(ctx context.Context, c *model.Coupon) error
	Update(ctx context.Context, c *model.Coupon) error
	Delete(ctx context.Context, id string) error
}

// NormalizeCode uppercases and trims a coupon code; codes are stored and
// matched in this form.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CheckCoupon applies the redemption rules against a subtotal at the
// given instant. Returns, in order of checking:
//   - ErrCouponExpired outside [ValidFrom, ValidUntil]
//   - ErrCouponUsageLimit at or over the usage cap
//   - *MinPurchaseError below the minimum purchase amount
func CheckCoupon(c *model.Coupon, subtotal float64, now time.Time) error {
	if now.Before(c.ValidFrom) || now.After(c.ValidUntil) {
		return ErrCouponExpired
	}
	if c.MaxUses != nil && c.CurrentUses >= *c.MaxUses {
		return ErrCouponUsageLimit
	}
	if c.MinPurchaseAmount != nil && subtotal < *c.MinPurchaseAmount {
		return &MinPurchaseError{Amount: *c.MinPurchaseAmount}
	}
	return nil
}

// Discount computes the discount a coupon grants on a subtotal.
// Percentage coupons take subtotal*value/100, capped by the maximum
// discount amount when set. Fixed coupons take the value directly,
// clamped so the discount never exceeds the subtotal.
func Discount(c *model.Coupon, subtotal float64) float64 {
	var amount float64
	switch c.DiscountType {
	case model.DiscountPercentage:
		amount = subtotal * c.DiscountValue / 100
		if c.MaxDiscountAmount != nil && amount > *c.MaxDiscountAmount {
			amount = *c.MaxDiscountAmount
		}
	default:
		amount = c.DiscountValue
	}
	if amount > subtotal {
		amount = subtotal
	}
	return amount
}

// CouponService provides coupon validation for checkout and CRUD for the
// admin panel.
type CouponService struct {
	coupons CouponRepositoryInterface
}

// NewCouponService creates a new CouponService.
func NewCouponService(coupons CouponRepositoryInterface) *CouponService {
	return &CouponService{coupons: coupons}
}

// Validate looks up an active coupon by code and applies the redemption
// rules against the subtotal. Returns the coupon and the discount amount.
// Returns ErrCouponNotFound for an unknown or inactive code, plus the
// rule errors from CheckCoupon.
func (s *CouponService) Validate(ctx context.Context, code string, subtotal float64) (*model.Coupon, float64, error) {
	coupon, err := s.coupons.GetActiveByCode(ctx, NormalizeCode(code))
	if err != nil {
		return nil, 0, fmt.Errorf("lookup coupon: %w", err)
	}
	if coupon == nil {
		return nil, 0, ErrCouponNotFound
	}
	if err := CheckCoupon(coupon, subtotal, time.Now()); err != nil {
		return nil, 0, err
	}
	return coupon, Discount(coupon, subtotal), nil
}

// List returns all coupons for the admin panel.
func (s *CouponService) List(ctx context.Context) ([]model.Coupon, error) {
	return s.coupons.List(ctx)
}

func parseCouponDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidRequest
}

// Create adds a coupon. The code is stored uppercase.
// Returns ErrCouponExists for a duplicate code and ErrInvalidRequest for
// unparseable dates or an inverted validity window.
func (s *CouponService) Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error) {
	if req == nil || req.DiscountValue == nil {
		return nil, ErrInvalidRequest
	}

	validFrom, err := parseCouponDate(req.ValidFrom)
	if err != nil {
		return nil, err
	}
	validUntil, err := parseCouponDate(req.ValidUntil)
	if err != nil {
		return nil, err
	}
	if validUntil.Before(validFrom) {
		return nil, ErrInvalidRequest
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	coupon := &model.Coupon{
		ID:                uuid.NewString(),
		Code:              NormalizeCode(req.Code),
		DiscountType:      req.DiscountType,
		DiscountValue:     *req.DiscountValue,
		MaxUses:           req.MaxUses,
		ValidFrom:         validFrom,
		ValidUntil:        validUntil,
		MinPurchaseAmount: req.MinPurchaseAmount,
		MaxDiscountAmount: req.MaxDiscountAmount,
		IsActive:          active,
	}
	if err := s.coupons.Insert(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Update applies the non-nil fields of req to a coupon.
// Returns ErrCouponNotFound when it doesn't exist.
func (s *CouponService) Update(ctx context.Context, id string, req *model.UpdateCouponRequest) (*model.Coupon, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	coupon, err := s.coupons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}

	if req.DiscountType != nil {
		coupon.DiscountType = *req.DiscountType
	}
	if req.DiscountValue != nil {
		coupon.DiscountValue = *req.DiscountValue
	}
	if req.MaxUses != nil {
		coupon.MaxUses = req.MaxUses
	}
	if req.ValidFrom != nil {
		t, err := parseCouponDate(*req.ValidFrom)
		if err != nil {
			return nil, err
		}
		coupon.ValidFrom = t
	}
	if req.ValidUntil != nil {
		t, err := parseCouponDate(*req.ValidUntil)
		if err != nil {
			return nil, err
		}
		coupon.ValidUntil = t
	}
	if coupon.ValidUntil.Before(coupon.ValidFrom) {
		return nil, ErrInvalidRequest
	}
	if req.MinPurchaseAmount != nil {
		coupon.MinPurchaseAmount = req.MinPurchaseAmount
	}
	if req.MaxDiscountAmount != nil {
		coupon.MaxDiscountAmount = req.MaxDiscountAmount
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if err := s.coupons.Update(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Delete removes a coupon.
func (s *CouponService) Delete(ctx context.Context, id string) error {
	return s.coupons.Delete(ctx, id)
}
