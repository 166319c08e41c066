package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/toykart/storefront/internal/model"
	"github.com/toykart/storefront/pkg/database"
	"github.com/toykart/storefront/pkg/events"
)

// OrderRepositoryInterface defines the interface for order data access.
type OrderRepositoryInterface interface {
	Insert(ctx context.Context, tx database.TxQuerier, o *model.Order) error
	InsertItems(ctx context.Context, tx database.TxQuerier, items []model.OrderItem) error
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	ListAll(ctx context.Context, status string) ([]model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// EventPublisher defines the interface for publishing order events.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event events.OrderEvent) error
}

// CheckoutService converts an authenticated user's cart into a persisted
// order. Everything runs in a single transaction: coupon revalidation
// under a row lock, order and item inserts, conditional stock decrements,
// usage accounting and the cart clear either all commit or all roll back.
type CheckoutService struct {
	pool     database.TxBeginner
	carts    CartRepositoryInterface
	products ProductRepositoryInterface
	coupons  CouponRepositoryInterface
	orders   OrderRepositoryInterface
	pricing  Pricing
	events   EventPublisher
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	pool database.TxBeginner,
	carts CartRepositoryInterface,
	products ProductRepositoryInterface,
	coupons CouponRepositoryInterface,
	orders OrderRepositoryInterface,
	pricing Pricing,
	publisher EventPublisher,
) *CheckoutService {
	return &CheckoutService{
		pool:     pool,
		carts:    carts,
		products: products,
		coupons:  coupons,
		orders:   orders,
		pricing:  pricing,
		events:   publisher,
	}
}

// newOrderNumber generates a customer-facing order number, unique by
// timestamp plus random suffix.
func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:9])
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

// Quote computes the price breakdown for the user's current cart,
// optionally with a coupon applied. Coupon rejections surface the same
// errors checkout would raise.
func (s *CheckoutService) Quote(ctx context.Context, userID, couponCode string) (*model.Quote, error) {
	lines, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	subtotal := Subtotal(lines)
	shipping := s.pricing.ShippingFor(subtotal)
	quote := &model.Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}

	if couponCode != "" {
		code := NormalizeCode(couponCode)
		coupon, err := s.coupons.GetActiveByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("lookup coupon: %w", err)
		}
		if coupon == nil {
			return nil, ErrCouponNotFound
		}
		if err := CheckCoupon(coupon, subtotal, time.Now()); err != nil {
			return nil, err
		}
		quote.Discount = Discount(coupon, subtotal)
		quote.Total = subtotal + shipping - quote.Discount
		quote.CouponCode = code
	}

	return quote, nil
}

// PlaceOrder runs the checkout sequence for the user's cart and returns
// the created order. On any failure nothing is persisted: the order, its
// items, stock decrements and coupon usage roll back together and the
// cart stays intact.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID string, req *model.CheckoutRequest) (*model.Order, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	lines, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	subtotal := Subtotal(lines)
	shipping := s.pricing.ShippingFor(subtotal)

	var order *model.Order
	err = database.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		var discount float64
		var coupon *model.Coupon

		// Revalidate the coupon under a row lock so the usage cap holds
		// against concurrent checkouts.
		if req.CouponCode != "" {
			coupon, err = s.coupons.GetActiveByCodeForUpdate(ctx, tx, NormalizeCode(req.CouponCode))
			if err != nil {
				return err
			}
			if err := CheckCoupon(coupon, subtotal, time.Now()); err != nil {
				return err
			}
			discount = Discount(coupon, subtotal)
		}

		order = &model.Order{
			ID:             uuid.NewString(),
			UserID:         userID,
			OrderNumber:    newOrderNumber(),
			Status:         model.OrderPending,
			Subtotal:       subtotal,
			ShippingFee:    shipping,
			DiscountAmount: discount,
			TotalAmount:    subtotal + shipping - discount,
			FullName:       req.FullName,
			Email:          req.Email,
			Phone:          req.Phone,
			Address:        req.Address,
			City:           req.City,
			State:          req.State,
			Pincode:        req.Pincode,
			Notes:          req.Notes,
		}
		if coupon != nil {
			order.CouponID = &coupon.ID
		}

		if err := s.orders.Insert(ctx, tx, order); err != nil {
			return err
		}

		items := make([]model.OrderItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, model.OrderItem{
				ID:          uuid.NewString(),
				OrderID:     order.ID,
				ProductID:   line.ProductID,
				ProductName: line.Product.Name,
				Quantity:    line.Quantity,
				Price:       line.Product.EffectivePrice(),
			})
		}
		if err := s.orders.InsertItems(ctx, tx, items); err != nil {
			return err
		}

		for _, line := range lines {
			name, stock, err := s.products.GetStockForUpdate(ctx, tx, line.ProductID)
			if err != nil {
				return err
			}
			if stock < line.Quantity {
				return &InsufficientStockError{
					ProductName: name,
					Available:   stock,
					Requested:   line.Quantity,
				}
			}
			ok, err := s.products.DecrementStock(ctx, tx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return &InsufficientStockError{
					ProductName: name,
					Available:   stock,
					Requested:   line.Quantity,
				}
			}
		}

		if coupon != nil {
			if err := s.coupons.IncrementUsage(ctx, tx, coupon.ID); err != nil {
				return err
			}
			usage := &model.CouponUsage{
				ID:             uuid.NewString(),
				CouponID:       coupon.ID,
				UserID:         userID,
				OrderID:        order.ID,
				DiscountAmount: discount,
			}
			if err := s.coupons.InsertUsage(ctx, tx, usage); err != nil {
				return err
			}
		}

		order.Items = items
		return s.carts.Clear(ctx, tx, userID)
	})
	if err != nil {
		return nil, err
	}

	// Events are best-effort: the order is committed either way.
	if s.events != nil {
		event := events.OrderEvent{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			UserID:      order.UserID,
			Status:      order.Status,
			TotalAmount: order.TotalAmount,
			OccurredAt:  time.Now(),
		}
		if err := s.events.Publish(ctx, events.OrderCreated, event); err != nil {
			log.Warn().Err(err).Str("order_number", order.OrderNumber).Msg("failed to publish order event")
		}
	}

	return order, nil
}
