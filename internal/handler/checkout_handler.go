package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/toykart/storefront/internal/middleware"
	"github.com/toykart/storefront/internal/model"
	"github.com/toykart/storefront/internal/service"
)

// CheckoutServiceInterface defines the interface for checkout business logic.
type CheckoutServiceInterface interface {
	Quote(ctx context.Context, userID, couponCode string) (*model.Quote, error)
	PlaceOrder(ctx context.Context, userID string, req *model.CheckoutRequest) (*model.Order, error)
}

// CheckoutHandler handles checkout quotes and order placement.
type CheckoutHandler struct {
	service   CheckoutServiceInterface
	validator *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler with the given service and validator.
func NewCheckoutHandler(svc CheckoutServiceInterface, v *validator.Validate) *CheckoutHandler {
	return &CheckoutHandler{service: svc, validator: v}
}

// couponError writes the response for a coupon rule rejection and reports
// whether err was one. Invalid codes are 404; rule failures are 422 with
// a distinguishable message per case.
func couponError(c *fiber.Ctx, err error) bool {
	if errors.Is(err, service.ErrCouponNotFound) {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "invalid coupon code"})
		return true
	}
	if errors.Is(err, service.ErrCouponExpired) || errors.Is(err, service.ErrCouponUsageLimit) {
		_ = c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		return true
	}
	var minErr *service.MinPurchaseError
	if errors.As(err, &minErr) {
		_ = c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": minErr.Error()})
		return true
	}
	return false
}

// Quote handles POST /api/checkout/quote. This backs the storefront's
// "apply coupon" flow: removing the coupon is just a quote without a code.
func (h *CheckoutHandler) Quote(c *fiber.Ctx) error {
	var req model.QuoteRequest
	if !parseAndValidate(c, h.validator, &req) {
		return nil
	}

	quote, err := h.service.Quote(c.Context(), middleware.UserID(c), req.CouponCode)
	if err != nil {
		if errors.Is(err, service.ErrCartEmpty) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cart is empty"})
		}
		if couponError(c, err) {
			return nil
		}
		log.Error().Err(err).Str("user_id", middleware.UserID(c)).Msg("failed to compute quote")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(quote)
}

// PlaceOrder handles POST /api/checkout.
func (h *CheckoutHandler) PlaceOrder(c *fiber.Ctx) error {
	var req model.CheckoutRequest
	if !parseAndValidate(c, h.validator, &req) {
		return nil
	}

	userID := middleware.UserID(c)
	order, err := h.service.PlaceOrder(c.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrCartEmpty) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cart is empty"})
		}
		if couponError(c, err) {
			return nil
		}
		var stockErr *service.InsufficientStockError
		if errors.As(err, &stockErr) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": stockErr.Error()})
		}
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Str("user_id", userID).
			Msg("failed to place order")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Str("request_id", c.GetRespHeader("X-Request-ID")).
		Str("user_id", userID).
		Str("order_number", order.OrderNumber).
		Float64("total_amount", order.TotalAmount).
		Msg("order placed")

	return c.Status(fiber.StatusCreated).JSON(order)
}
