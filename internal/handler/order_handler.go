package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/toykart/storefront/internal/middleware"
	"github.com/toykart/storefront/internal/model"
	"github.com/toykart/storefront/internal/service"
)

// OrderServiceInterface defines the customer-facing order operations.
type OrderServiceInterface interface {
	ListForUser(ctx context.Context, userID string) ([]model.Order, error)
	Get(ctx context.Context, orderID, userID string, isAdmin bool) (*model.Order, error)
}

// OrderHandler handles order history requests.
type OrderHandler struct {
	service OrderServiceInterface
	auth    middleware.AdminChecker
}

// NewOrderHandler creates a new OrderHandler with the given services.
func NewOrderHandler(svc OrderServiceInterface, auth middleware.AdminChecker) *OrderHandler {
	return &OrderHandler{service: svc, auth: auth}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.service.ListForUser(c.Context(), middleware.UserID(c))
	if err != nil {
		log.Error().Err(err).Str("user_id", middleware.UserID(c)).Msg("failed to list orders")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(orders)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	isAdmin, err := h.auth.IsAdmin(c.Context(), userID, middleware.UserEmail(c))
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("admin role check failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	order, err := h.service.Get(c.Context(), c.Params("id"), userID, isAdmin)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
		}
		log.Error().Err(err).Str("order_id", c.Params("id")).Msg("failed to get order")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(order)
}
