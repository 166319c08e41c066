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

// CartServiceInterface defines the interface for cart business logic.
type CartServiceInterface interface {
	GetCart(ctx context.Context, userID string) (*model.CartResponse, error)
	AddItem(ctx context.Context, userID string, req *model.AddToCartRequest) error
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID string) error
	ClearCart(ctx context.Context, userID string) error
}

// CartHandler handles cart requests for the authenticated user.
type CartHandler struct {
	service   CartServiceInterface
	validator *validator.Validate
}

// NewCartHandler creates a new CartHandler with the given service and validator.
func NewCartHandler(svc CartServiceInterface, v *validator.Validate) *CartHandler {
	return &CartHandler{service: svc, validator: v}
}

// GetCart handles GET /api/cart.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(c.Context(), middleware.UserID(c))
	if err != nil {
		log.Error().Err(err).Str("user_id", middleware.UserID(c)).Msg("failed to get cart")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(cart)
}

// AddItem handles POST /api/cart.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req model.AddToCartRequest
	if !parseAndValidate(c, h.validator, &req) {
		return nil
	}

	err := h.service.AddItem(c.Context(), middleware.UserID(c), &req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		if errors.Is(err, service.ErrProductOutOfStock) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "product out of stock"})
		}
		log.Error().Err(err).Str("product_id", req.ProductID).Msg("failed to add to cart")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(fiber.StatusCreated).Send(nil)
}

// UpdateItem handles PUT /api/cart/:id.
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var req model.UpdateCartItemRequest
	if !parseAndValidate(c, h.validator, &req) {
		return nil
	}

	err := h.service.UpdateQuantity(c.Context(), middleware.UserID(c), c.Params("id"), req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "cart item not found"})
		}
		log.Error().Err(err).Str("item_id", c.Params("id")).Msg("failed to update cart item")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.SendStatus(fiber.StatusOK)
}

// RemoveItem handles DELETE /api/cart/:id.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	err := h.service.RemoveItem(c.Context(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "cart item not found"})
		}
		log.Error().Err(err).Str("item_id", c.Params("id")).Msg("failed to remove cart item")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.SendStatus(fiber.StatusOK)
}

// ClearCart handles DELETE /api/cart.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	if err := h.service.ClearCart(c.Context(), middleware.UserID(c)); err != nil {
		log.Error().Err(err).Str("user_id", middleware.UserID(c)).Msg("failed to clear cart")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.SendStatus(fiber.StatusOK)
}
