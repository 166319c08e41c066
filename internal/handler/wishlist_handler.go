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

// WishlistServiceInterface defines the interface for wishlist business logic.
type WishlistServiceInterface interface {
	List(ctx context.Context, userID string) ([]model.WishlistLine, error)
	Add(ctx context.Context, userID string, req *model.AddToWishlistRequest) error
	Remove(ctx context.Context, userID, productID string) error
}

// WishlistHandler handles wishlist requests for the authenticated user.
type WishlistHandler struct {
	service   WishlistServiceInterface
	validator *validator.Validate
}

// NewWishlistHandler creates a new WishlistHandler with the given service and validator.
func NewWishlistHandler(svc WishlistServiceInterface, v *validator.Validate) *WishlistHandler {
	return &WishlistHandler{service: svc, validator: v}
}

// List handles GET /api/wishlist.
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	lines, err := h.service.List(c.Context(), middleware.UserID(c))
	if err != nil {
		log.Error().Err(err).Str("user_id", middleware.UserID(c)).Msg("failed to list wishlist")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(lines)
}

// Add handles POST /api/wishlist.
func (h *WishlistHandler) Add(c *fiber.Ctx) error {
	var req model.AddToWishlistRequest
	if !parseAndValidate(c, h.validator, &req) {
		return nil
	}

	if err := h.service.Add(c.Context(), middleware.UserID(c), &req); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		log.Error().Err(err).Str("product_id", req.ProductID).Msg("failed to add to wishlist")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.SendStatus(fiber.StatusOK)
}

// Remove handles DELETE /api/wishlist/:productID.
func (h *WishlistHandler) Remove(c *fiber.Ctx) error {
	err := h.service.Remove(c.Context(), middleware.UserID(c), c.Params("productID"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		log.Error().Err(err).Str("product_id", c.Params("productID")).Msg("failed to remove from wishlist")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.SendStatus(fiber.StatusOK)
}
