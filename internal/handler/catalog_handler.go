package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/toykart/storefront/internal/model"
	"github.com/toykart/storefront/internal/service"
)

// CatalogServiceInterface defines the read side of the catalog.
type CatalogServiceInterface interface {
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.ProductDetail, error)
	GetBanner(ctx context.Context) (*model.Banner, error)
}

// CatalogHandler handles public catalog requests.
type CatalogHandler struct {
	service CatalogServiceInterface
}

// NewCatalogHandler creates a new CatalogHandler with the given service.
func NewCatalogHandler(svc CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// ListProducts handles GET /api/products with optional filter query params.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	filter := model.ProductFilter{
		Category: c.Query("category"),
		AgeRange: c.Query("age_range"),
		MinPrice: c.QueryFloat("min_price"),
		MaxPrice: c.QueryFloat("max_price"),
		Search:   c.Query("q"),
		Sort:     c.Query("sort"),
		Limit:    c.QueryInt("limit"),
		Offset:   c.QueryInt("offset"),
	}

	products, err := h.service.ListProducts(c.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list products")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(products)
}

// GetProduct handles GET /api/products/:id.
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	product, err := h.service.GetProduct(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		log.Error().Err(err).Str("product_id", id).Msg("failed to get product")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(product)
}

// GetBanner handles GET /api/banner.
func (h *CatalogHandler) GetBanner(c *fiber.Ctx) error {
	banner, err := h.service.GetBanner(c.Context())
	if err != nil {
		if errors.Is(err, service.ErrBannerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "announcement banner not found"})
		}
		log.Error().Err(err).Msg("failed to get banner")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(banner)
}
