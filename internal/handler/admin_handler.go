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

// AdminCatalogService defines the inventory and banner operations the
// back office needs.
type AdminCatalogService interface {
	CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, req *model.UpdateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	UpdateBanner(ctx context.Context, req *model.UpdateBannerRequest) (*model.Banner, error)
}

// AdminCouponService defines the coupon CRUD operations.
type AdminCouponService interface {
	List(ctx context.Context) ([]model.Coupon, error)
	Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error)
	Update(ctx context.Context, id string, req *model.UpdateCouponRequest) (*model.Coupon, error)
	Delete(ctx context.Context, id string) error
}

// AdminOrderService defines the order lifecycle operations.
type AdminOrderService interface {
	ListAll(ctx context.Context, status string) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*model.Order, error)
}

// AdminRoleService defines admin-role grant management.
type AdminRoleService interface {
	ListAdmins(ctx context.Context) ([]model.AdminEntry, error)
	GrantAdmin(ctx context.Context, email string) error
	RevokeAdmin(ctx context.Context, userID string) error
	IsRootAdmin(email string) bool
}

// AdminHandler handles the back-office panels: inventory, orders,
// coupons, banner and role grants.
type AdminHandler struct {
	catalog   AdminCatalogService
	coupons   AdminCouponService
	orders    AdminOrderService
	roles     AdminRoleService
	validator *validator.Validate
}

// NewAdminHandler creates a new AdminHandler with the given services and validator.
func NewAdminHandler(catalog AdminCatalogService, coupons AdminCouponService, orders AdminOrderService, roles AdminRoleService, v *validator.Validate) *AdminHandler {
	return &AdminHandler{
		catalog:   catalog,
		coupons:   coupons,
		orders:    orders,
		roles:     roles,
		validator: v,
	}
}

// CreateProduct handles POST /api/admin/products.
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var req model.CreateProductRequest
	if !parseAndValidate(c, h.validator, &req) {
		return nil
	}

	product, err := h.catalog.CreateProduct(c.Context(), &req)
	if err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("failed to create product")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// UpdateProduct handles PUT /api/admin/products/:id.
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	var req model.UpdateProductRequest
	if !parseAndValidate(c, h.validator, &req) {
		return nil
	}

	product, err := h.catalog.UpdateProduct(c.Context(), c.Params("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		log.Error().Err(err).Str("product_id", c.Params("id")).Msg("failed to update product")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(product)
}

// DeleteProduct handles DELETE /api/admin/products/:id.
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.catalog.DeleteProduct(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		log.Error().Err(err).Str("product_id", c.Params("id")).Msg("failed to delete product")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.SendStatus(fiber.StatusOK)
}

// ListOrders handles GET /api/admin/orders, optionally filtered by status.
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListAll(c.Context(), c.Query("status"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: unknown status"})
		}
		log.Error().Err(err).Msg("failed to list orders")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(orders)
}

// UpdateOrderStatus handles PATCH /api/admin/orders/:id/status.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	var req model.UpdateOrderStatusRequest
	if !parseAndValidate(c, h.validator, &req) {
		return nil
	}

	order, err := h.orders.UpdateStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
		}
		if errors.Is(err, service.ErrInvalidTransition) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "invalid order status transition"})
		}
		log.Error().Err(err).Str("order_id", c.Params("id")).Msg("failed to update order status")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Str("order_number", order.OrderNumber).
		Str("status", order.Status).
		Str("changed_by", middleware.UserID(c)).
		Msg("order status updated")

	return c.JSON(order)
}

// ListCoupons handles GET /api/admin/coupons.
func (h *AdminHandler) ListCoupons(c *fiber.Ctx) error {
	coupons, err := h.coupons.List(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list coupons")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(coupons)
}

// CreateCoupon handles POST /api/admin/coupons.
func (h *AdminHandler) CreateCoupon(c *fiber.Ctx) error {
	var req model.CreateCouponRequest
	if !parseAndValidate(c, h.validator, &req) {
		return nil
	}

	coupon, err := h.coupons.Create(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCouponExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "coupon code already exists"})
		}
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: bad validity window"})
		}
		log.Error().Err(err).Str("code", req.Code).Msg("failed to create coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(fiber.StatusCreated).JSON(coupon)
}

// UpdateCoupon handles PUT /api/admin/coupons/:id.
func (h *AdminHandler) UpdateCoupon(c *fiber.Ctx) error {
	var req model.UpdateCouponRequest
	if !parseAndValidate(c, h.validator, &req) {
		return nil
	}

	coupon, err := h.coupons.Update(c.Context(), c.Params("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "coupon not found"})
		}
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: bad validity window"})
		}
		log.Error().Err(err).Str("coupon_id", c.Params("id")).Msg("failed to update coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(coupon)
}

// DeleteCoupon handles DELETE /api/admin/coupons/:id.
func (h *AdminHandler) DeleteCoupon(c *fiber.Ctx) error {
	if err := h.coupons.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "coupon not found"})
		}
		log.Error().Err(err).Str("coupon_id", c.Params("id")).Msg("failed to delete coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.SendStatus(fiber.StatusOK)
}

// UpdateBanner handles PUT /api/admin/banner.
func (h *AdminHandler) UpdateBanner(c *fiber.Ctx) error {
	var req model.UpdateBannerRequest
	if !parseAndValidate(c, h.validator, &req) {
		return nil
	}

	banner, err := h.catalog.UpdateBanner(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrBannerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "announcement banner not found"})
		}
		log.Error().Err(err).Msg("failed to update banner")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(banner)
}

// requireRoot rejects callers other than the configured root admin, who
// alone manages role grants.
func (h *AdminHandler) requireRoot(c *fiber.Ctx) bool {
	if !h.roles.IsRootAdmin(middleware.UserEmail(c)) {
		_ = c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "root admin access required"})
		return false
	}
	return true
}

// ListAdmins handles GET /api/admin/admins.
func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	if !h.requireRoot(c) {
		return nil
	}

	admins, err := h.roles.ListAdmins(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list admins")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(admins)
}

// GrantAdmin handles POST /api/admin/admins.
func (h *AdminHandler) GrantAdmin(c *fiber.Ctx) error {
	if !h.requireRoot(c) {
		return nil
	}

	var req model.GrantAdminRequest
	if !parseAndValidate(c, h.validator, &req) {
		return nil
	}

	if err := h.roles.GrantAdmin(c.Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no account with that email"})
		}
		log.Error().Err(err).Str("email", req.Email).Msg("failed to grant admin role")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(fiber.StatusCreated).Send(nil)
}

// RevokeAdmin handles DELETE /api/admin/admins/:userID.
func (h *AdminHandler) RevokeAdmin(c *fiber.Ctx) error {
	if !h.requireRoot(c) {
		return nil
	}

	if err := h.roles.RevokeAdmin(c.Context(), c.Params("userID")); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		if errors.Is(err, service.ErrRootAdminImmutable) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "root admin cannot be revoked"})
		}
		log.Error().Err(err).Str("user_id", c.Params("userID")).Msg("failed to revoke admin role")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.SendStatus(fiber.StatusOK)
}
