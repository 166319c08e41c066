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

// AuthServiceInterface defines the interface for auth business logic.
type AuthServiceInterface interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.Profile, error)
}

// AuthHandler handles registration, login and profile requests.
type AuthHandler struct {
	service   AuthServiceInterface
	validator *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given service and validator.
func NewAuthHandler(svc AuthServiceInterface, v *validator.Validate) *AuthHandler {
	return &AuthHandler{service: svc, validator: v}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req model.RegisterRequest
	if !parseAndValidate(c, h.validator, &req) {
		return nil
	}

	resp, err := h.service.Register(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "email already registered"})
		}
		log.Error().Err(err).Str("email", req.Email).Msg("failed to register user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req model.LoginRequest
	if !parseAndValidate(c, h.validator, &req) {
		return nil
	}

	resp, err := h.service.Login(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
		}
		log.Error().Err(err).Str("email", req.Email).Msg("failed to log in user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(resp)
}

// GetProfile handles GET /api/profile.
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.service.GetProfile(c.Context(), middleware.UserID(c))
	if err != nil {
		log.Error().Err(err).Str("user_id", middleware.UserID(c)).Msg("failed to get profile")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(profile)
}

// UpdateProfile handles PUT /api/profile.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req model.UpdateProfileRequest
	if !parseAndValidate(c, h.validator, &req) {
		return nil
	}

	profile, err := h.service.UpdateProfile(c.Context(), middleware.UserID(c), &req)
	if err != nil {
		log.Error().Err(err).Str("user_id", middleware.UserID(c)).Msg("failed to update profile")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.JSON(profile)
}
