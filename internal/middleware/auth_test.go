package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toykart/storefront/internal/service"
)

// mockTokenParser is a mock implementation of TokenParser.
type mockTokenParser struct {
	parseFn func(tokenString string) (*service.SessionClaims, error)
}

func (m *mockTokenParser) ParseToken(tokenString string) (*service.SessionClaims, error) {
	if m.parseFn != nil {
		return m.parseFn(tokenString)
	}
	return nil, errors.New("no parser configured")
}

// mockAdminChecker is a mock implementation of AdminChecker.
type mockAdminChecker struct {
	isAdminFn func(ctx context.Context, userID, email string) (bool, error)
}

func (m *mockAdminChecker) IsAdmin(ctx context.Context, userID, email string) (bool, error) {
	if m.isAdminFn != nil {
		return m.isAdminFn(ctx, userID, email)
	}
	return false, nil
}

func claimsFor(userID, email string) *service.SessionClaims {
	return &service.SessionClaims{
		Email:            email,
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
	}
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	app := fiber.New()
	app.Use(RequireAuth(&mockTokenParser{}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_NotBearer(t *testing.T) {
	app := fiber.New()
	app.Use(RequireAuth(&mockTokenParser{}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	parser := &mockTokenParser{
		parseFn: func(tokenString string) (*service.SessionClaims, error) {
			return nil, errors.New("token is expired")
		},
	}
	app := fiber.New()
	app.Use(RequireAuth(parser))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer stale-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_SetsIdentity(t *testing.T) {
	parser := &mockTokenParser{
		parseFn: func(tokenString string) (*service.SessionClaims, error) {
			assert.Equal(t, "good-token", tokenString)
			return claimsFor("user-1", "asha@example.com"), nil
		},
	}
	app := fiber.New()
	app.Use(RequireAuth(parser))

	var gotID, gotEmail string
	app.Get("/", func(c *fiber.Ctx) error {
		gotID = UserID(c)
		gotEmail = UserEmail(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "user-1", gotID)
	assert.Equal(t, "asha@example.com", gotEmail)
}

func adminTestApp(checker AdminChecker) *fiber.App {
	parser := &mockTokenParser{
		parseFn: func(tokenString string) (*service.SessionClaims, error) {
			return claimsFor("user-1", "asha@example.com"), nil
		},
	}
	app := fiber.New()
	app.Use(RequireAuth(parser), RequireAdmin(checker))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app
}

func bearerRequest() *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer any")
	return req
}

func TestRequireAdmin_Forbidden(t *testing.T) {
	app := adminTestApp(&mockAdminChecker{})

	resp, err := app.Test(bearerRequest())
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireAdmin_Allowed(t *testing.T) {
	checker := &mockAdminChecker{
		isAdminFn: func(ctx context.Context, userID, email string) (bool, error) {
			assert.Equal(t, "user-1", userID)
			assert.Equal(t, "asha@example.com", email)
			return true, nil
		},
	}
	app := adminTestApp(checker)

	resp, err := app.Test(bearerRequest())
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdmin_CheckError(t *testing.T) {
	checker := &mockAdminChecker{
		isAdminFn: func(ctx context.Context, userID, email string) (bool, error) {
			return false, errors.New("db down")
		},
	}
	app := adminTestApp(checker)

	resp, err := app.Test(bearerRequest())
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
