package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toykart/storefront/internal/middleware"
	"github.com/toykart/storefront/internal/model"
	"github.com/toykart/storefront/internal/service"
	"github.com/toykart/storefront/internal/validator"
)

// mockCartService is a mock implementation of CartServiceInterface.
type mockCartService struct {
	getCartFn        func(ctx context.Context, userID string) (*model.CartResponse, error)
	addItemFn        func(ctx context.Context, userID string, req *model.AddToCartRequest) error
	updateQuantityFn func(ctx context.Context, userID, itemID string, quantity int) error
	removeItemFn     func(ctx context.Context, userID, itemID string) error
	clearCartFn      func(ctx context.Context, userID string) error
}

func (m *mockCartService) GetCart(ctx context.Context, userID string) (*model.CartResponse, error) {
	if m.getCartFn != nil {
		return m.getCartFn(ctx, userID)
	}
	return &model.CartResponse{Items: []model.CartLine{}}, nil
}

func (m *mockCartService) AddItem(ctx context.Context, userID string, req *model.AddToCartRequest) error {
	if m.addItemFn != nil {
		return m.addItemFn(ctx, userID, req)
	}
	return nil
}

func (m *mockCartService) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	if m.updateQuantityFn != nil {
		return m.updateQuantityFn(ctx, userID, itemID, quantity)
	}
	return nil
}

func (m *mockCartService) RemoveItem(ctx context.Context, userID, itemID string) error {
	if m.removeItemFn != nil {
		return m.removeItemFn(ctx, userID, itemID)
	}
	return nil
}

func (m *mockCartService) ClearCart(ctx context.Context, userID string) error {
	if m.clearCartFn != nil {
		return m.clearCartFn(ctx, userID)
	}
	return nil
}

func setupCartApp(mockSvc *mockCartService) *fiber.App {
	app := fiber.New()
	h := NewCartHandler(mockSvc, validator.New())
	parser := &stubTokenParser{userID: "user-1", email: "asha@example.com"}
	api := app.Group("/api", middleware.RequireAuth(parser))
	api.Get("/cart", h.GetCart)
	api.Post("/cart", h.AddItem)
	api.Put("/cart/:id", h.UpdateItem)
	api.Delete("/cart/:id", h.RemoveItem)
	api.Delete("/cart", h.ClearCart)
	return app
}

func TestGetCartEndpoint(t *testing.T) {
	mockSvc := &mockCartService{
		getCartFn: func(ctx context.Context, userID string) (*model.CartResponse, error) {
			assert.Equal(t, "user-1", userID)
			return &model.CartResponse{
				Items: []model.CartLine{
					{
						CartItem: model.CartItem{ID: "line-1", ProductID: "prod-1", Quantity: 2},
						Product:  model.Product{ID: "prod-1", Name: "Teddy Bear", MRP: 500},
					},
				},
				Subtotal: 1000,
				Shipping: 0,
				Total:    1000,
			}, nil
		},
	}
	app := setupCartApp(mockSvc)

	resp, err := app.Test(authedRequest(http.MethodGet, "/api/cart", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var cart model.CartResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, float64(1000), cart.Total)
}

func TestAddItemEndpoint_Success(t *testing.T) {
	var added *model.AddToCartRequest
	mockSvc := &mockCartService{
		addItemFn: func(ctx context.Context, userID string, req *model.AddToCartRequest) error {
			added = req
			return nil
		},
	}
	app := setupCartApp(mockSvc)

	body := `{"product_id": "3e2f6f6e-5c9e-4ab0-9a52-1f0b8f1f9f3a", "quantity": 2}`
	resp, err := app.Test(authedRequest(http.MethodPost, "/api/cart", body))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.NotNil(t, added)
	assert.Equal(t, 2, added.Quantity)
}

func TestAddItemEndpoint_UnknownProduct(t *testing.T) {
	mockSvc := &mockCartService{
		addItemFn: func(ctx context.Context, userID string, req *model.AddToCartRequest) error {
			return service.ErrProductNotFound
		},
	}
	app := setupCartApp(mockSvc)

	body := `{"product_id": "3e2f6f6e-5c9e-4ab0-9a52-1f0b8f1f9f3a", "quantity": 1}`
	resp, err := app.Test(authedRequest(http.MethodPost, "/api/cart", body))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "product not found", decodeError(t, resp))
}

func TestAddItemEndpoint_OutOfStock(t *testing.T) {
	mockSvc := &mockCartService{
		addItemFn: func(ctx context.Context, userID string, req *model.AddToCartRequest) error {
			return service.ErrProductOutOfStock
		},
	}
	app := setupCartApp(mockSvc)

	body := `{"product_id": "3e2f6f6e-5c9e-4ab0-9a52-1f0b8f1f9f3a", "quantity": 1}`
	resp, err := app.Test(authedRequest(http.MethodPost, "/api/cart", body))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "product out of stock", decodeError(t, resp))
}

func TestAddItemEndpoint_ZeroQuantity(t *testing.T) {
	app := setupCartApp(&mockCartService{})

	body := `{"product_id": "3e2f6f6e-5c9e-4ab0-9a52-1f0b8f1f9f3a", "quantity": 0}`
	resp, err := app.Test(authedRequest(http.MethodPost, "/api/cart", body))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateItemEndpoint_NotFound(t *testing.T) {
	mockSvc := &mockCartService{
		updateQuantityFn: func(ctx context.Context, userID, itemID string, quantity int) error {
			return service.ErrCartItemNotFound
		},
	}
	app := setupCartApp(mockSvc)

	resp, err := app.Test(authedRequest(http.MethodPut, "/api/cart/line-9", `{"quantity": 3}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "cart item not found", decodeError(t, resp))
}

func TestRemoveItemEndpoint_Success(t *testing.T) {
	var removedItem string
	mockSvc := &mockCartService{
		removeItemFn: func(ctx context.Context, userID, itemID string) error {
			removedItem = itemID
			return nil
		},
	}
	app := setupCartApp(mockSvc)

	resp, err := app.Test(authedRequest(http.MethodDelete, "/api/cart/line-1", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "line-1", removedItem)
}

func TestClearCartEndpoint(t *testing.T) {
	var cleared bool
	mockSvc := &mockCartService{
		clearCartFn: func(ctx context.Context, userID string) error {
			cleared = true
			return nil
		},
	}
	app := setupCartApp(mockSvc)

	resp, err := app.Test(authedRequest(http.MethodDelete, "/api/cart", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, cleared)
}
