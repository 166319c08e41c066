package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toykart/storefront/internal/model"
	"github.com/toykart/storefront/internal/service"
)

// mockCatalogService is a mock implementation of CatalogServiceInterface.
type mockCatalogService struct {
	listProductsFn func(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	getProductFn   func(ctx context.Context, id string) (*model.ProductDetail, error)
	getBannerFn    func(ctx context.Context) (*model.Banner, error)
}

func (m *mockCatalogService) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if m.listProductsFn != nil {
		return m.listProductsFn(ctx, filter)
	}
	return []model.Product{}, nil
}

func (m *mockCatalogService) GetProduct(ctx context.Context, id string) (*model.ProductDetail, error) {
	if m.getProductFn != nil {
		return m.getProductFn(ctx, id)
	}
	return nil, service.ErrProductNotFound
}

func (m *mockCatalogService) GetBanner(ctx context.Context) (*model.Banner, error) {
	if m.getBannerFn != nil {
		return m.getBannerFn(ctx)
	}
	return nil, service.ErrBannerNotFound
}

func setupCatalogApp(mockSvc *mockCatalogService) *fiber.App {
	app := fiber.New()
	h := NewCatalogHandler(mockSvc)
	app.Get("/api/products", h.ListProducts)
	app.Get("/api/products/:id", h.GetProduct)
	app.Get("/api/banner", h.GetBanner)
	return app
}

func TestListProductsEndpoint_FilterParsing(t *testing.T) {
	var captured model.ProductFilter
	mockSvc := &mockCatalogService{
		listProductsFn: func(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
			captured = filter
			return []model.Product{{ID: "prod-1", Name: "Blocks", MRP: 300}}, nil
		},
	}
	app := setupCatalogApp(mockSvc)

	req := httptest.NewRequest(http.MethodGet,
		"/api/products?category=puzzles&age_range=3-5&min_price=100&max_price=500&q=train&sort=price_asc&limit=10&offset=20", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, "puzzles", captured.Category)
	assert.Equal(t, "3-5", captured.AgeRange)
	assert.Equal(t, float64(100), captured.MinPrice)
	assert.Equal(t, float64(500), captured.MaxPrice)
	assert.Equal(t, "train", captured.Search)
	assert.Equal(t, "price_asc", captured.Sort)
	assert.Equal(t, 10, captured.Limit)
	assert.Equal(t, 20, captured.Offset)
}

func TestListProductsEndpoint_NoAuthRequired(t *testing.T) {
	app := setupCatalogApp(&mockCatalogService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/products", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGetProductEndpoint_Success(t *testing.T) {
	mockSvc := &mockCatalogService{
		getProductFn: func(ctx context.Context, id string) (*model.ProductDetail, error) {
			return &model.ProductDetail{
				Product: model.Product{ID: id, Name: "Teddy Bear", MRP: 500},
				Images:  []model.ProductImage{{ID: "img-1", ProductID: id}},
			}, nil
		},
	}
	app := setupCatalogApp(mockSvc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/products/prod-1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var detail model.ProductDetail
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
	assert.Equal(t, "Teddy Bear", detail.Name)
	assert.Len(t, detail.Images, 1)
}

func TestGetProductEndpoint_NotFound(t *testing.T) {
	app := setupCatalogApp(&mockCatalogService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/products/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "product not found", decodeError(t, resp))
}

func TestGetBannerEndpoint_Success(t *testing.T) {
	mockSvc := &mockCatalogService{
		getBannerFn: func(ctx context.Context) (*model.Banner, error) {
			return &model.Banner{Message: "Free shipping above Rs 500", IsActive: true}, nil
		},
	}
	app := setupCatalogApp(mockSvc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/banner", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var banner model.Banner
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&banner))
	assert.True(t, banner.IsActive)
}

func TestGetBannerEndpoint_NotFound(t *testing.T) {
	app := setupCatalogApp(&mockCatalogService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/banner", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
