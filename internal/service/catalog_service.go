package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/toykart/storefront/internal/model"
	"github.com/toykart/storefront/pkg/cache"
	"github.com/toykart/storefront/pkg/database"
)

// Cache keys for catalog reads.
const (
	cacheKeyBanner        = "banner"
	cacheKeyProductPrefix = "products:"
)

// ProductRepositoryInterface defines the interface for product data access.
type ProductRepositoryInterface interface {
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	GetImages(ctx context.Context, productID string) ([]model.ProductImage, error)
	Insert(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id string) error
	GetStockForUpdate(ctx context.Context, tx database.TxQuerier, id string) (string, int, error)
	DecrementStock(ctx context.Context, tx database.TxQuerier, id string, qty int) (bool, error)
}

// BannerRepositoryInterface defines the interface for banner data access.
type BannerRepositoryInterface interface {
	Get(ctx context.Context) (*model.Banner, error)
	Update(ctx context.Context, b *model.Banner) error
}

// CatalogService provides the public catalog views plus the admin
// inventory and banner operations. Listing and banner reads go through
// the cache, which is invalidated on every admin mutation.
type CatalogService struct {
	products ProductRepositoryInterface
	banner   BannerRepositoryInterface
	cache    *cache.Cache
}

// NewCatalogService creates a new CatalogService. cache may be nil.
func NewCatalogService(products ProductRepositoryInterface, banner BannerRepositoryInterface, c *cache.Cache) *CatalogService {
	return &CatalogService{products: products, banner: banner, cache: c}
}

func listCacheKey(f model.ProductFilter) string {
	return fmt.Sprintf("%s%s|%s|%g|%g|%s|%s|%d|%d", cacheKeyProductPrefix,
		f.Category, f.AgeRange, f.MinPrice, f.MaxPrice, f.Search, f.Sort, f.Limit, f.Offset)
}

// ListProducts returns catalog entries matching the filter.
func (s *CatalogService) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	key := listCacheKey(filter)
	var cached []model.Product
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, key, products)
	return products, nil
}

// GetProduct returns a product with its gallery images.
// Returns ErrProductNotFound when it doesn't exist.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*model.ProductDetail, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	images, err := s.products.GetImages(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.ProductDetail{Product: *product, Images: images}, nil
}

// CreateProduct adds a product to the inventory.
func (s *CatalogService) CreateProduct(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	if req == nil || req.MRP == nil || req.StockQuantity == nil {
		return nil, ErrInvalidRequest
	}

	product := &model.Product{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Description:   req.Description,
		Brand:         req.Brand,
		SubBrand:      req.SubBrand,
		Category:      req.Category,
		AgeRange:      req.AgeRange,
		Barcode:       req.Barcode,
		MRP:           *req.MRP,
		DiscountPrice: req.DiscountPrice,
		StockQuantity: *req.StockQuantity,
		ImageURL:      req.ImageURL,
	}
	if err := s.products.Insert(ctx, product); err != nil {
		return nil, err
	}
	s.cache.InvalidatePrefix(ctx, cacheKeyProductPrefix)
	return product, nil
}

// UpdateProduct applies the non-nil fields of req to a product.
// Returns ErrProductNotFound when it doesn't exist.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, req *model.UpdateProductRequest) (*model.Product, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.SubBrand != nil {
		product.SubBrand = *req.SubBrand
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.AgeRange != nil {
		product.AgeRange = *req.AgeRange
	}
	if req.Barcode != nil {
		product.Barcode = *req.Barcode
	}
	if req.MRP != nil {
		product.MRP = *req.MRP
	}
	if req.DiscountPrice != nil {
		if *req.DiscountPrice == 0 {
			product.DiscountPrice = nil // zero clears the discount
		} else {
			product.DiscountPrice = req.DiscountPrice
		}
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	s.cache.InvalidatePrefix(ctx, cacheKeyProductPrefix)
	return product, nil
}

// DeleteProduct removes a product from the inventory.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidatePrefix(ctx, cacheKeyProductPrefix)
	return nil
}

// GetBanner returns the announcement banner.
// Returns ErrBannerNotFound when no banner row exists.
func (s *CatalogService) GetBanner(ctx context.Context) (*model.Banner, error) {
	var cached model.Banner
	if s.cache.GetJSON(ctx, cacheKeyBanner, &cached) {
		return &cached, nil
	}

	banner, err := s.banner.Get(ctx)
	if err != nil {
		return nil, err
	}
	if banner == nil {
		return nil, ErrBannerNotFound
	}
	s.cache.SetJSON(ctx, cacheKeyBanner, banner)
	return banner, nil
}

// UpdateBanner overwrites the announcement banner text and visibility.
func (s *CatalogService) UpdateBanner(ctx context.Context, req *model.UpdateBannerRequest) (*model.Banner, error) {
	if req == nil || req.IsActive == nil {
		return nil, ErrInvalidRequest
	}

	banner, err := s.banner.Get(ctx)
	if err != nil {
		return nil, err
	}
	if banner == nil {
		return nil, ErrBannerNotFound
	}

	banner.Message = req.Message
	banner.IsActive = *req.IsActive
	if err := s.banner.Update(ctx, banner); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, cacheKeyBanner)
	return banner, nil
}
