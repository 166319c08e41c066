package model

import "time"

// Product is a catalog entry. MRP is the list price; DiscountPrice, when
// set, is the effective selling price.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Brand         string    `json:"brand"`
	SubBrand      string    `json:"sub_brand"`
	Category      string    `json:"category"`
	AgeRange      string    `json:"age_range"`
	Barcode       string    `json:"barcode"`
	MRP           float64   `json:"mrp"`
	DiscountPrice *float64  `json:"discount_price,omitempty"`
	StockQuantity int       `json:"stock_quantity"`
	ImageURL      string    `json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EffectivePrice returns the price a unit actually sells at.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice > 0 && *p.DiscountPrice < p.MRP {
		return *p.DiscountPrice
	}
	return p.MRP
}

// ProductImage is an additional gallery image for a product.
type ProductImage struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	ImageURL     string `json:"image_url"`
	DisplayOrder int    `json:"display_order"`
}

// ProductDetail is the API response for a single product view.
type ProductDetail struct {
	Product
	Images []ProductImage `json:"images"`
}

// ProductFilter narrows catalog listings. Zero values mean "no filter".
type ProductFilter struct {
	Category string
	AgeRange string
	MinPrice float64
	MaxPrice float64
	Search   string
	Sort     string // price_asc, price_desc, newest
	Limit    int
	Offset   int
}

// CreateProductRequest is the admin DTO for adding a product.
type CreateProductRequest struct {
	Name          string   `json:"name" validate:"required,notblank,max=255"`
	Description   string   `json:"description" validate:"max=2000"`
	Brand         string   `json:"brand" validate:"max=255"`
	SubBrand      string   `json:"sub_brand" validate:"max=255"`
	Category      string   `json:"category" validate:"max=255"`
	AgeRange      string   `json:"age_range" validate:"max=50"`
	Barcode       string   `json:"barcode" validate:"max=64"`
	MRP           *float64 `json:"mrp" validate:"required,gt=0"`
	DiscountPrice *float64 `json:"discount_price" validate:"omitempty,gt=0"`
	StockQuantity *int     `json:"stock_quantity" validate:"required,gte=0"`
	ImageURL      string   `json:"image_url" validate:"omitempty,url,max=1024"`
}

// UpdateProductRequest is the admin DTO for editing a product. All fields
// are optional; nil means "leave unchanged".
type UpdateProductRequest struct {
	Name          *string  `json:"name" validate:"omitempty,notblank,max=255"`
	Description   *string  `json:"description" validate:"omitempty,max=2000"`
	Brand         *string  `json:"brand" validate:"omitempty,max=255"`
	SubBrand      *string  `json:"sub_brand" validate:"omitempty,max=255"`
	Category      *string  `json:"category" validate:"omitempty,max=255"`
	AgeRange      *string  `json:"age_range" validate:"omitempty,max=50"`
	Barcode       *string  `json:"barcode" validate:"omitempty,max=64"`
	MRP           *float64 `json:"mrp" validate:"omitempty,gt=0"`
	DiscountPrice *float64 `json:"discount_price" validate:"omitempty,gte=0"`
	StockQuantity *int     `json:"stock_quantity" validate:"omitempty,gte=0"`
	ImageURL      *string  `json:"image_url" validate:"omitempty,max=1024"`
}
