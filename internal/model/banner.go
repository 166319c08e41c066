package model

import "time"

// Banner is the single announcement banner shown across the storefront.
type Banner struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	IsActive  bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateBannerRequest is the admin DTO for editing the banner.
type UpdateBannerRequest struct {
	Message  string `json:"message" validate:"required,max=500"`
	IsActive *bool  `json:"is_active" validate:"required"`
}
