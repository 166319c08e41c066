package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/toykart/storefront/internal/model"
	"github.com/toykart/storefront/internal/service"
)

// BannerRepository provides data access for the announcement banner.
// The table holds a single row.
type BannerRepository struct {
	pool Pool
}

// NewBannerRepository creates a new BannerRepository with the given pool.
func NewBannerRepository(pool Pool) *BannerRepository {
	return &BannerRepository{pool: pool}
}

// Get retrieves the banner.
// Returns nil, nil when no banner row exists.
func (r *BannerRepository) Get(ctx context.Context) (*model.Banner, error) {
	var b model.Banner
	err := r.pool.QueryRow(ctx,
		`SELECT id, message, is_active, updated_at FROM announcement_banner LIMIT 1`).
		Scan(&b.ID, &b.Message, &b.IsActive, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get banner: %w", err)
	}
	return &b, nil
}

// Update overwrites the banner row.
// Returns service.ErrBannerNotFound when no row exists to update.
func (r *BannerRepository) Update(ctx context.Context, b *model.Banner) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE announcement_banner SET message = $2, is_active = $3, updated_at = now()
		 WHERE id = $1`, b.ID, b.Message, b.IsActive)
	if err != nil {
		return fmt.Errorf("update banner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrBannerNotFound
	}
	return nil
}
