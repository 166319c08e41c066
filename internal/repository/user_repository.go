package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/toykart/storefront/internal/model"
	"github.com/toykart/storefront/internal/service"
)

// UserRepository provides data access for users, profiles and role grants.
type UserRepository struct {
	pool Pool
}

// NewUserRepository creates a new UserRepository with the given pool.
func NewUserRepository(pool Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Insert creates a user row.
// Returns service.ErrEmailTaken when the email is already registered.
func (r *UserRepository) Insert(ctx context.Context, user *model.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`,
		user.ID, user.Email, user.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return service.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by email.
// Returns nil, nil when not found (service layer handles this).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`

	var user model.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a user by id.
// Returns nil, nil when not found.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`

	var user model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id %s: %w", id, err)
	}
	return &user, nil
}

// UpsertProfile creates or updates the profile row for a user.
func (r *UserRepository) UpsertProfile(ctx context.Context, profile *model.Profile) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, full_name, phone_number)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE
		 SET full_name = EXCLUDED.full_name,
		     phone_number = EXCLUDED.phone_number,
		     updated_at = now()`,
		profile.UserID, profile.FullName, profile.PhoneNumber)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a user's profile.
// Returns nil, nil when no profile row exists yet.
func (r *UserRepository) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	query := `SELECT user_id, full_name, phone_number, updated_at FROM profiles WHERE user_id = $1`

	var p model.Profile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.FullName, &p.PhoneNumber, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile %s: %w", userID, err)
	}
	return &p, nil
}

// HasRole reports whether a user holds the given role.
func (r *UserRepository) HasRole(ctx context.Context, userID, role string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2)`

	var has bool
	if err := r.pool.QueryRow(ctx, query, userID, role).Scan(&has); err != nil {
		return false, fmt.Errorf("check role %s for %s: %w", role, userID, err)
	}
	return has, nil
}

// GrantRole records a role for a user. Granting an already-held role is a
// no-op.
func (r *UserRepository) GrantRole(ctx context.Context, userID, role string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)
		 ON CONFLICT (user_id, role) DO NOTHING`,
		userID, role)
	if err != nil {
		return fmt.Errorf("grant role %s to %s: %w", role, userID, err)
	}
	return nil
}

// RevokeRole removes a role from a user.
func (r *UserRepository) RevokeRole(ctx context.Context, userID, role string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM user_roles WHERE user_id = $1 AND role = $2`, userID, role)
	if err != nil {
		return fmt.Errorf("revoke role %s from %s: %w", role, userID, err)
	}
	return nil
}

// ListAdmins returns all users holding the admin role, joined with their
// account and profile details.
func (r *UserRepository) ListAdmins(ctx context.Context) ([]model.AdminEntry, error) {
	query := `
		SELECT ur.user_id, u.email, COALESCE(p.full_name, ''), ur.created_at
		FROM user_roles ur
		JOIN users u ON u.id = ur.user_id
		LEFT JOIN profiles p ON p.user_id = ur.user_id
		WHERE ur.role = 'admin'
		ORDER BY ur.created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	admins := []model.AdminEntry{}
	for rows.Next() {
		var a model.AdminEntry
		if err := rows.Scan(&a.UserID, &a.Email, &a.FullName, &a.GrantedAt); err != nil {
			return nil, fmt.Errorf("scan admin entry: %w", err)
		}
		admins = append(admins, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate admin rows: %w", err)
	}
	return admins, nil
}
