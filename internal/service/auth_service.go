package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/toykart/storefront/internal/model"
)

// UserRepositoryInterface defines the interface for user data access.
type UserRepositoryInterface interface {
	Insert(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpsertProfile(ctx context.Context, profile *model.Profile) error
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	HasRole(ctx context.Context, userID, role string) (bool, error)
	GrantRole(ctx context.Context, userID, role string) error
	RevokeRole(ctx context.Context, userID, role string) error
	ListAdmins(ctx context.Context) ([]model.AdminEntry, error)
}

// SessionClaims are the JWT claims carried by a session token.
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService provides registration, login, profile and role management.
type AuthService struct {
	users          UserRepositoryInterface
	jwtSecret      []byte
	tokenTTL       time.Duration
	rootAdminEmail string
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserRepositoryInterface, jwtSecret string, tokenTTL time.Duration, rootAdminEmail string) *AuthService {
	return &AuthService{
		users:          users,
		jwtSecret:      []byte(jwtSecret),
		tokenTTL:       tokenTTL,
		rootAdminEmail: strings.ToLower(rootAdminEmail),
	}
}

func (s *AuthService) signToken(user *model.User) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a session token and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.jwtSecret, nil
		})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// Register creates an account with a bcrypt-hashed password and an initial
// profile, then returns a session token.
// Returns ErrEmailTaken when the email is already registered.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	profile := &model.Profile{UserID: user.ID, FullName: req.FullName}
	if err := s.users.UpsertProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{Token: token, User: *user}, nil
}

// Login verifies credentials and returns a session token.
// Returns ErrInvalidCredentials on a wrong email or password; the two
// cases are indistinguishable on purpose.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{Token: token, User: *user}, nil
}

// GetProfile returns a user's profile, creating an empty view when no
// profile row exists yet.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return &model.Profile{UserID: userID}, nil
	}
	return profile, nil
}

// UpdateProfile applies the non-nil fields of req to a user's profile.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.Profile, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		profile.PhoneNumber = *req.PhoneNumber
	}
	if err := s.users.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// IsAdmin reports whether a user may access the back office. The root
// admin qualifies without a role row.
func (s *AuthService) IsAdmin(ctx context.Context, userID, email string) (bool, error) {
	if s.isRoot(email) {
		return true, nil
	}
	return s.users.HasRole(ctx, userID, model.RoleAdmin)
}

// IsRootAdmin reports whether the email belongs to the configured root
// admin, who alone manages role grants.
func (s *AuthService) IsRootAdmin(email string) bool {
	return s.isRoot(email)
}

func (s *AuthService) isRoot(email string) bool {
	return s.rootAdminEmail != "" && strings.EqualFold(email, s.rootAdminEmail)
}

// ListAdmins returns all admin-role grants.
func (s *AuthService) ListAdmins(ctx context.Context) ([]model.AdminEntry, error) {
	return s.users.ListAdmins(ctx)
}

// GrantAdmin promotes the user registered under the given email.
// Returns ErrUserNotFound when no account carries the email.
func (s *AuthService) GrantAdmin(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.users.GrantRole(ctx, user.ID, model.RoleAdmin)
}

// RevokeAdmin removes a user's admin role.
// Returns ErrRootAdminImmutable when the target is the root admin.
func (s *AuthService) RevokeAdmin(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	if s.isRoot(user.Email) {
		return ErrRootAdminImmutable
	}
	return s.users.RevokeRole(ctx, userID, model.RoleAdmin)
}
