package model

import "time"

// Roles assignable through user_roles.
const (
	RoleAdmin = "admin"
)

// User is an account row. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile holds the editable details attached to a user.
type Profile struct {
	UserID      string    `json:"user_id"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AdminEntry is one admin-role grant, as listed in the back office.
type AdminEntry struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	GrantedAt time.Time `json:"granted_at"`
}

// RegisterRequest is the DTO for creating an account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,notblank,max=100"`
}

// LoginRequest is the DTO for signing in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

// AuthResponse is returned on successful register/login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UpdateProfileRequest is the DTO for editing profile details.
type UpdateProfileRequest struct {
	FullName    *string `json:"full_name" validate:"omitempty,notblank,max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,min=10,max=15"`
}

// GrantAdminRequest is the root-admin DTO for promoting a user by email.
type GrantAdminRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}
