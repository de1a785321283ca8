package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tableside/internal/apperr"
)

// Role controls which endpoints a user may reach
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// User is a registered account. Guests order without one.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// RegisterRequest creates a new customer account
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *RegisterRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return apperr.ValidationError{Field: "name", Message: "name is required"}
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return apperr.ValidationError{Field: "email", Message: "a valid email is required"}
	}
	if len(req.Password) < 8 {
		return apperr.ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// LoginRequest exchanges credentials for a session token
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	if strings.TrimSpace(req.Email) == "" {
		return apperr.ValidationError{Field: "email", Message: "email is required"}
	}
	if req.Password == "" {
		return apperr.ValidationError{Field: "password", Message: "password is required"}
	}
	return nil
}

// LoginResponse carries the issued session token
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
