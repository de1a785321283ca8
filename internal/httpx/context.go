package httpx

import (
	"context"

	"github.com/google/uuid"

	"tableside/internal/models"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	userIDKey    contextKey = "user_id"
	userRoleKey  contextKey = "user_role"
)

// WithRequestID stores the request correlation ID in the context
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request correlation ID, or "" if absent
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithUser stores the authenticated identity in the context
func WithUser(ctx context.Context, id uuid.UUID, role models.Role) context.Context {
	ctx = context.WithValue(ctx, userIDKey, id)
	return context.WithValue(ctx, userRoleKey, role)
}

// UserID returns the authenticated user's ID, or nil for guests
func UserID(ctx context.Context) *uuid.UUID {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

// UserRole returns the authenticated user's role, or "" for guests
func UserRole(ctx context.Context) models.Role {
	role, _ := ctx.Value(userRoleKey).(models.Role)
	return role
}
