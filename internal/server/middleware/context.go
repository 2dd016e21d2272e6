package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/agrisetu/agrisetu/internal/authz"
)

type contextKey string

const (
	ContextKeyUserID   contextKey = "user_id"
	ContextKeyUserRole contextKey = "role"
)

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(ContextKeyUserID).(uuid.UUID)
	return v, ok
}

func RoleFromContext(ctx context.Context) (authz.Role, bool) {
	v, ok := ctx.Value(ContextKeyUserRole).(authz.Role)
	return v, ok
}
