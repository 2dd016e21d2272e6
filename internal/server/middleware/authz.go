package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/agrisetu/agrisetu/internal/authz"
	"github.com/agrisetu/agrisetu/internal/domain"
)

// RoleSource resolves a user's current role. Implementations read the
// role store, optionally through a cache.
type RoleSource interface {
	Get(ctx context.Context, userID uuid.UUID) (authz.Role, error)
}

// RequireCapability returns middleware that admits the request only when
// the authenticated user's current role grants the given capability. It
// must be chained after Auth.
//
// The role is always re-read from the source rather than trusted from
// the token, so a role change takes effect on the next request. The
// fresh role replaces the token role in the request context.
func RequireCapability(src RoleSource, capability authz.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok || userID == uuid.Nil {
				http.Error(w, `{"title":"Unauthorized","status":401,"detail":"authentication required"}`, http.StatusUnauthorized)
				return
			}

			role, err := src.Get(r.Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// Token for a user that no longer exists.
					http.Error(w, `{"title":"Unauthorized","status":401,"detail":"unknown user"}`, http.StatusUnauthorized)
					return
				}
				// Lookup failure denies rather than falling back to the
				// token role.
				log.Error().Err(err).Str("user_id", userID.String()).Msg("authz: role lookup failed")
				http.Error(w, `{"title":"Forbidden","status":403,"detail":"insufficient permissions"}`, http.StatusForbidden)
				return
			}

			if !authz.Can(role, capability) {
				http.Error(w, `{"title":"Forbidden","status":403,"detail":"insufficient permissions"}`, http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUserRole, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
