package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tair/warehouse-inventory/pkg/auth"
	"github.com/tair/warehouse-inventory/pkg/httputil"
	"github.com/tair/warehouse-inventory/pkg/logger"
)

type contextKey string

const claimsKey contextKey = "claims"

// ClaimsFromContext returns the claims stored by AdminOnly
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

// Protect wraps mutating handlers
type Protect func(http.HandlerFunc) http.HandlerFunc

// NoAuth leaves handlers unprotected
func NoAuth(next http.HandlerFunc) http.HandlerFunc { return next }

// AdminOnly requires a bearer token signed with secret whose role is admin.
// An empty secret disables the check.
func AdminOnly(secret string) Protect {
	if secret == "" {
		return NoAuth
	}

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn(r.Context()).Msg("Missing authorization header")
				httputil.RespondMessage(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Warn(r.Context()).Msg("Invalid authorization header format")
				httputil.RespondMessage(w, http.StatusUnauthorized, "Invalid authorization header format")
				return
			}

			claims, err := auth.ValidateToken(secret, parts[1])
			if err != nil {
				logger.Warn(r.Context()).Err(err).Msg("Invalid token")
				httputil.RespondMessage(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			if claims.Role != auth.RoleAdmin {
				logger.Warn(r.Context()).
					Uint("user_id", claims.UserID).
					Str("role", claims.Role).
					Msg("Admin access denied")
				httputil.RespondMessage(w, http.StatusForbidden, "Admin access required")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}
