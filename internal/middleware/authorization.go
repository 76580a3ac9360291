package middleware

import (
	"net/http"
	"slices"

	"go.uber.org/zap"
)

// Catalog roles allowed to write
const (
	RoleSeller = "SELLER"
	RoleAdmin  = "ADMIN"
)

// RequireRole middleware ensures the caller holds at least one of the allowed roles
func RequireRole(allowedRoles []string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roles, ok := GetRoles(r.Context())
			if !ok {
				logger.Warn("Roles not found in context")
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			allowed := slices.ContainsFunc(roles, func(role string) bool {
				return slices.Contains(allowedRoles, role)
			})

			if !allowed {
				logger.Warn("Caller role not authorized",
					zap.Strings("roles", roles),
					zap.Strings("allowed_roles", allowedRoles),
				)
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireCatalogWriter admits sellers and admins
func RequireCatalogWriter(logger *zap.Logger) func(http.Handler) http.Handler {
	return RequireRole([]string{RoleSeller, RoleAdmin}, logger)
}
