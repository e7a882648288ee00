package middleware

import (
	"net/http"

	"github.com/gosuda/hubreach/internal/auth"
)

// RequireRole returns middleware that checks if the authenticated user has one
// of the allowed roles. It must be chained after Auth.
//
// Returns 401 Unauthorized when no role is in context and 403 Forbidden when
// the role does not match.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := RoleFromContext(r.Context())
			if !ok || role == "" {
				http.Error(w, `{"title":"Unauthorized","status":401,"detail":"authentication required"}`, http.StatusUnauthorized)
				return
			}

			if _, match := allowed[role]; !match {
				http.Error(w, `{"title":"Forbidden","status":403,"detail":"insufficient permissions"}`, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireMember admits signed-in users and the backend service role.
func RequireMember() func(http.Handler) http.Handler {
	return RequireRole(auth.RoleAuthenticated, auth.RoleService)
}
