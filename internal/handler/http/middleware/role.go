package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/user"
	"github.com/kitabonkesaar/attendance-app-saas/internal/handler/http/response"
)

// Role checks read the explicit role claim; no email inspection, no
// implicit elevation.

// AdminOnly requires the admin role
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromContext(r)
		if !ok || role != user.RoleAdmin {
			response.Forbidden(w, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireManager requires manager or admin role
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromContext(r)
		if !ok || (role != user.RoleManager && role != user.RoleAdmin) {
			response.Forbidden(w, "Manager access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func roleFromContext(r *http.Request) (user.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}

	roleStr, ok := claims["role"].(string)
	if !ok || !user.ValidRole(roleStr) {
		return "", false
	}

	return user.Role(roleStr), true
}
