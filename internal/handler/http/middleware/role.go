package middleware

import (
	"fmt"
	"net/http"

	"github.com/timepulse/timepulse-backend/internal/domain/auth"
	"github.com/timepulse/timepulse-backend/internal/handler/http/response"
)

// RequirePermission checks if user has specific permission
func RequirePermission(permission auth.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ac, ok := auth.FromContext(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if !ac.Has(permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, ac.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireTenant rejects sessions that are not bound to a tenant.
func RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ac, ok := auth.FromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}
		if ac.TenantID == "" {
			response.HandleError(w, auth.ErrTenantRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
