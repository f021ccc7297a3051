package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/timepulse/timepulse-backend/internal/domain/auth"
	"github.com/timepulse/timepulse-backend/internal/handler/http/response"
	"github.com/timepulse/timepulse-backend/internal/pkg/jwt"
)

// RevocationChecker reports access tokens invalidated by logout.
type RevocationChecker interface {
	IsTokenRevoked(token string) bool
}

// AuthRequired accepts only unrevoked access tokens and resolves the
// caller's AuthorizationContext onto the request context. It must run after
// jwtauth.Verifier.
func AuthRequired(revocations RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != jwt.TokenTypeAccess {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if revocations != nil && revocations.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			userID, _ := claims["user_id"].(string)
			employeeID, _ := claims["employee_id"].(string)
			tenantID, _ := claims["tenant_id"].(string)
			role, _ := claims["role"].(string)
			if userID == "" || employeeID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			ac := auth.NewAuthorizationContext(userID, employeeID, tenantID, auth.Role(role))
			next.ServeHTTP(w, r.WithContext(auth.WithAuthorization(r.Context(), ac)))
		}
		return http.HandlerFunc(hfn)
	}
}
