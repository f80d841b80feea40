package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/zenithhr/hrms-backend-go/internal/domain/auth"
	"github.com/zenithhr/hrms-backend-go/internal/domain/user"
	"github.com/zenithhr/hrms-backend-go/internal/handler/http/response"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller, resolved once per request from the
// verified token.
type Identity struct {
	UserID       string
	Email        string
	EmployeeID   *string
	Role         user.Role
	Capabilities user.Capabilities
}

// IdentityFromContext returns the caller identity set by AuthRequired.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

// AuthRequired rejects requests without a valid access token and stores the
// resolved Identity in the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			userID, _ := claims["user_id"].(string)
			email, _ := claims["email"].(string)
			roleStr, _ := claims["role"].(string)
			role := user.Role(roleStr)

			identity := Identity{
				UserID:       userID,
				Email:        email,
				Role:         role,
				Capabilities: user.CapabilitiesFor(role),
			}
			if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
				identity.EmployeeID = &employeeID
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// RequirePermission gates a route on one module action.
func RequirePermission(module user.Module, check func(user.Actions) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			if !identity.Capabilities.Can(module, check) {
				response.Forbidden(w, "You do not have permission to perform this action")
				return
			}
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// AdminOnly restricts a route to the admin role.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}
		if identity.Role != user.RoleAdmin {
			response.Forbidden(w, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
