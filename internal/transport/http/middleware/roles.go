package middleware

import (
	"net/http"

	"perfpoints/internal/domain/employee"
	"perfpoints/internal/transport/http/api"
)

// RequireRoles rejects callers whose role is not in the allowed set.
// Entry-level decisions (who may review whom) stay with the domain
// authorizer; this only gates whole route groups.
func RequireRoles(roles ...employee.Role) func(http.Handler) http.Handler {
	allowed := make(map[employee.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := GetCaller(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}
			if _, ok := allowed[caller.Role]; !ok {
				api.Fail(w, http.StatusForbidden, "forbidden", "insufficient role", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetCaller(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}
