package middleware

import (
	"context"
	"net/http"
	"strings"

	"perfpoints/internal/domain/auth"
	"perfpoints/internal/domain/employee"
	"perfpoints/internal/requestctx"
)

type ctxKey string

const ctxKeyCaller ctxKey = "caller"

// Caller is the authenticated employee identity attached to the request.
type Caller struct {
	EmployeeID   string
	Role         employee.Role
	DepartmentID string
}

func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			role, err := employee.ParseRole(claims.Role)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyCaller, Caller{
				EmployeeID:   claims.EmployeeID,
				Role:         role,
				DepartmentID: claims.DepartmentID,
			})
			ctx = requestctx.WithActorID(ctx, claims.EmployeeID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetCaller(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(ctxKeyCaller).(Caller)
	return caller, ok
}
