package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"perfpoints/internal/domain/auth"
	"perfpoints/internal/domain/employee"
)

func TestRequestIDGeneratesAndPropagates(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if seen == "" {
		t.Fatal("expected a generated request id")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seen {
		t.Fatalf("header id %q != context id %q", got, seen)
	}

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Request-ID", "client-supplied")
	handler.ServeHTTP(httptest.NewRecorder(), r)
	if seen != "client-supplied" {
		t.Fatalf("request id = %q, want client-supplied", seen)
	}
}

func TestAuthAttachesCaller(t *testing.T) {
	const secret = "test-secret"
	token, err := auth.GenerateToken(secret, auth.Claims{
		EmployeeID:   "emp-1",
		Role:         "manager",
		DepartmentID: "dept-1",
	}, time.Minute)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	var caller Caller
	var ok bool
	handler := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok = GetCaller(r.Context())
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), r)
	if !ok {
		t.Fatal("expected caller in context")
	}
	if caller.EmployeeID != "emp-1" || caller.Role != employee.RoleManager || caller.DepartmentID != "dept-1" {
		t.Fatalf("unexpected caller: %+v", caller)
	}
}

func TestAuthIgnoresBadTokens(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not.a.token"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var ok bool
			handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, ok = GetCaller(r.Context())
			}))
			r := httptest.NewRequest("GET", "/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			handler.ServeHTTP(httptest.NewRecorder(), r)
			if ok {
				t.Fatal("expected anonymous request")
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	guard := RequireRoles(employee.RoleAdmin, employee.RoleBoss)(next)

	tests := []struct {
		name       string
		caller     *Caller
		wantStatus int
	}{
		{name: "anonymous", wantStatus: http.StatusUnauthorized},
		{name: "wrong role", caller: &Caller{EmployeeID: "e1", Role: employee.RoleEmployee}, wantStatus: http.StatusForbidden},
		{name: "allowed role", caller: &Caller{EmployeeID: "e2", Role: employee.RoleBoss}, wantStatus: http.StatusNoContent},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tc.caller != nil {
				r = r.WithContext(context.WithValue(r.Context(), ctxKeyCaller, *tc.caller))
			}
			rec := httptest.NewRecorder()
			guard.ServeHTTP(rec, r)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}
