package authhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"perfpoints/internal/domain/auth"
	"perfpoints/internal/domain/employee"
	"perfpoints/internal/transport/http/api"
	"perfpoints/internal/transport/http/middleware"
)

const tokenTTL = 12 * time.Hour

type Handler struct {
	Store     *employee.Store
	JWTSecret string
}

func NewHandler(store *employee.Store, jwtSecret string) *Handler {
	return &Handler{Store: store, JWTSecret: jwtSecret}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.With(middleware.RequireAuth).Get("/auth/me", h.handleMe)
	r.With(middleware.RequireAuth).Get("/employees", h.handleListEmployees)
	r.With(middleware.RequireAuth).Get("/departments", h.handleListDepartments)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	payload.Email = strings.TrimSpace(strings.ToLower(payload.Email))
	if payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "email and password required", middleware.GetRequestID(r.Context()))
		return
	}

	record, err := h.Store.FindActiveByEmail(r.Context(), payload.Email)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		slog.Warn("login lookup failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to log in", middleware.GetRequestID(r.Context()))
		return
	}
	if err := auth.CheckPassword(record.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", middleware.GetRequestID(r.Context()))
		return
	}

	departmentID := ""
	if record.DepartmentID != nil {
		departmentID = *record.DepartmentID
	}
	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{
		EmployeeID:   record.ID,
		Role:         string(record.Role),
		DepartmentID: departmentID,
	}, tokenTTL)
	if err != nil {
		slog.Warn("token generation failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to log in", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"token":    token,
		"employee": record.Employee,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	current, err := h.Store.GetByID(r.Context(), caller.EmployeeID)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "profile_failed", "failed to load profile", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, current, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.List(r.Context(), r.URL.Query().Get("departmentId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	if employees == nil {
		employees = []employee.Employee{}
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Store.ListDepartments(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_list_failed", "failed to list departments", middleware.GetRequestID(r.Context()))
		return
	}
	if departments == nil {
		departments = []employee.Department{}
	}
	api.Success(w, departments, middleware.GetRequestID(r.Context()))
}
