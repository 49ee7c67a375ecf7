package entryhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"perfpoints/internal/domain/catalog"
	"perfpoints/internal/domain/employee"
	"perfpoints/internal/domain/points"
	"perfpoints/internal/platform/metrics"
	"perfpoints/internal/transport/http/api"
	"perfpoints/internal/transport/http/middleware"
	"perfpoints/internal/transport/http/shared"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type Handler struct {
	Service *points.Service
	Metrics *metrics.Collector
}

func NewHandler(service *points.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/entries", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleListEntries)
		r.Post("/", h.handleCreateEntry)
		r.Post("/preview", h.handlePreview)
		r.Get("/{entryID}", h.handleGetEntry)
	})
	r.Route("/rules", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleListRules)
		r.With(middleware.RequireRoles(employee.RoleAdmin, employee.RolePresident, employee.RoleBoss)).Post("/", h.handleCreateRule)
	})
}

type entryPayload struct {
	StandardID    int64    `json:"standardId"`
	EntryDate     string   `json:"entryDate"`
	Checked       bool     `json:"checked"`
	Quantity      *string  `json:"quantity"`
	Description   string   `json:"description"`
	EvidenceFiles []string `json:"evidenceFiles"`
}

func (p entryPayload) parse(w http.ResponseWriter, requestID string) (points.Input, time.Time, bool) {
	v := shared.NewValidator()
	if p.StandardID <= 0 {
		v.Add("standardId", "standard id is required")
	}
	entryDate, dateOK := v.Date("entryDate", p.EntryDate)

	input := points.Input{Checked: p.Checked}
	if p.Quantity != nil {
		quantity, err := decimal.NewFromString(*p.Quantity)
		if err != nil {
			v.Add("quantity", "must be a decimal number")
		} else if quantity.IsNegative() {
			v.Add("quantity", "must not be negative")
		} else {
			input.Number = &quantity
		}
	}
	if v.Reject(w, requestID) {
		return points.Input{}, time.Time{}, false
	}
	if !dateOK {
		return points.Input{}, time.Time{}, false
	}
	return input, entryDate, true
}

func (h *Handler) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload entryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	input, entryDate, ok := payload.parse(w, middleware.GetRequestID(r.Context()))
	if !ok {
		return
	}

	entry, err := h.Service.CreateEntry(r.Context(), caller.EmployeeID, payload.StandardID, input, payload.Description, payload.EvidenceFiles, entryDate)
	switch {
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
	case errors.Is(err, points.ErrEmployeeInactive):
		api.Fail(w, http.StatusForbidden, "employee_inactive", "inactive employees cannot submit entries", middleware.GetRequestID(r.Context()))
	case errors.Is(err, catalog.ErrStandardNotFound), errors.Is(err, catalog.ErrStandardInactive):
		api.Fail(w, http.StatusBadRequest, "invalid_standard", "standard not found or inactive", middleware.GetRequestID(r.Context()))
	case errors.Is(err, points.ErrInvalidInput):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid entry input", middleware.GetRequestID(r.Context()))
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "entry_create_failed", "failed to create entry", middleware.GetRequestID(r.Context()))
	default:
		h.Metrics.EntryCreated()
		api.Created(w, entry, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	var payload entryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	input, entryDate, ok := payload.parse(w, middleware.GetRequestID(r.Context()))
	if !ok {
		return
	}

	result, err := h.Service.Preview(r.Context(), payload.StandardID, input, payload.Description, len(payload.EvidenceFiles), entryDate)
	switch {
	case errors.Is(err, catalog.ErrStandardNotFound), errors.Is(err, catalog.ErrStandardInactive):
		api.Fail(w, http.StatusBadRequest, "invalid_standard", "standard not found or inactive", middleware.GetRequestID(r.Context()))
	case errors.Is(err, points.ErrInvalidInput):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid entry input", middleware.GetRequestID(r.Context()))
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "preview_failed", "failed to calculate preview", middleware.GetRequestID(r.Context()))
	default:
		api.Success(w, result, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleListEntries(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	status := r.URL.Query().Get("status")
	if status != "" && status != points.StatusPending && status != points.StatusApproved && status != points.StatusRejected {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "unknown status filter", middleware.GetRequestID(r.Context()))
		return
	}
	page := shared.ParsePagination(r, defaultPageSize, maxPageSize)

	entries, total, err := h.Service.ListFor(r.Context(), caller.EmployeeID, status, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "entry_list_failed", "failed to list entries", middleware.GetRequestID(r.Context()))
		return
	}
	if entries == nil {
		entries = []points.EntryWithType{}
	}
	api.Success(w, map[string]any{
		"entries": entries,
		"total":   total,
		"limit":   page.Limit,
		"offset":  page.Offset,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	entry, err := h.Service.GetEntry(r.Context(), chi.URLParam(r, "entryID"))
	if errors.Is(err, points.ErrEntryNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "entry not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "entry_get_failed", "failed to load entry", middleware.GetRequestID(r.Context()))
		return
	}
	if !h.canSee(r, caller, entry) {
		api.Fail(w, http.StatusNotFound, "not_found", "entry not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entry, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.Service.ListRules(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "rule_list_failed", "failed to list rules", middleware.GetRequestID(r.Context()))
		return
	}
	if rules == nil {
		rules = []points.CalculationRule{}
	}
	api.Success(w, rules, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateRule(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name       string          `json:"name"`
		RuleType   string          `json:"ruleType"`
		Conditions json.RawMessage `json:"conditions"`
		Value      string          `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	value, err := decimal.NewFromString(payload.Value)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "rule value must be a decimal number", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Service.CreateRule(r.Context(), points.CalculationRule{
		Name:       payload.Name,
		RuleType:   payload.RuleType,
		Conditions: payload.Conditions,
		Value:      value,
		IsActive:   true,
	})
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid rule", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]int64{"id": id}, middleware.GetRequestID(r.Context()))
}

// canSee mirrors the list scoping: own entries always, otherwise the
// submitter must fall inside the caller's reviewable departments.
func (h *Handler) canSee(r *http.Request, caller middleware.Caller, entry points.Entry) bool {
	if entry.EmployeeID == caller.EmployeeID {
		return true
	}
	submitter, err := h.Service.Directory.GetByID(r.Context(), entry.EmployeeID)
	if err != nil {
		return false
	}
	departments := points.ReviewableDepartments(points.Party{
		ID:           caller.EmployeeID,
		Role:         caller.Role,
		DepartmentID: caller.DepartmentID,
	})
	switch {
	case departments == nil:
		return true
	case len(departments) == 0:
		return false
	default:
		if submitter.DepartmentID == nil {
			return false
		}
		for _, department := range departments {
			if department == *submitter.DepartmentID {
				return true
			}
		}
		return false
	}
}
