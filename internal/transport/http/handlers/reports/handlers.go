package reporthandler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"perfpoints/internal/domain/employee"
	"perfpoints/internal/domain/points"
	"perfpoints/internal/export"
	"perfpoints/internal/transport/http/api"
	"perfpoints/internal/transport/http/middleware"
)

type Handler struct {
	Service       *points.Service
	DefaultTarget decimal.Decimal
}

func NewHandler(service *points.Service, defaultTarget decimal.Decimal) *Handler {
	return &Handler{Service: service, DefaultTarget: defaultTarget}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/summary", h.handleSummary)
		r.Get("/summary.xlsx", h.handleSummaryExcel)
		r.Get("/summary.pdf", h.handleSummaryPDF)
	})
}

type reportQuery struct {
	employeeID string
	year       int
	month      time.Month
	target     decimal.Decimal
}

func (h *Handler) parseQuery(w http.ResponseWriter, r *http.Request) (reportQuery, bool) {
	requestID := middleware.GetRequestID(r.Context())
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return reportQuery{}, false
	}

	now := time.Now().UTC()
	q := reportQuery{
		employeeID: caller.EmployeeID,
		year:       now.Year(),
		month:      now.Month(),
		target:     h.DefaultTarget,
	}
	if raw := r.URL.Query().Get("employeeId"); raw != "" {
		q.employeeID = raw
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 2000 || year > 2200 {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid year", requestID)
			return reportQuery{}, false
		}
		q.year = year
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid month", requestID)
			return reportQuery{}, false
		}
		q.month = time.Month(month)
	}
	if raw := r.URL.Query().Get("target"); raw != "" {
		target, err := decimal.NewFromString(raw)
		if err != nil || !target.IsPositive() {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "target must be a positive decimal", requestID)
			return reportQuery{}, false
		}
		q.target = target
	}

	if q.employeeID != caller.EmployeeID {
		allowed, err := h.mayViewEmployee(r, caller, q.employeeID)
		if err != nil {
			if errors.Is(err, employee.ErrNotFound) {
				api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
			} else {
				api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", requestID)
			}
			return reportQuery{}, false
		}
		if !allowed {
			api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to view this employee", requestID)
			return reportQuery{}, false
		}
	}
	return q, true
}

// mayViewEmployee applies the review scope to reporting: reviewers see the
// employees whose entries they could review, everyone sees themselves.
func (h *Handler) mayViewEmployee(r *http.Request, caller middleware.Caller, employeeID string) (bool, error) {
	subject, err := h.Service.Directory.GetByID(r.Context(), employeeID)
	if err != nil {
		return false, err
	}
	departments := points.ReviewableDepartments(points.Party{
		ID:           caller.EmployeeID,
		Role:         caller.Role,
		DepartmentID: caller.DepartmentID,
	})
	switch {
	case departments == nil:
		return true, nil
	case len(departments) == 0:
		return false, nil
	default:
		if subject.DepartmentID == nil {
			return false, nil
		}
		for _, department := range departments {
			if department == *subject.DepartmentID {
				return true, nil
			}
		}
		return false, nil
	}
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseQuery(w, r)
	if !ok {
		return
	}
	summary, err := h.Service.Aggregator.Summary(r.Context(), q.employeeID, q.year, q.month, q.target)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSummaryExcel(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseQuery(w, r)
	if !ok {
		return
	}
	summary, err := h.Service.Aggregator.Summary(r.Context(), q.employeeID, q.year, q.month, q.target)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", middleware.GetRequestID(r.Context()))
		return
	}
	entries, err := h.Service.MonthlyEntries(r.Context(), q.employeeID, q.year, q.month)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", middleware.GetRequestID(r.Context()))
		return
	}

	payload, err := export.MonthlyEntriesExcel(q.employeeID, q.year, q.month, entries, summary)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to render workbook", middleware.GetRequestID(r.Context()))
		return
	}
	filename := fmt.Sprintf("points-%s-%04d-%02d.xlsx", q.employeeID, q.year, int(q.month))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(payload)
}

func (h *Handler) handleSummaryPDF(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseQuery(w, r)
	if !ok {
		return
	}
	summary, err := h.Service.Aggregator.Summary(r.Context(), q.employeeID, q.year, q.month, q.target)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", middleware.GetRequestID(r.Context()))
		return
	}
	subject, err := h.Service.Directory.GetByID(r.Context(), q.employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", middleware.GetRequestID(r.Context()))
		return
	}

	payload, err := export.MonthlySummaryPDF(subject.FullName, q.year, q.month, summary)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to render pdf", middleware.GetRequestID(r.Context()))
		return
	}
	filename := fmt.Sprintf("points-%s-%04d-%02d.pdf", q.employeeID, q.year, int(q.month))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(payload)
}
