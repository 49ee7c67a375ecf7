package reviewhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"perfpoints/internal/domain/audit"
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
	Audit   *audit.Service
	Metrics *metrics.Collector
}

func NewHandler(service *points.Service, auditSvc *audit.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Audit: auditSvc, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	reviewers := middleware.RequireRoles(employee.RoleManager, employee.RoleAdmin, employee.RolePresident, employee.RoleBoss)
	r.Route("/reviews", func(r chi.Router) {
		r.Use(reviewers)
		r.Get("/pending", h.handlePendingReviews)
		r.Post("/{entryID}/approve", h.handleApprove)
		r.Post("/{entryID}/reject", h.handleReject)
		r.Get("/{entryID}/audit", h.handleEntryAudit)
	})
}

func (h *Handler) handlePendingReviews(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	page := shared.ParsePagination(r, defaultPageSize, maxPageSize)
	entries, total, err := h.Service.PendingReviews(r.Context(), caller.EmployeeID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "review_queue_failed", "failed to list pending reviews", middleware.GetRequestID(r.Context()))
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

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.handleDecision(w, r, points.ActionApprove)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.handleDecision(w, r, points.ActionReject)
}

func (h *Handler) handleDecision(w http.ResponseWriter, r *http.Request, action string) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	entryID := chi.URLParam(r, "entryID")
	var payload struct {
		Comments string `json:"comments"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
			return
		}
	}

	var entry points.Entry
	var err error
	if action == points.ActionApprove {
		entry, err = h.Service.Approve(r.Context(), entryID, caller.EmployeeID, payload.Comments)
	} else {
		entry, err = h.Service.Reject(r.Context(), entryID, caller.EmployeeID, payload.Comments)
	}

	switch {
	case errors.Is(err, points.ErrEntryNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "entry not found", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, points.ErrCommentRequired):
		api.Fail(w, http.StatusBadRequest, "comment_required", "a rejection comment is required", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, points.ErrReviewDenied):
		api.Fail(w, http.StatusForbidden, "review_denied", "not allowed to review this entry", middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, points.ErrEntryConflict):
		h.Metrics.ReviewConflict()
		api.Fail(w, http.StatusConflict, "entry_conflict", "entry is no longer pending", middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "review_failed", "failed to review entry", middleware.GetRequestID(r.Context()))
		return
	}

	if action == points.ActionApprove {
		h.Metrics.EntryApproved()
	} else {
		h.Metrics.EntryRejected()
	}
	if err := h.Audit.Record(r.Context(), entryID, caller.EmployeeID, action, payload.Comments, middleware.GetRequestID(r.Context())); err != nil {
		slog.Warn("review audit record failed", "entryID", entryID, "action", action, "err", err)
	}
	api.Success(w, entry, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEntryAudit(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryID")
	if _, err := h.Service.GetEntry(r.Context(), entryID); err != nil {
		if errors.Is(err, points.ErrEntryNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "entry not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "audit_list_failed", "failed to load audit trail", middleware.GetRequestID(r.Context()))
		return
	}

	events, err := h.Audit.ListForEntry(r.Context(), entryID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "audit_list_failed", "failed to load audit trail", middleware.GetRequestID(r.Context()))
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	api.Success(w, events, middleware.GetRequestID(r.Context()))
}
