package cataloghandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"perfpoints/internal/domain/catalog"
	"perfpoints/internal/domain/employee"
	"perfpoints/internal/transport/http/api"
	"perfpoints/internal/transport/http/middleware"
	"perfpoints/internal/transport/http/shared"
)

type Handler struct {
	Service *catalog.Service
}

func NewHandler(service *catalog.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	manage := middleware.RequireRoles(employee.RoleAdmin, employee.RolePresident, employee.RoleBoss)
	r.Route("/standards", func(r chi.Router) {
		r.Get("/", h.handleListStandards)
		r.Get("/{standardID}", h.handleGetStandard)
		r.With(manage).Post("/", h.handleCreateStandard)
		r.With(manage).Put("/{standardID}", h.handleUpdateStandard)
		r.With(manage).Delete("/{standardID}", h.handleDeactivateStandard)
	})
	r.Get("/categories", h.handleListCategories)
}

// standardNode is the tree projection returned by the list endpoint:
// each active node with its active children nested under it.
type standardNode struct {
	catalog.Standard
	Children []standardNode `json:"children"`
}

func (h *Handler) handleListStandards(w http.ResponseWriter, r *http.Request) {
	tree, err := h.Service.LoadTree(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "standard_list_failed", "failed to list standards", middleware.GetRequestID(r.Context()))
		return
	}

	roots := tree.GetRoots()
	nodes := make([]standardNode, 0, len(roots))
	for _, root := range roots {
		nodes = append(nodes, buildNode(tree, root))
	}
	api.Success(w, nodes, middleware.GetRequestID(r.Context()))
}

func buildNode(tree *catalog.Tree, std catalog.Standard) standardNode {
	node := standardNode{Standard: std, Children: []standardNode{}}
	for _, child := range tree.GetChildren(std.ID) {
		node.Children = append(node.Children, buildNode(tree, child))
	}
	return node
}

func (h *Handler) handleGetStandard(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "standardID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid standard id", middleware.GetRequestID(r.Context()))
		return
	}
	std, err := h.Service.GetActiveStandard(r.Context(), id)
	if errors.Is(err, catalog.ErrStandardNotFound) || errors.Is(err, catalog.ErrStandardInactive) {
		api.Fail(w, http.StatusNotFound, "not_found", "standard not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "standard_get_failed", "failed to load standard", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, std, middleware.GetRequestID(r.Context()))
}

type standardPayload struct {
	Name       string  `json:"name"`
	ParentID   *int64  `json:"parentId"`
	PointValue *string `json:"pointValue"`
	InputType  string  `json:"inputType"`
	PointsType string  `json:"pointsType"`
	SortOrder  int     `json:"sortOrder"`
	IsActive   *bool   `json:"isActive"`
}

func (p standardPayload) toStandard(w http.ResponseWriter, requestID string) (catalog.Standard, bool) {
	v := shared.NewValidator()
	v.Required("name", p.Name, "standard name is required")
	v.Enum("inputType", p.InputType, catalog.InputTypes, "unknown input type")
	v.Enum("pointsType", p.PointsType, catalog.PointsTypes, "unknown points type")

	std := catalog.Standard{
		Name:       p.Name,
		ParentID:   p.ParentID,
		InputType:  p.InputType,
		PointsType: p.PointsType,
		SortOrder:  p.SortOrder,
		IsActive:   true,
	}
	if p.IsActive != nil {
		std.IsActive = *p.IsActive
	}
	if p.PointValue != nil {
		value, err := decimal.NewFromString(*p.PointValue)
		if err != nil {
			v.Add("pointValue", "must be a decimal number")
		} else if value.IsNegative() {
			v.Add("pointValue", "must not be negative")
		} else {
			std.PointValue = &value
		}
	}
	if v.Reject(w, requestID) {
		return catalog.Standard{}, false
	}
	return std, true
}

func (h *Handler) handleCreateStandard(w http.ResponseWriter, r *http.Request) {
	var payload standardPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	std, ok := payload.toStandard(w, middleware.GetRequestID(r.Context()))
	if !ok {
		return
	}

	id, err := h.Service.CreateStandard(r.Context(), std)
	if errors.Is(err, catalog.ErrParentNotFound) {
		api.Fail(w, http.StatusBadRequest, "invalid_parent", "parent standard not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "standard_create_failed", "failed to create standard", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]int64{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateStandard(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "standardID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid standard id", middleware.GetRequestID(r.Context()))
		return
	}
	var payload standardPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	std, ok := payload.toStandard(w, middleware.GetRequestID(r.Context()))
	if !ok {
		return
	}
	std.ID = id

	err = h.Service.UpdateStandard(r.Context(), std)
	switch {
	case errors.Is(err, catalog.ErrStandardNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "standard not found", middleware.GetRequestID(r.Context()))
	case errors.Is(err, catalog.ErrParentCycle):
		api.Fail(w, http.StatusBadRequest, "invalid_parent", "reparenting would create a cycle", middleware.GetRequestID(r.Context()))
	case errors.Is(err, catalog.ErrParentNotFound):
		api.Fail(w, http.StatusBadRequest, "invalid_parent", "parent standard not found", middleware.GetRequestID(r.Context()))
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "standard_update_failed", "failed to update standard", middleware.GetRequestID(r.Context()))
	default:
		api.Success(w, map[string]int64{"id": id}, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleDeactivateStandard(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "standardID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid standard id", middleware.GetRequestID(r.Context()))
		return
	}
	err = h.Service.Deactivate(r.Context(), id)
	if errors.Is(err, catalog.ErrStandardNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "standard not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "standard_deactivate_failed", "failed to deactivate standard", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deactivated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.ListCategories(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "category_list_failed", "failed to list categories", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, categories, middleware.GetRequestID(r.Context()))
}
