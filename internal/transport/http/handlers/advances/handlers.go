package advancehandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"payrollpro/internal/domain/advances"
	"payrollpro/internal/domain/employees"
	"payrollpro/internal/transport/http/api"
	"payrollpro/internal/transport/http/middleware"
	"payrollpro/internal/transport/http/shared"
)

type Handler struct {
	Service *advances.Service
}

func NewHandler(service *advances.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/advances", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Route("/{advanceID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
			r.Post("/approve", h.handleApprove)
			r.Post("/reject", h.handleReject)
			r.Post("/repay", h.handleRepay)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var (
		list []advances.Advance
		err  error
	)
	query := r.URL.Query()
	switch {
	case query.Get("employeeId") != "":
		list, err = h.Service.Store.ListByEmployee(r.Context(), query.Get("employeeId"))
	case query.Get("status") != "":
		list, err = h.Service.Store.ListByStatus(r.Context(), query.Get("status"))
	case query.Get("month") != "" || query.Get("year") != "":
		month, year := shared.ParsePeriod(r)
		list, err = h.Service.Store.ListByPeriod(r.Context(), month, year)
	default:
		list, err = h.Service.List(r.Context())
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "failed to list advances", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	advance, err := h.Service.Get(r.Context(), chi.URLParam(r, "advanceID"))
	if err != nil {
		failAdvance(w, err, reqID)
		return
	}
	api.Success(w, advance, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var input advances.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if !validateInput(w, input, reqID) {
		return
	}

	advance, err := h.Service.Create(r.Context(), input)
	if err != nil {
		failAdvance(w, err, reqID)
		return
	}
	api.Created(w, advance, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var input advances.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if !validateInput(w, input, reqID) {
		return
	}

	advance, err := h.Service.Update(r.Context(), chi.URLParam(r, "advanceID"), input)
	if err != nil {
		failAdvance(w, err, reqID)
		return
	}
	api.Success(w, advance, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "advanceID")); err != nil {
		failAdvance(w, err, reqID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.Approve)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.Reject)
}

func (h *Handler) handleRepay(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.MarkRepaid)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id string) (*advances.Advance, error)) {
	reqID := middleware.GetRequestID(r.Context())
	advance, err := fn(r.Context(), chi.URLParam(r, "advanceID"))
	if err != nil {
		failAdvance(w, err, reqID)
		return
	}
	api.Success(w, advance, reqID)
}

func validateInput(w http.ResponseWriter, input advances.Input, reqID string) bool {
	v := shared.NewValidator()
	v.Required("employeeId", input.EmployeeID, "employee is required")
	v.Positive("amount", input.Amount, "amount must be greater than zero")
	v.Period("month", input.Month, "year", input.Year)
	return !v.Reject(w, reqID)
}

func failAdvance(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, advances.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "advance not found", reqID)
	case errors.Is(err, advances.ErrInvalidState):
		api.Fail(w, http.StatusConflict, "invalid_state", "advance is not in a state allowing this transition", reqID)
	case errors.Is(err, employees.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "storage_error", "advance operation failed", reqID)
	}
}
