package salaryhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"payrollpro/internal/domain/employees"
	"payrollpro/internal/domain/payroll"
	"payrollpro/internal/transport/http/api"
	"payrollpro/internal/transport/http/middleware"
	"payrollpro/internal/transport/http/shared"
)

type Handler struct {
	Service *payroll.Service
}

func NewHandler(service *payroll.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/salaries", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/compute", h.handleCompute)
		r.Post("/generate", h.handleGenerate)
		r.Route("/{salaryID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Post("/pay", h.handlePay)
			r.Delete("/", h.handleDelete)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var (
		list []payroll.SalaryPayment
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
		api.Fail(w, http.StatusInternalServerError, "storage_error", "failed to list salary payments", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	payment, err := h.Service.Get(r.Context(), chi.URLParam(r, "salaryID"))
	if err != nil {
		failPayment(w, err, reqID)
		return
	}
	api.Success(w, payment, reqID)
}

func (h *Handler) handleCompute(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		EmployeeID string `json:"employeeId"`
		Month      int    `json:"month"`
		Year       int    `json:"year"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee is required")
	v.Period("month", payload.Month, "year", payload.Year)
	if v.Reject(w, reqID) {
		return
	}

	payment, err := h.Service.ComputeMonthlySalary(r.Context(), payload.EmployeeID, payload.Month, payload.Year)
	if err != nil {
		failPayment(w, err, reqID)
		return
	}
	api.Success(w, payment, reqID)
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		Month int `json:"month"`
		Year  int `json:"year"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	v := shared.NewValidator()
	v.Period("month", payload.Month, "year", payload.Year)
	if v.Reject(w, reqID) {
		return
	}

	result, err := h.Service.GenerateMonthlySalaries(r.Context(), payload.Month, payload.Year)
	if err != nil {
		failPayment(w, err, reqID)
		return
	}
	api.Success(w, result, reqID)
}

func (h *Handler) handlePay(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		Amount float64 `json:"amount"`
		Notes  string  `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	payment, err := h.Service.RecordPayment(r.Context(), chi.URLParam(r, "salaryID"), payload.Amount, payload.Notes)
	if err != nil {
		failPayment(w, err, reqID)
		return
	}
	api.Success(w, payment, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "salaryID")); err != nil {
		failPayment(w, err, reqID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}

func failPayment(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, payroll.ErrPaymentNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "salary payment not found", reqID)
	case errors.Is(err, employees.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
	case errors.Is(err, payroll.ErrNegativeAmount):
		api.Fail(w, http.StatusBadRequest, "validation_error", "amount cannot be negative", reqID)
	case errors.Is(err, payroll.ErrInvalidPeriod):
		api.Fail(w, http.StatusBadRequest, "validation_error", "invalid pay period", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "storage_error", "salary operation failed", reqID)
	}
}
