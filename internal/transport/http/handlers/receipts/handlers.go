package receipthandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"payrollpro/internal/domain/advances"
	"payrollpro/internal/domain/employees"
	"payrollpro/internal/domain/payroll"
	"payrollpro/internal/domain/receipts"
	"payrollpro/internal/transport/http/api"
	"payrollpro/internal/transport/http/middleware"
)

type Handler struct {
	Service  *receipts.Service
	Payments *payroll.Service
	Advances *advances.Service
}

func NewHandler(service *receipts.Service, paymentService *payroll.Service, advanceService *advances.Service) *Handler {
	return &Handler{Service: service, Payments: paymentService, Advances: advanceService}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/receipts", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/salary/{salaryID}", h.handleIssueForPayment)
		r.Post("/advance/{advanceID}", h.handleIssueForAdvance)
		r.Get("/salary/{salaryID}/pdf", h.handleSalaryPDF)
		r.Get("/advance/{advanceID}/pdf", h.handleAdvancePDF)
		r.Route("/{receiptID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Delete("/", h.handleDelete)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var (
		list []receipts.Receipt
		err  error
	)
	query := r.URL.Query()
	switch {
	case query.Get("employeeId") != "":
		list, err = h.Service.Store.ListByEmployee(r.Context(), query.Get("employeeId"))
	case query.Get("type") != "":
		list, err = h.Service.Store.ListByType(r.Context(), query.Get("type"))
	default:
		list, err = h.Service.List(r.Context())
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "failed to list receipts", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	receipt, err := h.Service.Get(r.Context(), chi.URLParam(r, "receiptID"))
	if err != nil {
		failReceipt(w, err, reqID)
		return
	}
	api.Success(w, receipt, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "receiptID")); err != nil {
		failReceipt(w, err, reqID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}

func (h *Handler) handleIssueForPayment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	payment, err := h.Payments.Get(r.Context(), chi.URLParam(r, "salaryID"))
	if err != nil {
		if errors.Is(err, payroll.ErrPaymentNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "salary payment not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "storage_error", "receipt operation failed", reqID)
		return
	}

	receipt, err := h.Service.IssueForPayment(r.Context(), payment, decodeSignature(r))
	if err != nil {
		failReceipt(w, err, reqID)
		return
	}
	api.Created(w, receipt, reqID)
}

func (h *Handler) handleIssueForAdvance(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	advance, err := h.Advances.Get(r.Context(), chi.URLParam(r, "advanceID"))
	if err != nil {
		if errors.Is(err, advances.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "advance not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "storage_error", "receipt operation failed", reqID)
		return
	}

	receipt, err := h.Service.IssueForAdvance(r.Context(), advance, decodeSignature(r))
	if err != nil {
		failReceipt(w, err, reqID)
		return
	}
	api.Created(w, receipt, reqID)
}

func (h *Handler) handleSalaryPDF(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	payment, err := h.Payments.Get(r.Context(), chi.URLParam(r, "salaryID"))
	if err != nil {
		if errors.Is(err, payroll.ErrPaymentNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "salary payment not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "storage_error", "receipt operation failed", reqID)
		return
	}

	data, err := h.Service.RenderSalaryPDF(r.Context(), payment)
	if err != nil {
		failReceipt(w, err, reqID)
		return
	}
	servePDF(w, fmt.Sprintf("bulletin-%02d-%d.pdf", payment.Month, payment.Year), data)
}

func (h *Handler) handleAdvancePDF(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	advance, err := h.Advances.Get(r.Context(), chi.URLParam(r, "advanceID"))
	if err != nil {
		if errors.Is(err, advances.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "advance not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "storage_error", "receipt operation failed", reqID)
		return
	}

	data, err := h.Service.RenderAdvancePDF(r.Context(), advance)
	if err != nil {
		failReceipt(w, err, reqID)
		return
	}
	servePDF(w, fmt.Sprintf("avance-%02d-%d.pdf", advance.Month, advance.Year), data)
}

func decodeSignature(r *http.Request) string {
	var payload struct {
		Signature string `json:"signature"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}
	return payload.Signature
}

func servePDF(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func failReceipt(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, receipts.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "receipt not found", reqID)
	case errors.Is(err, receipts.ErrDuplicateNumber):
		api.Fail(w, http.StatusConflict, "duplicate_key", "receipt number already issued", reqID)
	case errors.Is(err, employees.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "storage_error", "receipt operation failed", reqID)
	}
}
