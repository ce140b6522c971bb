package reporthandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"payrollpro/internal/domain/reports"
	"payrollpro/internal/transport/http/api"
	"payrollpro/internal/transport/http/middleware"
	"payrollpro/internal/transport/http/shared"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.handleDashboard)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	month, year := shared.ParsePeriod(r)

	stats, err := h.Service.Stats(r.Context(), month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "failed to compute dashboard", reqID)
		return
	}
	api.Success(w, stats, reqID)
}
