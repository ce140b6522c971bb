package settingshandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"payrollpro/internal/domain/settings"
	"payrollpro/internal/transport/http/api"
	"payrollpro/internal/transport/http/middleware"
)

type Handler struct {
	Service *settings.Service
}

func NewHandler(service *settings.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Put("/", h.handleUpdate)
		r.Post("/reminder/dismiss", h.handleDismissReminder)
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Get(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var update settings.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	current, err := h.Service.Apply(r.Context(), update)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "failed to save settings", reqID)
		return
	}
	api.Success(w, current, reqID)
}

func (h *Handler) handleDismissReminder(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Service.DismissReminder(r.Context(), time.Now().UTC()); err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "failed to dismiss reminder", reqID)
		return
	}
	api.Success(w, h.Service.Get(), reqID)
}
