package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"payrollpro/internal/domain/auth"
	"payrollpro/internal/transport/http/api"
	"payrollpro/internal/transport/http/middleware"
)

type Handler struct {
	Service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.Get("/auth/status", h.handleStatus)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	token, expires, err := h.Service.Login(payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrAuthDisabled):
			api.Fail(w, http.StatusBadRequest, "auth_disabled", "authentication is not configured", reqID)
		case errors.Is(err, auth.ErrInvalidCredentials):
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "invalid credentials", reqID)
		default:
			api.Fail(w, http.StatusInternalServerError, "internal_error", "login failed", reqID)
		}
		return
	}

	api.Success(w, map[string]any{
		"token":     token,
		"expiresAt": expires,
	}, reqID)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]bool{"authRequired": h.Service.Enabled()}, middleware.GetRequestID(r.Context()))
}
