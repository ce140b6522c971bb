package backuphandler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"payrollpro/internal/domain/backup"
	"payrollpro/internal/transport/http/api"
	"payrollpro/internal/transport/http/middleware"
)

type Handler struct {
	Service   *backup.Service
	Scheduler *backup.Scheduler
	Reminder  *backup.Reminder
}

func NewHandler(service *backup.Service, scheduler *backup.Scheduler, reminder *backup.Reminder) *Handler {
	return &Handler{Service: service, Scheduler: scheduler, Reminder: reminder}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/backup", func(r chi.Router) {
		r.Get("/export", h.handleExport)
		r.Post("/import", h.handleImport)
		r.Post("/clear", h.handleClear)
		r.Post("/run", h.handleRun)
		r.Get("/slots", h.handleSlots)
		r.Get("/reminder", h.handleReminder)
		r.Post("/reminder/dismiss", h.handleDismissReminder)
		r.Route("/slots/{slotID}", func(r chi.Router) {
			r.Get("/download", h.handleDownloadSlot)
			r.Post("/restore", h.handleRestoreSlot)
			r.Delete("/", h.handleDeleteSlot)
		})
	})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	data, err := h.Service.ExportJSON(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "export failed", reqID)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="paie-backup-%s.json"`, time.Now().Format("2006-01-02")))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	data, err := io.ReadAll(r.Body)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "could not read import body", reqID)
		return
	}

	bundle, err := h.Service.ImportJSON(r.Context(), data)
	if err != nil {
		failBackup(w, err, reqID)
		return
	}
	api.Success(w, map[string]any{"restored": bundle.Counts()}, reqID)
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Service.ClearAll(r.Context()); err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "clear failed", reqID)
		return
	}
	api.Success(w, map[string]bool{"cleared": true}, reqID)
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	slot, err := h.Scheduler.RunNow(r.Context())
	if err != nil {
		failBackup(w, err, reqID)
		return
	}
	api.Created(w, slot, reqID)
}

func (h *Handler) handleSlots(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Scheduler.Slots(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDownloadSlot(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	data, slot, err := h.Scheduler.ReadSlot(chi.URLParam(r, "slotID"))
	if err != nil {
		failBackup(w, err, reqID)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", slot.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) handleRestoreSlot(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	bundle, err := h.Scheduler.RestoreSlot(r.Context(), chi.URLParam(r, "slotID"))
	if err != nil {
		failBackup(w, err, reqID)
		return
	}
	api.Success(w, map[string]any{"restored": bundle.Counts()}, reqID)
}

func (h *Handler) handleDeleteSlot(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Scheduler.DeleteSlot(chi.URLParam(r, "slotID")); err != nil {
		failBackup(w, err, reqID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}

func (h *Handler) handleReminder(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Reminder.Status(time.Now().UTC()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDismissReminder(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Reminder.Dismiss(r.Context(), time.Now().UTC()); err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "failed to dismiss reminder", reqID)
		return
	}
	api.Success(w, h.Reminder.Status(time.Now().UTC()), reqID)
}

func failBackup(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, backup.ErrBackupInFlight):
		api.Fail(w, http.StatusConflict, "backup_in_flight", "a backup is already in progress", reqID)
	case errors.Is(err, backup.ErrSlotNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "backup slot not found", reqID)
	case errors.Is(err, backup.ErrInvalidBundle), errors.Is(err, backup.ErrUnsupportedBundle):
		api.Fail(w, http.StatusBadRequest, "import_parse_error", err.Error(), reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "storage_error", "backup operation failed", reqID)
	}
}
