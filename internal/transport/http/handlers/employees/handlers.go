package employeehandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"payrollpro/internal/domain/employees"
	"payrollpro/internal/transport/http/api"
	"payrollpro/internal/transport/http/middleware"
	"payrollpro/internal/transport/http/shared"
)

type Handler struct {
	Service *employees.Service
}

func NewHandler(service *employees.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/export/csv", h.handleExportCSV)
		r.Get("/export/xlsx", h.handleExportXLSX)
		r.Post("/import/csv", h.handleImportCSV)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
		})
	})
	r.Route("/departments", func(r chi.Router) {
		r.Get("/", h.handleListDepartments)
		r.Post("/", h.handleCreateDepartment)
		r.Delete("/{departmentID}", h.handleDeleteDepartment)
	})
	r.Route("/positions", func(r chi.Router) {
		r.Get("/", h.handleListPositions)
		r.Post("/", h.handleCreatePosition)
		r.Delete("/{positionID}", h.handleDeletePosition)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var (
		list []employees.Employee
		err  error
	)
	switch {
	case r.URL.Query().Get("departmentId") != "":
		list, err = h.Service.Store.ListEmployeesByDepartment(r.Context(), r.URL.Query().Get("departmentId"))
	case r.URL.Query().Get("status") != "":
		list, err = h.Service.Store.ListEmployeesByStatus(r.Context(), r.URL.Query().Get("status"))
	default:
		list, err = h.Service.List(r.Context())
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "failed to list employees", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	emp, err := h.Service.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		failEmployee(w, err, reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var input employees.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if !validateInput(w, input, reqID) {
		return
	}

	emp, err := h.Service.Create(r.Context(), input)
	if err != nil {
		failEmployee(w, err, reqID)
		return
	}
	api.Created(w, emp, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var input employees.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if !validateInput(w, input, reqID) {
		return
	}

	emp, err := h.Service.Update(r.Context(), chi.URLParam(r, "employeeID"), input)
	if err != nil {
		failEmployee(w, err, reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		failEmployee(w, err, reqID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	list, departments, positions, err := h.exportData(r)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "failed to export employees", reqID)
		return
	}

	data := employees.ExportCSV(list, departments, positions)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", exportFilename("csv"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	list, departments, positions, err := h.exportData(r)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "failed to export employees", reqID)
		return
	}

	data, err := employees.ExportXLSX(list, departments, positions)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to build workbook", reqID)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", exportFilename("xlsx"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	content, err := io.ReadAll(r.Body)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "could not read import body", reqID)
		return
	}

	result, err := h.Service.ImportCSV(r.Context(), content)
	if err != nil {
		if errors.Is(err, employees.ErrImportParse) {
			api.Fail(w, http.StatusBadRequest, "import_parse_error", err.Error(), reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "storage_error", "import failed", reqID)
		return
	}
	api.Success(w, result, reqID)
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	list, err := h.Service.Store.ListDepartments(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "failed to list departments", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, reqID) {
		return
	}

	dept, err := h.Service.CreateDepartment(r.Context(), payload.Name)
	if err != nil {
		if errors.Is(err, employees.ErrDuplicateName) {
			api.Fail(w, http.StatusConflict, "duplicate_key", "department already exists", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "storage_error", "failed to create department", reqID)
		return
	}
	api.Created(w, dept, reqID)
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Service.Store.DeleteDepartment(r.Context(), chi.URLParam(r, "departmentID")); err != nil {
		if errors.Is(err, employees.ErrDepartmentNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "department not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "storage_error", "failed to delete department", reqID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}

func (h *Handler) handleListPositions(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var (
		list []employees.Position
		err  error
	)
	if departmentID := r.URL.Query().Get("departmentId"); departmentID != "" {
		list, err = h.Service.Store.ListPositionsByDepartment(r.Context(), departmentID)
	} else {
		list, err = h.Service.Store.ListPositions(r.Context())
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_error", "failed to list positions", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		Name         string `json:"name"`
		DepartmentID string `json:"departmentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, reqID) {
		return
	}

	pos, err := h.Service.CreatePosition(r.Context(), payload.Name, payload.DepartmentID)
	if err != nil {
		if errors.Is(err, employees.ErrDuplicateName) {
			api.Fail(w, http.StatusConflict, "duplicate_key", "position already exists", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "storage_error", "failed to create position", reqID)
		return
	}
	api.Created(w, pos, reqID)
}

func (h *Handler) handleDeletePosition(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Service.Store.DeletePosition(r.Context(), chi.URLParam(r, "positionID")); err != nil {
		if errors.Is(err, employees.ErrPositionNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "position not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "storage_error", "failed to delete position", reqID)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, reqID)
}

func (h *Handler) exportData(r *http.Request) ([]employees.Employee, map[string]string, map[string]string, error) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		return nil, nil, nil, err
	}
	departments, err := h.Service.Store.ListDepartments(r.Context())
	if err != nil {
		return nil, nil, nil, err
	}
	positions, err := h.Service.Store.ListPositions(r.Context())
	if err != nil {
		return nil, nil, nil, err
	}

	departmentNames := make(map[string]string, len(departments))
	for _, dept := range departments {
		departmentNames[dept.ID] = dept.Name
	}
	positionNames := make(map[string]string, len(positions))
	for _, pos := range positions {
		positionNames[pos.ID] = pos.Name
	}
	return list, departmentNames, positionNames, nil
}

func validateInput(w http.ResponseWriter, input employees.Input, reqID string) bool {
	v := shared.NewValidator()
	v.Required("firstName", input.FirstName, "first name is required")
	v.Required("lastName", input.LastName, "last name is required")
	v.Positive("baseSalary", input.BaseSalary, "base salary must be greater than zero")
	v.NonNegative("bonus", input.Bonus, "bonus cannot be negative")
	v.NonNegative("deductions", input.Deductions, "deductions cannot be negative")
	v.Enum("status", input.Status, employees.Statuses, "status must be active, inactive or suspended")
	if input.HireDate != "" {
		v.Date("hireDate", input.HireDate)
	}
	if input.DateOfBirth != "" {
		v.Date("dateOfBirth", input.DateOfBirth)
	}
	return !v.Reject(w, reqID)
}

func failEmployee(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, employees.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
	case errors.Is(err, employees.ErrDuplicateMatricule):
		api.Fail(w, http.StatusConflict, "duplicate_key", "matricule already in use", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "storage_error", "employee operation failed", reqID)
	}
}

func exportFilename(ext string) string {
	return fmt.Sprintf(`attachment; filename="employes-%s.%s"`, time.Now().Format("2006-01-02"), ext)
}
