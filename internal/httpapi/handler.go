package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"org-structure-service/internal/apperror"
	"org-structure-service/internal/org"
	"org-structure-service/internal/service"
)

type Handler struct {
	service  service.Manager
	logger   zerolog.Logger
	validate *validator.Validate
}

func NewHandler(svc service.Manager, logger zerolog.Logger) *Handler {
	return &Handler{
		service:  svc,
		logger:   logger,
		validate: validator.New(),
	}
}

// Mount registers the organization routes on r.
func (h *Handler) Mount(r chi.Router) {
	r.Route("/organizations", func(r chi.Router) {
		r.Post("/", h.handleCreateOrganization)
		r.Get("/", h.handleListOrganizations)

		r.Route("/{orgID}", func(r chi.Router) {
			r.Get("/", h.handleGetOrganization)
			r.Delete("/", h.handleDeleteOrganization)
			r.Get("/structure", h.handleGetStructure)
			r.Get("/employees/{empID}", h.handleFindEmployee)

			r.Post("/departments", h.handleCreateDepartment)
			r.Route("/departments/{deptID}", func(r chi.Router) {
				r.Delete("/", h.handleDeleteDepartment)
				r.Put("/manager", h.handleSetManager)
				r.Post("/employees", h.handleCreateEmployee)
				r.Patch("/employees/{empID}", h.handleUpdateEmployee)
				r.Delete("/employees/{empID}", h.handleDeleteEmployee)
			})
		})
	})
}

type createOrganizationRequest struct {
	ID          string  `json:"id" validate:"max=200"`
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description"`
	Industry    *string `json:"industry" validate:"omitempty,max=200"`
	FoundedDate *string `json:"founded_date"`
}

type createDepartmentRequest struct {
	ID          string  `json:"id" validate:"max=200"`
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description"`
}

type createEmployeeRequest struct {
	ID       string  `json:"id" validate:"max=200"`
	Name     string  `json:"name" validate:"required,max=200"`
	Email    string  `json:"email" validate:"required,max=254"`
	Position string  `json:"position" validate:"required,max=200"`
	HireDate *string `json:"hire_date"`
	Phone    *string `json:"phone"`
}

type updateEmployeeRequest struct {
	Name     *string        `json:"name"`
	Email    *string        `json:"email"`
	Position *string        `json:"position"`
	Phone    optionalString `json:"phone"`
	HireDate optionalString `json:"hire_date"`
}

type setManagerRequest struct {
	EmployeeID *string `json:"employee_id"`
}

func (h *Handler) handleCreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req createOrganizationRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	foundedDate, err := org.ParseDate(req.FoundedDate, "founded_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	organization, err := h.service.CreateOrganization(r.Context(), service.CreateOrganizationInput{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Industry:    req.Industry,
		FoundedDate: foundedDate,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, organization)
}

func (h *Handler) handleListOrganizations(w http.ResponseWriter, r *http.Request) {
	organizations, err := h.service.ListOrganizations(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, organizations)
}

func (h *Handler) handleGetOrganization(w http.ResponseWriter, r *http.Request) {
	organization, err := h.service.GetOrganization(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, organization)
}

func (h *Handler) handleDeleteOrganization(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteOrganization(r.Context(), chi.URLParam(r, "orgID")); err != nil {
		h.respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetStructure(w http.ResponseWriter, r *http.Request) {
	structure, err := h.service.GetStructure(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, structure)
}

func (h *Handler) handleFindEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := h.service.FindEmployee(r.Context(), chi.URLParam(r, "orgID"), chi.URLParam(r, "empID"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, employee)
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req createDepartmentRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	department, err := h.service.CreateDepartment(r.Context(), chi.URLParam(r, "orgID"), service.CreateDepartmentInput{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, department)
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteDepartment(r.Context(), chi.URLParam(r, "orgID"), chi.URLParam(r, "deptID")); err != nil {
		h.respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSetManager(w http.ResponseWriter, r *http.Request) {
	var req setManagerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	department, err := h.service.SetDepartmentManager(r.Context(), chi.URLParam(r, "orgID"), chi.URLParam(r, "deptID"), req.EmployeeID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, department)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	hireDate, err := org.ParseDate(req.HireDate, "hire_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	employee, err := h.service.CreateEmployee(r.Context(), chi.URLParam(r, "orgID"), chi.URLParam(r, "deptID"), service.CreateEmployeeInput{
		ID:       req.ID,
		Name:     req.Name,
		Email:    req.Email,
		Position: req.Position,
		HireDate: hireDate,
		Phone:    req.Phone,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, employee)
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req updateEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	hireDate, err := org.ParseDate(req.HireDate.Value, "hire_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	employee, err := h.service.UpdateEmployee(r.Context(), chi.URLParam(r, "orgID"), chi.URLParam(r, "deptID"), chi.URLParam(r, "empID"), service.UpdateEmployeeInput{
		Name:        req.Name,
		Email:       req.Email,
		Position:    req.Position,
		PhoneSet:    req.Phone.Set,
		Phone:       req.Phone.Value,
		HireDateSet: req.HireDate.Set,
		HireDate:    hireDate,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, employee)
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteEmployee(r.Context(), chi.URLParam(r, "orgID"), chi.URLParam(r, "deptID"), chi.URLParam(r, "empID")); err != nil {
		h.respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondWithError(w http.ResponseWriter, err error) {
	switch apperror.GetCode(err) {
	case apperror.CodeValidation:
		writeError(w, http.StatusBadRequest, err.Error())
	case apperror.CodeNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case apperror.CodeConflict:
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error().Err(err).Msg("unexpected error")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) decodeAndValidate(r *http.Request, target interface{}) error {
	if err := decodeJSON(r, target); err != nil {
		return err
	}
	if err := h.validate.Struct(target); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			first := validationErrors[0]
			return errors.New(strings.ToLower(first.Field()) + " failed " + first.Tag() + " validation")
		}
		return errors.New("invalid request body")
	}
	return nil
}

func decodeJSON(r *http.Request, target interface{}) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return errors.New("invalid JSON body")
	}

	var extra json.RawMessage
	if err := decoder.Decode(&extra); err != io.EOF {
		return errors.New("invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

func healthcheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// optionalString tells an explicit null apart from an absent field.
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	o.Value = &value
	return nil
}
