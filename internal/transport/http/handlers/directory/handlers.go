package directoryhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"appraise/internal/domain/auth"
	"appraise/internal/domain/directory"
	"appraise/internal/transport/http/api"
	"appraise/internal/transport/http/middleware"
	"appraise/internal/transport/http/shared"
)

type Handler struct {
	Service *directory.Service
}

func NewHandler(service *directory.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermDirectoryRead)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermDirectoryRead)).Get("/{userID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermDirectoryRead)).Get("/{userID}/subordinates", h.handleSubordinates)
		r.With(middleware.RequirePermission(auth.PermDirectoryWrite)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermDirectoryWrite)).Put("/{userID}/manager", h.handleSetManager)
	})
	r.Route("/departments", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermDirectoryRead)).Get("/", h.handleListDepartments)
		r.With(middleware.RequirePermission(auth.PermDirectoryWrite)).Post("/", h.handleCreateDepartment)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	role := strings.TrimSpace(r.URL.Query().Get("role"))
	if role != "" && !auth.ValidRole(role) {
		api.Fail(w, http.StatusBadRequest, "invalid_role", "unknown role filter", reqID)
		return
	}

	users, err := h.Service.ListUsers(r.Context(), role)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_list_failed", "failed to list users", reqID)
		return
	}
	api.Success(w, users, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	user, err := h.Service.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "user_not_found", "user not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_lookup_failed", "failed to load user", reqID)
		return
	}
	api.Success(w, user, reqID)
}

func (h *Handler) handleSubordinates(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	users, err := h.Service.Subordinates(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "subordinates_failed", "failed to list subordinates", reqID)
		return
	}
	api.Success(w, users, reqID)
}

type createUserRequest struct {
	Username        string `json:"username"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
	DepartmentID    string `json:"departmentId"`
	ManagerID       string `json:"managerId"`
	EmployeeNumber  string `json:"employeeNumber"`
	Phone           string `json:"phone"`
	HireDate        string `json:"hireDate"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("username", req.Username, "username is required")
	v.Required("email", req.Email, "email is required")
	v.Required("password", req.Password, "password is required")
	v.Required("role", req.Role, "role is required")
	if req.Role != "" && !auth.ValidRole(req.Role) {
		v.Add("role", "unknown role")
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		v.Add("confirmPassword", "passwords do not match")
	}
	var hireDate *time.Time
	if strings.TrimSpace(req.HireDate) != "" {
		if parsed, ok := v.Date("hireDate", req.HireDate); ok {
			hireDate = &parsed
		}
	}
	if v.Reject(w, reqID) {
		return
	}

	user := directory.User{
		Username:       strings.TrimSpace(req.Username),
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          strings.TrimSpace(req.Email),
		Role:           req.Role,
		DepartmentID:   req.DepartmentID,
		ManagerID:      req.ManagerID,
		EmployeeNumber: strings.TrimSpace(req.EmployeeNumber),
		Phone:          strings.TrimSpace(req.Phone),
		HireDate:       hireDate,
	}

	id, err := h.Service.CreateUser(r.Context(), user, req.Password)
	if errors.Is(err, directory.ErrManagerCycle) {
		api.Fail(w, http.StatusConflict, "manager_cycle", "assignment would create a reporting cycle", reqID)
		return
	}
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusBadRequest, "manager_not_found", "manager does not exist", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_create_failed", "failed to create user", reqID)
		return
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}

type setManagerRequest struct {
	ManagerID string `json:"managerId"`
}

func (h *Handler) handleSetManager(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var req setManagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}

	err := h.Service.SetManager(r.Context(), chi.URLParam(r, "userID"), req.ManagerID)
	if errors.Is(err, directory.ErrManagerCycle) {
		api.Fail(w, http.StatusConflict, "manager_cycle", "assignment would create a reporting cycle", reqID)
		return
	}
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "user_not_found", "user or manager not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "manager_update_failed", "failed to update manager", reqID)
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, reqID)
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	departments, err := h.Service.ListDepartments(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_list_failed", "failed to list departments", reqID)
		return
	}
	api.Success(w, departments, reqID)
}

type createDepartmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var req createDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", req.Name, "name is required")
	if v.Reject(w, reqID) {
		return
	}

	id, err := h.Service.CreateDepartment(r.Context(), strings.TrimSpace(req.Name), strings.TrimSpace(req.Description))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_create_failed", "failed to create department", reqID)
		return
	}
	api.Created(w, map[string]string{"id": id}, reqID)
}
