package taskshandler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"appraise/internal/domain/auth"
	"appraise/internal/domain/tasks"
	"appraise/internal/transport/http/api"
	"appraise/internal/transport/http/middleware"
	"appraise/internal/transport/http/shared"
)

// Artifacts are capped well below the request body limit so a single upload
// cannot exhaust it.
const maxArtifactBytes = 5 << 20

type Handler struct {
	Service *tasks.Service
}

func NewHandler(service *tasks.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermTasksRead)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermTasksRead)).Get("/{taskID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermTasksWrite)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermTasksSubmit)).Post("/{taskID}/submit", h.handleSubmit)
	})
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  string `json:"assignedTo"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("title", req.Title, "title is required")
	v.Required("assignedTo", req.AssignedTo, "assignedTo is required")
	v.Enum("priority", req.Priority, tasks.Priorities, "unknown priority")
	dueDate, _ := v.Date("dueDate", req.DueDate)
	if v.Reject(w, reqID) {
		return
	}

	task, err := h.Service.Create(r.Context(), user.UserID, tasks.TaskInput{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		AssignedTo:  req.AssignedTo,
		Priority:    strings.ToLower(strings.TrimSpace(req.Priority)),
		DueDate:     dueDate,
	})
	if errors.Is(err, tasks.ErrForbidden) {
		api.Fail(w, http.StatusForbidden, "forbidden", "you may only assign tasks to your direct reports", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "task_create_failed", "failed to create task", reqID)
		return
	}
	api.Created(w, task, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	list, err := h.Service.List(r.Context(), user.UserID, user.Role)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "task_list_failed", "failed to list tasks", reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	task, err := h.Service.Get(r.Context(), user.UserID, user.Role, chi.URLParam(r, "taskID"))
	if errors.Is(err, tasks.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "task_not_found", "task not found", reqID)
		return
	}
	if errors.Is(err, tasks.ErrForbidden) {
		api.Fail(w, http.StatusForbidden, "forbidden", "task is not visible to you", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "task_lookup_failed", "failed to load task", reqID)
		return
	}
	api.Success(w, task, reqID)
}

// handleSubmit completes a task. The artifact arrives as a multipart form
// field named "artifact"; a bare POST without a body completes the task
// without one.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var artifactName string
	var artifact []byte
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxArtifactBytes); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_upload", "failed to parse upload", reqID)
			return
		}
		file, header, err := r.FormFile("artifact")
		if err == nil {
			defer file.Close()
			data, err := io.ReadAll(io.LimitReader(file, maxArtifactBytes))
			if err != nil {
				api.Fail(w, http.StatusBadRequest, "invalid_upload", "failed to read artifact", reqID)
				return
			}
			artifactName = header.Filename
			artifact = data
		}
	}

	task, err := h.Service.Submit(r.Context(), user.UserID, chi.URLParam(r, "taskID"), artifactName, artifact)
	if errors.Is(err, tasks.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "task_not_found", "task not found or not assigned to you", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "task_submit_failed", "failed to submit task", reqID)
		return
	}
	api.Success(w, task, reqID)
}
