package ratingshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"appraise/internal/domain/auth"
	"appraise/internal/domain/ratings"
	"appraise/internal/transport/http/api"
	"appraise/internal/transport/http/middleware"
	"appraise/internal/transport/http/shared"
)

type Handler struct {
	Service *ratings.Service
}

func NewHandler(service *ratings.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/ratings", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermRatingsWrite)).Post("/", h.handleRate)
		r.With(middleware.RequirePermission(auth.PermRatingsRead)).Get("/employee/{employeeID}", h.handleListForEmployee)
	})
}

type rateRequest struct {
	EmployeeID string  `json:"employeeId"`
	TaskID     string  `json:"taskId"`
	Quality    string  `json:"quality"`
	Timeliness string  `json:"timeliness"`
	Overall    float64 `json:"overall"`
	Remarks    string  `json:"remarks"`
	Keywords   string  `json:"keywords"`
}

func (h *Handler) handleRate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var req rateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", req.EmployeeID, "employeeId is required")
	v.Required("quality", req.Quality, "quality is required")
	v.Required("timeliness", req.Timeliness, "timeliness is required")
	v.Enum("quality", req.Quality, ratings.QualityLevels, "unknown quality level")
	v.Enum("timeliness", req.Timeliness, ratings.TimelinessLevels, "unknown timeliness level")
	if v.Reject(w, reqID) {
		return
	}

	rating, err := h.Service.Rate(r.Context(), user.UserID, req.EmployeeID, ratings.RatingInput{
		TaskID:     req.TaskID,
		Quality:    strings.ToLower(strings.TrimSpace(req.Quality)),
		Timeliness: strings.ToLower(strings.TrimSpace(req.Timeliness)),
		Overall:    req.Overall,
		Remarks:    strings.TrimSpace(req.Remarks),
		Keywords:   strings.TrimSpace(req.Keywords),
	})
	if errors.Is(err, ratings.ErrInvalidOverall) {
		api.Fail(w, http.StatusBadRequest, "invalid_overall", "overall must be between 0 and 100", reqID)
		return
	}
	if errors.Is(err, ratings.ErrForbidden) {
		api.Fail(w, http.StatusForbidden, "forbidden", "you may only rate your direct reports", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "rating_create_failed", "failed to record rating", reqID)
		return
	}
	api.Created(w, rating, reqID)
}

func (h *Handler) handleListForEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	list, err := h.Service.ListForEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "rating_list_failed", "failed to list ratings", reqID)
		return
	}
	api.Success(w, list, reqID)
}
