package appraisalshandler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"appraise/internal/domain/appraisal"
	"appraise/internal/domain/auth"
	"appraise/internal/transport/http/api"
	"appraise/internal/transport/http/middleware"
	"appraise/internal/transport/http/shared"
)

type Handler struct {
	Service *appraisal.Service
}

func NewHandler(service *appraisal.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/appraisals", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermAppraisalsRead)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermAppraisalsRead)).Get("/{appraisalID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermAppraisalsCreate)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermAppraisalsDecide)).Post("/{appraisalID}/approve", h.handleApprove)
		r.With(middleware.RequirePermission(auth.PermAppraisalsDecide)).Post("/{appraisalID}/reject", h.handleReject)
		r.With(middleware.RequirePermission(auth.PermAppraisalsRead)).Post("/{appraisalID}/negotiate", h.handleNegotiate)
		r.With(middleware.RequirePermission(auth.PermAppraisalsRead)).Post("/{appraisalID}/accept", h.handleAccept)
		r.With(middleware.RequirePermission(auth.PermAppraisalsCreate)).Post("/{appraisalID}/recalculate", h.handleRecalculate)
		r.With(middleware.RequirePermission(auth.PermAppraisalsDecide)).Put("/{appraisalID}/scores", h.handleUpdateScores)
		r.With(middleware.RequirePermission(auth.PermAppraisalsDecide)).Put("/{appraisalID}/ticket", h.handleUpdateTicket)
		r.With(middleware.RequirePermission(auth.PermAppraisalsExport)).Get("/{appraisalID}/letter", h.handleLetter)
	})
	r.Route("/periods", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermAppraisalsRead)).Get("/", h.handleListPeriods)
		r.With(middleware.RequirePermission(auth.PermPeriodsWrite)).Post("/", h.handleCreatePeriod)
		r.With(middleware.RequirePermission(auth.PermPeriodsWrite)).Put("/{periodID}", h.handleUpdatePeriod)
	})
}

// failAppraisal maps the appraisal domain's sentinel errors to HTTP statuses.
func failAppraisal(w http.ResponseWriter, err error, reqID string) {
	switch {
	case errors.Is(err, appraisal.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "appraisal_not_found", "appraisal not found", reqID)
	case errors.Is(err, appraisal.ErrForbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", "you may not act on this appraisal", reqID)
	case errors.Is(err, appraisal.ErrConflict):
		api.Fail(w, http.StatusConflict, "invalid_transition", "the appraisal state does not permit this action", reqID)
	case errors.Is(err, appraisal.ErrNoPeriod):
		api.Fail(w, http.StatusConflict, "no_period", "no appraisal period has been created yet", reqID)
	case errors.Is(err, appraisal.ErrInvalidTicketStatus):
		api.Fail(w, http.StatusBadRequest, "invalid_ticket_status", "unknown negotiation ticket status", reqID)
	case errors.Is(err, appraisal.ErrInvalidPeriod):
		api.Fail(w, http.StatusBadRequest, "invalid_period", "period end date must be after its start date", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "appraisal_failed", "appraisal operation failed", reqID)
	}
}

type createRequest struct {
	EmployeeID string `json:"employeeId"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", req.EmployeeID, "employeeId is required")
	if v.Reject(w, reqID) {
		return
	}

	a, created, err := h.Service.Create(r.Context(), user.UserID, req.EmployeeID)
	if err != nil {
		failAppraisal(w, err, reqID)
		return
	}
	if created {
		api.Created(w, a, reqID)
		return
	}
	api.Success(w, a, reqID)
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
		failAppraisal(w, err, reqID)
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

	view, err := h.Service.Get(r.Context(), user.UserID, user.Role, chi.URLParam(r, "appraisalID"))
	if err != nil {
		failAppraisal(w, err, reqID)
		return
	}
	api.Success(w, view, reqID)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.Approve)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.Reject)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, actorID, appraisalID string) (appraisal.Appraisal, error)) {
	reqID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	a, err := fn(r.Context(), user.UserID, chi.URLParam(r, "appraisalID"))
	if err != nil {
		failAppraisal(w, err, reqID)
		return
	}
	api.Success(w, a, reqID)
}

func (h *Handler) handleNegotiate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("reason", req.Reason, "reason is required")
	if v.Reject(w, reqID) {
		return
	}

	a, ticket, err := h.Service.Negotiate(r.Context(), user.UserID, user.Role, chi.URLParam(r, "appraisalID"), strings.TrimSpace(req.Reason))
	if err != nil {
		failAppraisal(w, err, reqID)
		return
	}
	api.Success(w, appraisal.View{Appraisal: a, Ticket: &ticket}, reqID)
}

func (h *Handler) handleAccept(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	a, err := h.Service.Accept(r.Context(), user.UserID, chi.URLParam(r, "appraisalID"))
	if err != nil {
		failAppraisal(w, err, reqID)
		return
	}
	api.Success(w, a, reqID)
}

func (h *Handler) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	a, err := h.Service.RefreshScores(r.Context(), user.UserID, user.Role, chi.URLParam(r, "appraisalID"))
	if err != nil {
		failAppraisal(w, err, reqID)
		return
	}
	api.Success(w, a, reqID)
}

type scoresRequest struct {
	OverallPercentage   float64 `json:"overallPercentage"`
	TaskCompletionScore float64 `json:"taskCompletionScore"`
	QualityScore        float64 `json:"qualityScore"`
	TimelinessScore     float64 `json:"timelinessScore"`
	FinalRemarks        string  `json:"finalRemarks"`
}

func (h *Handler) handleUpdateScores(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var req scoresRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}

	v := shared.NewValidator()
	for field, score := range map[string]float64{
		"overallPercentage":   req.OverallPercentage,
		"taskCompletionScore": req.TaskCompletionScore,
		"qualityScore":        req.QualityScore,
		"timelinessScore":     req.TimelinessScore,
	} {
		if score < 0 || score > 100 {
			v.Add(field, "must be between 0 and 100")
		}
	}
	if v.Reject(w, reqID) {
		return
	}

	a, err := h.Service.UpdateScores(r.Context(), chi.URLParam(r, "appraisalID"), appraisal.ScoresUpdate{
		OverallPercentage:   req.OverallPercentage,
		TaskCompletionScore: req.TaskCompletionScore,
		QualityScore:        req.QualityScore,
		TimelinessScore:     req.TimelinessScore,
		FinalRemarks:        strings.TrimSpace(req.FinalRemarks),
	})
	if err != nil {
		failAppraisal(w, err, reqID)
		return
	}
	api.Success(w, a, reqID)
}

type ticketRequest struct {
	Status          string `json:"status"`
	ManagerResponse string `json:"managerResponse"`
	HRDecision      string `json:"hrDecision"`
}

func (h *Handler) handleUpdateTicket(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var req ticketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}

	ticket, err := h.Service.UpdateTicket(r.Context(), chi.URLParam(r, "appraisalID"), appraisal.TicketUpdate{
		Status:          strings.ToLower(strings.TrimSpace(req.Status)),
		ManagerResponse: strings.TrimSpace(req.ManagerResponse),
		HRDecision:      strings.TrimSpace(req.HRDecision),
	})
	if err != nil {
		failAppraisal(w, err, reqID)
		return
	}
	api.Success(w, ticket, reqID)
}

func (h *Handler) handleLetter(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	appraisalID := chi.URLParam(r, "appraisalID")
	pdf, err := h.Service.GenerateLetter(r.Context(), user.UserID, user.Role, appraisalID)
	if err != nil {
		failAppraisal(w, err, reqID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=appraisal-%s.pdf", appraisalID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *Handler) handleListPeriods(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	periods, err := h.Service.ListPeriods(r.Context())
	if err != nil {
		failAppraisal(w, err, reqID)
		return
	}
	api.Success(w, periods, reqID)
}

type periodRequest struct {
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	IsActive  *bool  `json:"isActive"`
}

func (h *Handler) parsePeriod(w http.ResponseWriter, r *http.Request, reqID string) (appraisal.PeriodInput, bool) {
	var req periodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return appraisal.PeriodInput{}, false
	}

	v := shared.NewValidator()
	v.Required("title", req.Title, "title is required")
	start, _ := v.Date("startDate", req.StartDate)
	end, _ := v.Date("endDate", req.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	if v.Reject(w, reqID) {
		return appraisal.PeriodInput{}, false
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return appraisal.PeriodInput{
		Title:     strings.TrimSpace(req.Title),
		StartDate: start,
		EndDate:   end,
		IsActive:  isActive,
	}, true
}

func (h *Handler) handleCreatePeriod(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	input, ok := h.parsePeriod(w, r, reqID)
	if !ok {
		return
	}

	period, err := h.Service.CreatePeriod(r.Context(), user.UserID, input)
	if err != nil {
		failAppraisal(w, err, reqID)
		return
	}
	api.Created(w, period, reqID)
}

func (h *Handler) handleUpdatePeriod(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	input, ok := h.parsePeriod(w, r, reqID)
	if !ok {
		return
	}

	period, err := h.Service.UpdatePeriod(r.Context(), chi.URLParam(r, "periodID"), input)
	if err != nil {
		failAppraisal(w, err, reqID)
		return
	}
	api.Success(w, period, reqID)
}
