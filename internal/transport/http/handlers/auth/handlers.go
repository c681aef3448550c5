package authhandler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"appraise/internal/auth"
	"appraise/internal/domain/directory"
	"appraise/internal/transport/http/api"
	"appraise/internal/transport/http/middleware"
	"appraise/internal/transport/http/shared"
)

const tokenTTL = 12 * time.Hour

type Handler struct {
	Directory *directory.Service
	JWTSecret string
}

func NewHandler(dir *directory.Service, jwtSecret string) *Handler {
	return &Handler{Directory: dir, JWTSecret: jwtSecret}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.handleLogin)
		r.Post("/logout", h.handleLogout)
		r.Get("/me", h.handleMe)
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("username", req.Username, "username is required")
	v.Required("password", req.Password, "password is required")
	if v.Reject(w, reqID) {
		return
	}

	user, hash, err := h.Directory.GetUserByUsername(r.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", reqID)
		return
	}
	if err := auth.CheckPassword(hash, req.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", reqID)
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{UserID: user.ID, Role: user.Role}, tokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_failed", "failed to issue token", reqID)
		return
	}

	api.Success(w, map[string]any{"token": token, "user": user}, reqID)
}

// handleLogout exists for client symmetry. Tokens are stateless, so logging
// out is discarding the token client-side.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]string{"status": "logged_out"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	profile, err := h.Directory.GetUser(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "user_not_found", "user no longer exists", reqID)
		return
	}
	api.Success(w, profile, reqID)
}
