package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"tableside/internal/httpx"
	"tableside/internal/logger"
	"tableside/internal/models"
)

// Handler handles HTTP requests for accounts and sessions
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new auth handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register handles POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid JSON format")
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, user)
}

// Login handles POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid JSON format")
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if errors.Is(err, ErrInvalidCredentials) {
		httpx.WriteFailure(w, http.StatusUnauthorized, ErrInvalidCredentials.Error())
		return
	}
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, resp)
}

// Logout handles POST /api/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := BearerToken(r)
	if token == "" {
		httpx.WriteFailure(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteMessage(w, "Logged out successfully")
}

// Profile handles GET /api/auth/profile
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserID(r.Context())
	if userID == nil {
		httpx.WriteFailure(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.service.Profile(r.Context(), *userID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, user)
}

// BearerToken extracts the token from an Authorization: Bearer header,
// or "" when absent.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
