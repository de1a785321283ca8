package table

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"tableside/internal/httpx"
	"tableside/internal/logger"
	"tableside/internal/models"
)

// Handler handles HTTP requests for the table registry
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new table handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Create handles POST /api/tables
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid JSON format")
		return
	}

	table, err := h.service.Create(r.Context(), &req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, table)
}

// List handles GET /api/tables
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tables, err := h.service.List(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, tables)
}

// Get handles GET /api/tables/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid table id")
		return
	}

	table, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, table)
}

// GetBySlug handles GET /api/tables/by-slug/{slug}. This is the public
// entry point a scanned QR code lands on.
func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	table, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, table)
}

// GenerateQR handles GET /api/tables/{id}/qr
func (h *Handler) GenerateQR(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid table id")
		return
	}

	resp, err := h.service.GenerateQR(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, resp)
}

// Update handles PUT /api/tables/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid table id")
		return
	}

	var req models.UpdateTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid JSON format")
		return
	}

	table, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, table)
}

// Delete handles DELETE /api/tables/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid table id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteMessage(w, "Table deleted successfully")
}
