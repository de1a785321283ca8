package stats

import (
	"net/http"

	"tableside/internal/httpx"
	"tableside/internal/logger"
)

// Handler handles HTTP requests for the stats endpoint
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new stats handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Get handles GET /api/orders/stats
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetStats(r.Context(), httpx.RequestID(r.Context()))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, resp)
}
