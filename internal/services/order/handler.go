package order

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"tableside/internal/httpx"
	"tableside/internal/logger"
	"tableside/internal/models"
)

// Handler handles HTTP requests for the order engine
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Create handles POST /api/orders. Guests may order; an authenticated
// session attaches the customer to the order.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid JSON format")
		return
	}

	req.CustomerID = httpx.UserID(r.Context())

	order, err := h.service.CreateOrder(r.Context(), &req, httpx.RequestID(r.Context()))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteData(w, http.StatusCreated, order)
}

// List handles GET /api/orders with status/table filters and pagination
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := models.OrderFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status, err := models.ParseOrderStatus(s)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		filter.Status = &status
	}
	if t := r.URL.Query().Get("table"); t != "" {
		tableID, err := uuid.Parse(t)
		if err != nil {
			httpx.WriteFailure(w, http.StatusBadRequest, "invalid table id")
			return
		}
		filter.TableID = &tableID
	}
	filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	page, err := h.service.GetOrders(r.Context(), filter)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, page)
}

// Get handles GET /api/orders/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, order)
}

// MyOrders handles GET /api/orders/me for the authenticated customer
func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request) {
	customerID := httpx.UserID(r.Context())
	if customerID == nil {
		httpx.WriteFailure(w, http.StatusUnauthorized, "authentication required")
		return
	}

	orders, err := h.service.GetMyOrders(r.Context(), *customerID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, orders)
}

// UpdateStatus handles PATCH /api/orders/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid JSON format")
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), id, req.Status, httpx.RequestID(r.Context()))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, order)
}
