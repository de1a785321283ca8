package menu

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"tableside/internal/httpx"
	"tableside/internal/logger"
	"tableside/internal/models"
)

const maxImageSize = 5 << 20 // 5 MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Handler handles HTTP requests for the menu catalog
type Handler struct {
	service    *Service
	uploadsDir string
	logger     *logger.Logger
}

// NewHandler creates a new menu handler
func NewHandler(service *Service, uploadsDir string, log *logger.Logger) *Handler {
	return &Handler{
		service:    service,
		uploadsDir: uploadsDir,
		logger:     log,
	}
}

// ListCategories handles GET /api/menu/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, categories)
}

// CreateCategory handles POST /api/menu/categories
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid JSON format")
		return
	}

	category, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, category)
}

// UpdateCategory handles PUT /api/menu/categories/{id}
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid category id")
		return
	}

	var req models.UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid JSON format")
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), id, &req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/menu/categories/{id}
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteMessage(w, "Category deleted successfully")
}

// ListItems handles GET /api/menu/items
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.MenuItemFilter{
		Search: q.Get("search"),
		Sort:   q.Get("sort"),
	}
	if c := q.Get("category"); c != "" {
		categoryID, err := uuid.Parse(c)
		if err != nil {
			httpx.WriteFailure(w, http.StatusBadRequest, "invalid category id")
			return
		}
		filter.CategoryID = &categoryID
	}
	if a := q.Get("availability"); a != "" {
		available := a == "true"
		filter.Availability = &available
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	items, pagination, err := h.service.ListItems(r.Context(), filter)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, map[string]interface{}{
		"items":      items,
		"pagination": pagination,
	})
}

// GetItem handles GET /api/menu/items/{id}
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.service.GetItem(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, item)
}

// CreateItem handles POST /api/menu/items
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid JSON format")
		return
	}

	item, err := h.service.CreateItem(r.Context(), &req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusCreated, item)
}

// UpdateItem handles PUT /api/menu/items/{id}
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req models.UpdateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid JSON format")
		return
	}

	item, err := h.service.UpdateItem(r.Context(), id, &req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /api/menu/items/{id}
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteMessage(w, "Item deleted successfully")
}

// UploadItemImage handles POST /api/menu/items/{id}/image. The file is
// stored under the uploads directory and the item's image URL updated.
func (h *Handler) UploadItemImage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid item id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "image must be at most 5MB")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	// Sniff the real content type instead of trusting the header.
	head := make([]byte, 512)
	n, _ := io.ReadFull(file, head)
	contentType := http.DetectContentType(head[:n])
	if !allowedImageTypes[contentType] {
		httpx.WriteFailure(w, http.StatusBadRequest, "unsupported image type")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		httpx.WriteError(w, err)
		return
	}

	if err := os.MkdirAll(h.uploadsDir, 0o755); err != nil {
		httpx.WriteError(w, err)
		return
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(header.Filename))
	dst, err := os.Create(filepath.Join(h.uploadsDir, filename))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		httpx.WriteError(w, err)
		return
	}

	imageURL := "/uploads/" + filename
	if err := h.service.SetItemImage(r.Context(), id, imageURL); err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, map[string]string{"image_url": imageURL})
}
