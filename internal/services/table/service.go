package table

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"tableside/internal/apperr"
	"tableside/internal/logger"
	"tableside/internal/models"
)

const slugLength = 10

const slugAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Store is the storage surface of the table registry
type Store interface {
	Create(ctx context.Context, table *models.Table) error
	List(ctx context.Context) ([]models.Table, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Table, error)
	GetByNumber(ctx context.Context, number int) (*models.Table, error)
	GetBySlug(ctx context.Context, slug string) (*models.Table, error)
	Update(ctx context.Context, id uuid.UUID, req *models.UpdateTableRequest) (*models.Table, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service manages the table registry and QR codes
type Service struct {
	store       Store
	frontendURL string
	logger      *logger.Logger
}

// NewService creates the table registry service. frontendURL is the base
// the customer-facing menu lives at; QR codes point into it.
func NewService(store Store, frontendURL string, log *logger.Logger) *Service {
	return &Service{
		store:       store,
		frontendURL: frontendURL,
		logger:      log,
	}
}

// Create registers a new table with a generated, immutable QR slug.
func (s *Service) Create(ctx context.Context, req *models.CreateTableRequest) (*models.Table, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.store.GetByNumber(ctx, req.Number)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.ValidationError{Field: "number", Message: "table number already exists"}
	}

	slug, err := generateSlug()
	if err != nil {
		return nil, fmt.Errorf("failed to generate qr slug: %w", err)
	}

	table := &models.Table{
		Number: req.Number,
		QRSlug: slug,
		Status: models.TableAvailable,
	}
	if err := s.store.Create(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

// List returns all tables ordered by number
func (s *Service) List(ctx context.Context) ([]models.Table, error) {
	return s.store.List(ctx)
}

// Get returns a single table
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	return s.store.Get(ctx, id)
}

// GetBySlug resolves a scanned QR slug to its table
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.Table, error) {
	return s.store.GetBySlug(ctx, slug)
}

// Update patches a table's number or status; the QR slug never changes.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *models.UpdateTableRequest) (*models.Table, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.store.Update(ctx, id, req)
}

// Delete removes a table
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

// GenerateQR renders the table's menu URL as a PNG QR code data URL.
func (s *Service) GenerateQR(ctx context.Context, id uuid.UUID) (*models.TableQRResponse, error) {
	table, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	menuURL := fmt.Sprintf("%s/m/%s", s.frontendURL, table.QRSlug)

	png, err := qrcode.Encode(menuURL, qrcode.Medium, 300)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}

	return &models.TableQRResponse{
		QRCode: "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		URL:    menuURL,
		Table:  table,
	}, nil
}

// generateSlug returns a 10-character opaque token for the table's QR URL.
func generateSlug() (string, error) {
	buf := make([]byte, slugLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = slugAlphabet[int(b)%len(slugAlphabet)]
	}
	return string(buf), nil
}
