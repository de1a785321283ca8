package models

import (
	"time"

	"github.com/google/uuid"

	"tableside/internal/apperr"
)

// TableStatus represents the occupancy status of a table
type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
)

// ParseTableStatus validates a table status value
func ParseTableStatus(s string) (TableStatus, error) {
	switch TableStatus(s) {
	case TableAvailable, TableOccupied, TableReserved:
		return TableStatus(s), nil
	default:
		return "", apperr.ValidationError{Field: "status", Message: "status must be one of: available, occupied, reserved"}
	}
}

// Table is a physical restaurant table. The QR slug is generated once at
// creation and never changes; customers reach the menu through it.
type Table struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	Number    int         `json:"number" db:"number"`
	QRSlug    string      `json:"qr_slug" db:"qr_slug"`
	Status    TableStatus `json:"status" db:"status"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// CreateTableRequest is the staff request to register a table
type CreateTableRequest struct {
	Number int `json:"number"`
}

func (req *CreateTableRequest) Validate() error {
	if req.Number < 1 {
		return apperr.ValidationError{Field: "number", Message: "table number must be at least 1"}
	}
	return nil
}

// UpdateTableRequest updates a table's number or status. The QR slug is
// immutable and cannot be changed here.
type UpdateTableRequest struct {
	Number *int    `json:"number,omitempty"`
	Status *string `json:"status,omitempty"`
}

func (req *UpdateTableRequest) Validate() error {
	if req.Number != nil && *req.Number < 1 {
		return apperr.ValidationError{Field: "number", Message: "table number must be at least 1"}
	}
	if req.Status != nil {
		if _, err := ParseTableStatus(*req.Status); err != nil {
			return err
		}
	}
	return nil
}

// TableQRResponse carries a rendered QR code for a table
type TableQRResponse struct {
	QRCode string `json:"qr_code"` // base64 PNG data URL
	URL    string `json:"url"`
	Table  *Table `json:"table"`
}
