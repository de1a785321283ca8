package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tableside/internal/apperr"
)

// MenuCategory groups menu items for display
type MenuCategory struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	Active       bool      `json:"active" db:"active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// MenuItem is a single orderable dish
type MenuItem struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	CategoryID   uuid.UUID  `json:"category_id" db:"category_id"`
	CategoryName string     `json:"category_name,omitempty" db:"category_name"`
	Name         string     `json:"name" db:"name"`
	Description  string     `json:"description,omitempty" db:"description"`
	Price        float64    `json:"price" db:"price"`
	ImageURL     *string    `json:"image_url,omitempty" db:"image_url"`
	Availability bool       `json:"availability" db:"availability"`
	Popularity   int        `json:"popularity" db:"popularity"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// CreateCategoryRequest is the admin request to create a category
type CreateCategoryRequest struct {
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
	Active       *bool  `json:"active,omitempty"`
}

func (req *CreateCategoryRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return apperr.ValidationError{Field: "name", Message: "category name is required"}
	}
	return nil
}

// UpdateCategoryRequest is the admin request to update a category.
// Nil fields are left unchanged.
type UpdateCategoryRequest struct {
	Name         *string `json:"name,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
	Active       *bool   `json:"active,omitempty"`
}

func (req *UpdateCategoryRequest) Validate() error {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return apperr.ValidationError{Field: "name", Message: "category name cannot be empty"}
	}
	return nil
}

// CreateMenuItemRequest is the admin request to create a menu item
type CreateMenuItemRequest struct {
	CategoryID   uuid.UUID `json:"category_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Availability *bool     `json:"availability,omitempty"`
}

func (req *CreateMenuItemRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return apperr.ValidationError{Field: "name", Message: "item name is required"}
	}
	if req.CategoryID == uuid.Nil {
		return apperr.ValidationError{Field: "category_id", Message: "category_id is required"}
	}
	if req.Price < 0 {
		return apperr.ValidationError{Field: "price", Message: "price must not be negative"}
	}
	return nil
}

// UpdateMenuItemRequest is the admin request to update a menu item.
// Nil fields are left unchanged.
type UpdateMenuItemRequest struct {
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	Name         *string    `json:"name,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Price        *float64   `json:"price,omitempty"`
	Availability *bool      `json:"availability,omitempty"`
}

func (req *UpdateMenuItemRequest) Validate() error {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return apperr.ValidationError{Field: "name", Message: "item name cannot be empty"}
	}
	if req.Price != nil && *req.Price < 0 {
		return apperr.ValidationError{Field: "price", Message: "price must not be negative"}
	}
	return nil
}

// MenuItemFilter selects and orders a page of menu items
type MenuItemFilter struct {
	Search       string
	CategoryID   *uuid.UUID
	Availability *bool
	Sort         string // name, price-asc, price-desc, popularity
	Page         int
	Limit        int
}

// Normalize applies listing defaults: page 1, limit 20, sort by name,
// available items only unless the caller asked otherwise.
func (f *MenuItemFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	switch f.Sort {
	case "price-asc", "price-desc", "popularity":
	default:
		f.Sort = "name"
	}
	if f.Availability == nil {
		available := true
		f.Availability = &available
	}
}
