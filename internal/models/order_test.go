package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestCreateOrderRequestValidate(t *testing.T) {
	tableID := uuid.New()
	itemID := uuid.New()

	tests := []struct {
		name    string
		req     *CreateOrderRequest
		wantErr bool
	}{
		{
			name: "valid request",
			req: &CreateOrderRequest{
				TableID: tableID,
				Items: []CreateOrderItem{
					{MenuItemID: itemID, Quantity: 2, Note: "no onions"},
				},
			},
			wantErr: false,
		},
		{
			name: "missing table id",
			req: &CreateOrderRequest{
				Items: []CreateOrderItem{{MenuItemID: itemID, Quantity: 1}},
			},
			wantErr: true,
		},
		{
			name:    "empty items",
			req:     &CreateOrderRequest{TableID: tableID},
			wantErr: true,
		},
		{
			name: "zero quantity",
			req: &CreateOrderRequest{
				TableID: tableID,
				Items:   []CreateOrderItem{{MenuItemID: itemID, Quantity: 0}},
			},
			wantErr: true,
		},
		{
			name: "missing menu item id",
			req: &CreateOrderRequest{
				TableID: tableID,
				Items:   []CreateOrderItem{{Quantity: 1}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"placed", false},
		{"preparing", false},
		{"ready", false},
		{"served", false},
		{"canceled", false},
		{"", true},
		{"delivered", true},
		{"PLACED", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseOrderStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseOrderStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestStatusIsActive(t *testing.T) {
	active := []OrderStatus{StatusPlaced, StatusPreparing, StatusReady}
	for _, s := range active {
		if !s.IsActive() {
			t.Errorf("%s.IsActive() = false, want true", s)
		}
	}

	terminal := []OrderStatus{StatusServed, StatusCanceled}
	for _, s := range terminal {
		if s.IsActive() {
			t.Errorf("%s.IsActive() = true, want false", s)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{10.005, 10.01},
		{10.004, 10.0},
		{0, 0},
		{19.99 * 3, 59.97},
	}

	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		total, page, limit int
		wantPages          int
	}{
		{25, 1, 20, 2},
		{25, 2, 20, 2},
		{20, 1, 20, 1},
		{0, 1, 20, 0},
		{1, 1, 20, 1},
	}

	for _, tt := range tests {
		p := NewPagination(tt.total, tt.page, tt.limit)
		if p.Pages != tt.wantPages {
			t.Errorf("NewPagination(%d, %d, %d).Pages = %d, want %d",
				tt.total, tt.page, tt.limit, p.Pages, tt.wantPages)
		}
	}
}
