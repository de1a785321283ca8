package models

import "github.com/google/uuid"

// StatusStat is the per-status rollup of today's orders
type StatusStat struct {
	Status  OrderStatus `json:"status"`
	Count   int         `json:"count"`
	Revenue float64     `json:"revenue"`
}

// CategoryRevenue is today's revenue attributed to one menu category
type CategoryRevenue struct {
	Category  string  `json:"category"`
	Revenue   float64 `json:"revenue"`
	ItemsSold int     `json:"items_sold"`
}

// TopItem is one entry of today's most-ordered items ranking
type TopItem struct {
	MenuItemID    uuid.UUID `json:"menu_item_id"`
	Name          string    `json:"name"`
	TotalQuantity int       `json:"total_quantity"`
	Revenue       float64   `json:"revenue"`
}

// StatsResponse bundles the three rollups returned by the stats endpoint
type StatsResponse struct {
	OrderStats      []StatusStat      `json:"orderStats"`
	CategoryRevenue []CategoryRevenue `json:"categoryRevenue"`
	TopItems        []TopItem         `json:"topItems"`
}
