package models

import "github.com/shopspring/decimal"

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is a catalog record as served by the external catalog. Read-only here.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Image       string          `json:"image"`
	Rating      *Rating         `json:"rating,omitempty"`
}

type ProductListResponse struct {
	Success bool      `json:"success"`
	Count   int       `json:"count"`
	Data    []Product `json:"data"`
}
