package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ReceiptItem struct {
	ProductID int64           `json:"productId"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderReceipt is a detached copy of the cart taken at checkout. It holds no
// references to cart lines.
type OrderReceipt struct {
	OrderNumber string          `json:"orderNumber"`
	Customer    Customer        `json:"customer"`
	Items       []ReceiptItem   `json:"items"`
	Total       decimal.Decimal `json:"total"`
	Timestamp   time.Time       `json:"timestamp"`
}

type CheckoutRequest struct {
	Name   string `json:"name" validate:"required,max=200"`
	Email  string `json:"email" validate:"required,email"`
	Owner  string `json:"owner,omitempty" validate:"omitempty,max=128"`
	UserID string `json:"userId,omitempty" validate:"omitempty,max=128"`
}

func (r *CheckoutRequest) OwnerKey() string {
	return FirstOwner(r.Owner, r.UserID)
}
