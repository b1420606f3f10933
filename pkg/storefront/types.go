package storefront

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Error codes returned by the API, for use with IsCode.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeBadRequest          = "BAD_REQUEST"
	CodeProductNotFound     = "PRODUCT_NOT_FOUND"
	CodeItemNotFound        = "ITEM_NOT_FOUND"
	CodeEmptyCart           = "EMPTY_CART"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeConflict            = "CONFLICT"
	CodeTooManyRequests     = "TOO_MANY_REQUESTS"
)

type Product struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

type CartItem struct {
	ItemID    uuid.UUID       `json:"itemId"`
	ProductID int64           `json:"productId"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

// Cart is the cart snapshot as the server sent it.
type Cart struct {
	CartID    uuid.UUID       `json:"cartId"`
	Owner     string          `json:"owner"`
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

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

type Receipt struct {
	OrderNumber string          `json:"orderNumber"`
	Customer    Customer        `json:"customer"`
	Items       []ReceiptItem   `json:"items"`
	Total       decimal.Decimal `json:"total"`
	Timestamp   time.Time       `json:"timestamp"`
}

type addItemRequest struct {
	ProductID int64  `json:"productId"`
	Quantity  int    `json:"quantity"`
	Owner     string `json:"owner,omitempty"`
}

type checkoutRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Owner string `json:"owner,omitempty"`
}
