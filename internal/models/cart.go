package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GuestOwner is shared by every caller that does not identify itself.
const GuestOwner = "guest"

func init() {
	// prices travel as JSON numbers, the way the catalog and the UI expect them
	decimal.MarshalJSONWithoutQuotes = true
}

// CartItem is one product line. Price is the catalog price at the time the
// line was created and is not refreshed afterwards.
type CartItem struct {
	ItemID    uuid.UUID       `json:"itemId"`
	ProductID int64           `json:"productId"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Cart struct {
	ID        uuid.UUID  `json:"cartId"`
	OwnerKey  string     `json:"owner"`
	Items     []CartItem `json:"items"`
	Version   int64      `json:"-"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Total is recomputed from the lines on every call.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero

	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}

	return total
}

func (c *Cart) ItemCount() int {
	count := 0

	for _, item := range c.Items {
		count += item.Quantity
	}

	return count
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// IndexOfProduct returns the position of the line holding productID, or -1.
func (c *Cart) IndexOfProduct(productID int64) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}

	return -1
}

// IndexOfItem returns the position of the line with itemID, or -1.
func (c *Cart) IndexOfItem(itemID uuid.UUID) int {
	for i, item := range c.Items {
		if item.ItemID == itemID {
			return i
		}
	}

	return -1
}

func (c *Cart) RemoveAt(index int) {
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
}

// Clone returns a deep copy so callers can mutate without touching the original lines.
func (c *Cart) Clone() *Cart {
	clone := *c
	clone.Items = make([]CartItem, len(c.Items))
	copy(clone.Items, c.Items)

	return &clone
}

type CartResponse struct {
	CartID    uuid.UUID       `json:"cartId"`
	Owner     string          `json:"owner"`
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func NewCartResponse(cart *Cart) *CartResponse {
	items := cart.Items
	if items == nil {
		items = []CartItem{}
	}

	return &CartResponse{
		CartID:    cart.ID,
		Owner:     cart.OwnerKey,
		Items:     items,
		Total:     cart.Total(),
		ItemCount: cart.ItemCount(),
		UpdatedAt: cart.UpdatedAt,
	}
}

type AddItemRequest struct {
	ProductID int64  `json:"productId" validate:"required,min=1"`
	Quantity  *int   `json:"quantity" validate:"required,min=-10000,max=10000"`
	Owner     string `json:"owner,omitempty" validate:"omitempty,max=128"`
	UserID    string `json:"userId,omitempty" validate:"omitempty,max=128"`
}

func (r *AddItemRequest) OwnerKey() string {
	return FirstOwner(r.Owner, r.UserID)
}

// FirstOwner picks the first non-blank owner identifier, accepting both the
// "owner" and the older "userId" spelling.
func FirstOwner(candidates ...string) string {
	for _, candidate := range candidates {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}

	return ""
}
