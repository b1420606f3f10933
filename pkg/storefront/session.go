package storefront

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartSession mirrors the last cart snapshot the server returned for one
// owner. The server stays authoritative; the session only replaces its copy
// with server responses, except for clearing it after a successful checkout.
type CartSession struct {
	client *Client
	owner  string

	mu       sync.RWMutex
	snapshot Cart
	loaded   bool
}

func NewCartSession(client *Client, owner string) *CartSession {
	return &CartSession{client: client, owner: owner, snapshot: Cart{Items: []CartItem{}}}
}

func (s *CartSession) Owner() string {
	return s.owner
}

// Loaded reports whether the session has seen a server snapshot yet.
func (s *CartSession) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loaded
}

// Snapshot returns a copy of the cached cart.
func (s *CartSession) Snapshot() Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.snapshot
	snapshot.Items = make([]CartItem, len(s.snapshot.Items))
	copy(snapshot.Items, s.snapshot.Items)

	return snapshot
}

func (s *CartSession) Refresh(ctx context.Context) (Cart, error) {
	cart, err := s.client.Cart(ctx, s.owner)
	if err != nil {
		return s.Snapshot(), err
	}

	return s.replace(cart), nil
}

func (s *CartSession) Add(ctx context.Context, productID int64, quantity int) (Cart, error) {
	cart, err := s.client.AddItem(ctx, s.owner, productID, quantity)
	if err != nil {
		return s.Snapshot(), err
	}

	return s.replace(cart), nil
}

func (s *CartSession) Remove(ctx context.Context, itemID uuid.UUID) (Cart, error) {
	cart, err := s.client.RemoveItem(ctx, s.owner, itemID)
	if err != nil {
		return s.Snapshot(), err
	}

	return s.replace(cart), nil
}

// Checkout places the order and, only when the server accepted it, empties
// the local snapshot without refetching.
func (s *CartSession) Checkout(ctx context.Context, customer Customer) (*Receipt, error) {
	receipt, err := s.client.Checkout(ctx, s.owner, customer)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.snapshot.Items = []CartItem{}
	s.snapshot.Total = decimal.Zero
	s.snapshot.ItemCount = 0
	s.mu.Unlock()

	return receipt, nil
}

func (s *CartSession) replace(cart *Cart) Cart {
	if cart.Items == nil {
		cart.Items = []CartItem{}
	}

	s.mu.Lock()
	s.snapshot = *cart
	s.loaded = true
	s.mu.Unlock()

	return s.Snapshot()
}
