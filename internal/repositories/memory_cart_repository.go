package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shresthasriv/ecom-nexora/internal/models"
)

// memoryCartRepository keeps carts in process memory. It is used for local
// development and by tests that do not need a database.
type memoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string]*models.Cart // owner key -> cart
}

func NewMemoryCartRepo() CartRepository {
	return &memoryCartRepository{carts: make(map[string]*models.Cart)}
}

func (m *memoryCartRepository) FindOrCreate(ctx context.Context, owner string) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cart, ok := m.carts[owner]; ok {
		return cart.Clone(), nil
	}

	now := time.Now().UTC()
	cart := &models.Cart{
		ID:        uuid.New(),
		OwnerKey:  owner,
		Items:     []models.CartItem{},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.carts[owner] = cart

	return cart.Clone(), nil
}

func (m *memoryCartRepository) GetByOwner(ctx context.Context, owner string) (*models.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cart, ok := m.carts[owner]
	if !ok {
		return nil, ErrCartNotFound
	}

	return cart.Clone(), nil
}

func (m *memoryCartRepository) UpdateCart(ctx context.Context, cart *models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.carts[cart.OwnerKey]
	if !ok || stored.ID != cart.ID || stored.Version != cart.Version {
		return ErrVersionConflict
	}

	cart.Version++
	cart.UpdatedAt = time.Now().UTC()
	m.carts[cart.OwnerKey] = cart.Clone()

	return nil
}
