package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shresthasriv/ecom-nexora/internal/models"
	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func (m *CartService) GetCart(ctx context.Context, owner string) (*models.Cart, error) {
	args := m.Called(ctx, owner)

	cart, _ := args.Get(0).(*models.Cart)

	return cart, args.Error(1)
}

func (m *CartService) AddItem(ctx context.Context, owner string, productID int64, delta int) (*models.Cart, error) {
	args := m.Called(ctx, owner, productID, delta)

	cart, _ := args.Get(0).(*models.Cart)

	return cart, args.Error(1)
}

func (m *CartService) RemoveItem(ctx context.Context, owner string, itemID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, owner, itemID)

	cart, _ := args.Get(0).(*models.Cart)

	return cart, args.Error(1)
}
