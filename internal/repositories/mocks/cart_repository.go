package mocks

import (
	"context"

	"github.com/shresthasriv/ecom-nexora/internal/models"
	"github.com/stretchr/testify/mock"
)

type CartRepository struct {
	mock.Mock
}

func (m *CartRepository) FindOrCreate(ctx context.Context, owner string) (*models.Cart, error) {
	args := m.Called(ctx, owner)

	cart, _ := args.Get(0).(*models.Cart)

	return cart, args.Error(1)
}

func (m *CartRepository) GetByOwner(ctx context.Context, owner string) (*models.Cart, error) {
	args := m.Called(ctx, owner)

	cart, _ := args.Get(0).(*models.Cart)

	return cart, args.Error(1)
}

func (m *CartRepository) UpdateCart(ctx context.Context, cart *models.Cart) error {
	args := m.Called(ctx, cart)

	return args.Error(0)
}
