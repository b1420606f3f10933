package mocks

import (
	"context"

	"github.com/shresthasriv/ecom-nexora/internal/models"
	"github.com/stretchr/testify/mock"
)

type Gateway struct {
	mock.Mock
}

func (m *Gateway) FetchProduct(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)

	product, _ := args.Get(0).(*models.Product)

	return product, args.Error(1)
}

func (m *Gateway) FetchProducts(ctx context.Context, limit int) ([]models.Product, error) {
	args := m.Called(ctx, limit)

	products, _ := args.Get(0).([]models.Product)

	return products, args.Error(1)
}
