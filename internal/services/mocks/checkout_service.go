package mocks

import (
	"context"

	"github.com/shresthasriv/ecom-nexora/internal/models"
	"github.com/stretchr/testify/mock"
)

type CheckoutService struct {
	mock.Mock
}

func (m *CheckoutService) Checkout(ctx context.Context, owner string, customer models.Customer) (*models.OrderReceipt, error) {
	args := m.Called(ctx, owner, customer)

	receipt, _ := args.Get(0).(*models.OrderReceipt)

	return receipt, args.Error(1)
}

type ReceiptSender struct {
	mock.Mock
}

func (m *ReceiptSender) SendReceipt(ctx context.Context, receipt *models.OrderReceipt) error {
	args := m.Called(ctx, receipt)

	return args.Error(0)
}
