package mocks

import (
	"context"

	"github.com/shresthasriv/ecom-nexora/pkg/sendgrid"
	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) Send(ctx context.Context, req *sendgrid.Email) error {
	args := m.Called(ctx, req)

	return args.Error(0)
}
