package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shresthasriv/ecom-nexora/internal/api/middleware"
	"github.com/shresthasriv/ecom-nexora/internal/catalog"
	appErrors "github.com/shresthasriv/ecom-nexora/internal/errors"
	"github.com/shresthasriv/ecom-nexora/internal/models"
)

const (
	DefaultProductLimit = 10
	MaxProductLimit     = 100
)

type ProductService interface {
	ListProducts(ctx context.Context, limit int) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
}

type productService struct {
	gateway catalog.Gateway
}

func NewProductService(gateway catalog.Gateway) ProductService {
	return &productService{gateway: gateway}
}

func (s *productService) ListProducts(ctx context.Context, limit int) ([]models.Product, error) {

	if limit <= 0 {
		limit = DefaultProductLimit
	}

	if limit > MaxProductLimit {
		limit = MaxProductLimit
	}

	products, err := s.gateway.FetchProducts(ctx, limit)
	if err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to list products", slog.Int("limit", limit), slog.Any("error", err))
		return nil, appErrors.UpstreamUnavailableError("Product catalog is unavailable").WithError(err)
	}

	if products == nil {
		products = []models.Product{}
	}

	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {

	if id < 1 {
		return nil, appErrors.AddValidationError("id", "must be a positive integer")
	}

	product, err := s.gateway.FetchProduct(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, appErrors.ProductNotFoundError("Product not found").WithError(err)
		}

		middleware.LoggerFromContext(ctx).Error("Failed to fetch product", slog.Int64("productId", id), slog.Any("error", err))
		return nil, appErrors.UpstreamUnavailableError("Product catalog is unavailable").WithError(err)
	}

	return product, nil
}
