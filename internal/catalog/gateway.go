package catalog

import (
	"context"
	"errors"

	"github.com/shresthasriv/ecom-nexora/internal/models"
)

var (
	ErrProductNotFound     = errors.New("product not found in catalog")
	ErrUpstreamUnavailable = errors.New("catalog service unavailable")
)

// Gateway reads products from the external catalog. Implementations return
// ErrProductNotFound for unknown ids and wrap ErrUpstreamUnavailable for
// transport failures, timeouts and server errors.
type Gateway interface {
	FetchProduct(ctx context.Context, id int64) (*models.Product, error)
	FetchProducts(ctx context.Context, limit int) ([]models.Product, error)
}
