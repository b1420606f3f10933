package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/shresthasriv/ecom-nexora/internal/api/middleware"
	"github.com/shresthasriv/ecom-nexora/internal/catalog"
	"github.com/shresthasriv/ecom-nexora/internal/config"
	appErrors "github.com/shresthasriv/ecom-nexora/internal/errors"
	"github.com/shresthasriv/ecom-nexora/internal/metrics"
	"github.com/shresthasriv/ecom-nexora/internal/models"
	repository "github.com/shresthasriv/ecom-nexora/internal/repositories"
)

const (
	opAddItem    = "add_item"
	opRemoveItem = "remove_item"
)

type CartService interface {
	GetCart(ctx context.Context, owner string) (*models.Cart, error)
	AddItem(ctx context.Context, owner string, productID int64, delta int) (*models.Cart, error)
	RemoveItem(ctx context.Context, owner string, itemID uuid.UUID) (*models.Cart, error)
}

type cartService struct {
	repo    repository.CartRepository
	gateway catalog.Gateway
	cfg     config.CartConfig
}

func NewCartService(repo repository.CartRepository, gateway catalog.Gateway, cfg config.CartConfig) CartService {
	if cfg.MaxWriteAttempts < 1 {
		cfg.MaxWriteAttempts = 1
	}

	return &cartService{repo: repo, gateway: gateway, cfg: cfg}
}

func (s *cartService) GetCart(ctx context.Context, owner string) (*models.Cart, error) {

	owner, err := resolveOwner(owner, s.cfg.RequireOwner)
	if err != nil {
		return nil, err
	}

	cart, err := s.repo.FindOrCreate(ctx, owner)
	if err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to load cart", slog.String("owner", owner), slog.Any("error", err))
		return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) AddItem(ctx context.Context, owner string, productID int64, delta int) (*models.Cart, error) {

	owner, err := resolveOwner(owner, s.cfg.RequireOwner)
	if err != nil {
		return nil, err
	}

	product, err := s.gateway.FetchProduct(ctx, productID)
	if err != nil {
		metrics.RecordCartMutation(opAddItem, metrics.ResultRejected)

		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, appErrors.ProductNotFoundError("Product not found").WithError(err)
		}

		middleware.LoggerFromContext(ctx).Error("Catalog lookup failed", slog.Int64("productId", productID), slog.Any("error", err))
		return nil, appErrors.UpstreamUnavailableError("Product catalog is unavailable").WithError(err)
	}

	return s.mutate(ctx, owner, opAddItem, func(cart *models.Cart) (bool, error) {
		return applyDelta(cart, product, delta)
	})
}

func (s *cartService) RemoveItem(ctx context.Context, owner string, itemID uuid.UUID) (*models.Cart, error) {

	owner, err := resolveOwner(owner, s.cfg.RequireOwner)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, owner, opRemoveItem, func(cart *models.Cart) (bool, error) {
		index := cart.IndexOfItem(itemID)
		if index < 0 {
			return false, appErrors.ItemNotFoundError("Item not found in cart")
		}

		cart.RemoveAt(index)

		return true, nil
	})
}

// applyDelta merges a quantity change for product into cart and reports
// whether anything changed. Lines never keep a quantity below one, and a sum
// that does not fit in an int is rejected.
func applyDelta(cart *models.Cart, product *models.Product, delta int) (bool, error) {

	index := cart.IndexOfProduct(product.ID)

	if index >= 0 {
		if delta == 0 {
			return false, nil
		}

		quantity := cart.Items[index].Quantity
		if delta > 0 && quantity > math.MaxInt-delta {
			return false, appErrors.AddValidationError("quantity", "line quantity is too large")
		}

		cart.Items[index].Quantity = quantity + delta
		if cart.Items[index].Quantity <= 0 {
			cart.RemoveAt(index)
		}

		return true, nil
	}

	if delta < 0 {
		return false, nil
	}

	cart.Items = append(cart.Items, models.CartItem{
		ItemID:    uuid.New(),
		ProductID: product.ID,
		Title:     product.Title,
		Price:     product.Price,
		Quantity:  max(delta, 1),
		Image:     product.Image,
	})

	return true, nil
}

// mutate runs read, apply and conditional write until the write lands on the
// version it read, or the attempt budget runs out.
func (s *cartService) mutate(ctx context.Context, owner, op string, apply func(cart *models.Cart) (bool, error)) (*models.Cart, error) {

	logger := middleware.LoggerFromContext(ctx).With(slog.String("owner", owner), slog.String("operation", op))

	for attempt := 1; attempt <= s.cfg.MaxWriteAttempts; attempt++ {

		cart, err := s.repo.FindOrCreate(ctx, owner)
		if err != nil {
			metrics.RecordCartMutation(op, metrics.ResultError)
			logger.Error("Failed to load cart", slog.Any("error", err))
			return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
		}

		changed, err := apply(cart)
		if err != nil {
			metrics.RecordCartMutation(op, metrics.ResultRejected)
			return nil, err
		}

		if !changed {
			metrics.RecordCartMutation(op, metrics.ResultNoop)
			return cart, nil
		}

		err = s.repo.UpdateCart(ctx, cart)
		if err == nil {
			metrics.RecordCartMutation(op, metrics.ResultOK)
			logger.Info("Cart updated", slog.Int("items", len(cart.Items)), slog.Int("attempt", attempt))
			return cart, nil
		}

		if !errors.Is(err, repository.ErrVersionConflict) {
			metrics.RecordCartMutation(op, metrics.ResultError)
			logger.Error("Failed to save cart", slog.Any("error", err))
			return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
		}

		metrics.RecordCartWriteConflict()
		logger.Warn("Cart changed concurrently, retrying", slog.Int("attempt", attempt))

		if ctx.Err() != nil {
			break
		}
	}

	metrics.RecordCartMutation(op, metrics.ResultConflict)

	return nil, appErrors.ConflictError("Cart was modified concurrently, please retry")
}

func resolveOwner(owner string, required bool) (string, error) {

	owner = strings.TrimSpace(owner)
	if owner != "" {
		return owner, nil
	}

	if required {
		return "", appErrors.AddValidationError("owner", "an owner identifier is required")
	}

	return models.GuestOwner, nil
}
