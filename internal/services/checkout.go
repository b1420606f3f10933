package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/shresthasriv/ecom-nexora/internal/api/middleware"
	"github.com/shresthasriv/ecom-nexora/internal/config"
	appErrors "github.com/shresthasriv/ecom-nexora/internal/errors"
	"github.com/shresthasriv/ecom-nexora/internal/metrics"
	"github.com/shresthasriv/ecom-nexora/internal/models"
	repository "github.com/shresthasriv/ecom-nexora/internal/repositories"
	"github.com/shresthasriv/ecom-nexora/internal/utils"
)

const receiptSendTimeout = 15 * time.Second

type CheckoutService interface {
	Checkout(ctx context.Context, owner string, customer models.Customer) (*models.OrderReceipt, error)
}

// ReceiptSender delivers a confirmation for a completed order.
type ReceiptSender interface {
	SendReceipt(ctx context.Context, receipt *models.OrderReceipt) error
}

type checkoutService struct {
	repo           repository.CartRepository
	cfg            config.CartConfig
	notifier       ReceiptSender
	validate       *validator.Validate
	newOrderNumber OrderNumberFunc
}

// NewCheckoutService builds the checkout engine. notifier may be nil, in which
// case no confirmation is sent.
func NewCheckoutService(repo repository.CartRepository, cfg config.CartConfig, notifier ReceiptSender) CheckoutService {
	if cfg.MaxWriteAttempts < 1 {
		cfg.MaxWriteAttempts = 1
	}

	return &checkoutService{
		repo:           repo,
		cfg:            cfg,
		notifier:       notifier,
		validate:       validator.New(),
		newOrderNumber: NewOrderNumber,
	}
}

func (s *checkoutService) Checkout(ctx context.Context, owner string, customer models.Customer) (*models.OrderReceipt, error) {

	owner, err := resolveOwner(owner, s.cfg.RequireOwner)
	if err != nil {
		return nil, err
	}

	customer, err = s.normalizeCustomer(customer)
	if err != nil {
		metrics.RecordCheckout(metrics.ResultRejected, 0)
		return nil, err
	}

	logger := middleware.LoggerFromContext(ctx).With(slog.String("owner", owner))

	for attempt := 1; attempt <= s.cfg.MaxWriteAttempts; attempt++ {

		cart, err := s.repo.GetByOwner(ctx, owner)
		if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
			metrics.RecordCheckout(metrics.ResultError, 0)
			logger.Error("Failed to load cart for checkout", slog.Any("error", err))
			return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
		}

		// a cart that was never created counts as empty
		if cart == nil || cart.IsEmpty() {
			metrics.RecordCheckout(metrics.ResultRejected, 0)
			return nil, appErrors.EmptyCartError("Cart is empty")
		}

		receipt, err := s.buildReceipt(cart, customer)
		if err != nil {
			metrics.RecordCheckout(metrics.ResultError, 0)
			logger.Error("Failed to build receipt", slog.Any("error", err))
			return nil, appErrors.InternalError("Failed to place order").WithError(err)
		}

		cart.Items = []models.CartItem{}

		err = s.repo.UpdateCart(ctx, cart)
		if err == nil {
			total, _ := receipt.Total.Float64()
			metrics.RecordCheckout(metrics.ResultOK, total)
			logger.Info("Order placed",
				slog.String("orderNumber", receipt.OrderNumber),
				slog.String("total", receipt.Total.StringFixed(2)),
				slog.Int("lines", len(receipt.Items)),
			)

			s.notify(ctx, logger, receipt)

			return receipt, nil
		}

		if !errors.Is(err, repository.ErrVersionConflict) {
			metrics.RecordCheckout(metrics.ResultError, 0)
			logger.Error("Failed to clear cart, order not placed", slog.Any("error", err))
			return nil, appErrors.DatabaseError("Failed to place order").WithError(err)
		}

		metrics.RecordCartWriteConflict()
		logger.Warn("Cart changed during checkout, retrying", slog.Int("attempt", attempt))

		if ctx.Err() != nil {
			break
		}
	}

	metrics.RecordCheckout(metrics.ResultConflict, 0)

	return nil, appErrors.ConflictError("Cart was modified during checkout, please retry")
}

func (s *checkoutService) normalizeCustomer(customer models.Customer) (models.Customer, error) {

	customer.Name = utils.SanitizeText(customer.Name)
	customer.Email = strings.TrimSpace(customer.Email)

	if customer.Name == "" {
		return customer, appErrors.AddValidationError("name", "must not be empty")
	}

	if err := s.validate.Var(customer.Email, "required,email"); err != nil {
		return customer, appErrors.AddValidationError("email", "must be a valid email address").WithError(err)
	}

	return customer, nil
}

// buildReceipt copies the cart lines so later cart changes cannot reach the receipt.
func (s *checkoutService) buildReceipt(cart *models.Cart, customer models.Customer) (*models.OrderReceipt, error) {

	now := time.Now().UTC()

	orderNumber, err := s.newOrderNumber(now)
	if err != nil {
		return nil, err
	}

	items := make([]models.ReceiptItem, 0, len(cart.Items))
	sum := decimal.Zero

	// subtotals stay exact; only the total is rounded to cents
	for _, line := range cart.Items {
		subtotal := line.Subtotal()
		sum = sum.Add(subtotal)

		items = append(items, models.ReceiptItem{
			ProductID: line.ProductID,
			Title:     line.Title,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Subtotal:  subtotal,
		})
	}

	return &models.OrderReceipt{
		OrderNumber: orderNumber,
		Customer:    customer,
		Items:       items,
		Total:       sum.Round(2),
		Timestamp:   now,
	}, nil
}

func (s *checkoutService) notify(ctx context.Context, logger *slog.Logger, receipt *models.OrderReceipt) {

	if s.notifier == nil {
		return
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), receiptSendTimeout)
		defer cancel()

		if err := s.notifier.SendReceipt(sendCtx, receipt); err != nil {
			logger.Warn("Failed to send order confirmation",
				slog.String("orderNumber", receipt.OrderNumber),
				slog.Any("error", err),
			)
		}
	}()
}
