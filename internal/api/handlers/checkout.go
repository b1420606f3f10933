package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shresthasriv/ecom-nexora/internal/api/middleware"
	"github.com/shresthasriv/ecom-nexora/internal/models"
	service "github.com/shresthasriv/ecom-nexora/internal/services"
	"github.com/shresthasriv/ecom-nexora/internal/utils"
	"github.com/shresthasriv/ecom-nexora/internal/utils/response"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: utils.NewValidator()}
}

// Checkout godoc
//	@Summary		Place an order
//	@Description	Turns the owner's cart into an order receipt and empties the cart.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			checkout	body		models.CheckoutRequest	true	"Customer details"
//	@Success		200			{object}	models.OrderReceipt		"Order receipt"
//	@Failure		400			{object}	response.ErrorResponse	"Validation error or empty cart"
//	@Failure		409			{object}	response.ErrorResponse	"Concurrent modification"
//	@Failure		429			{object}	response.ErrorResponse	"Too many requests"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Router			/checkout [post]
func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid checkout input")
			return
		}

		customer := models.Customer{Name: req.Name, Email: req.Email}

		receipt, err := h.checkoutService.Checkout(r.Context(), req.OwnerKey(), customer)
		if err != nil {
			logger.Warn("Checkout failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order placed successfully", slog.String("orderNumber", receipt.OrderNumber))
		response.SuccessWithMessage(w, http.StatusOK, "Order placed successfully", receipt)
	}
}
