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

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: utils.NewValidator()}
}

// owner comes from ?owner= or the older ?userId=
func ownerFromQuery(r *http.Request) string {
	query := r.URL.Query()

	return models.FirstOwner(query.Get("owner"), query.Get("userId"))
}

// GetCart godoc
//	@Summary		Get the cart
//	@Description	Returns the owner's cart, creating an empty one on first access. A missing owner means the shared guest cart.
//	@Tags			Cart
//	@Produce		json
//	@Param			owner	query		string					false	"Cart owner key"
//	@Success		200		{object}	models.CartResponse		"Cart snapshot"
//	@Failure		400		{object}	response.ErrorResponse	"Owner required"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cart, err := h.cartService.GetCart(r.Context(), ownerFromQuery(r))
		if err != nil {
			logger.Error("Failed to get cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.NewCartResponse(cart))
	}
}

// AddItem godoc
//	@Summary		Add or change a cart line
//	@Description	Adds quantity of a catalog product to the cart. A negative quantity decrements; a line reaching zero is removed.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Product and quantity delta"
//	@Success		201		{object}	models.CartResponse		"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Failure		409		{object}	response.ErrorResponse	"Concurrent modification"
//	@Failure		429		{object}	response.ErrorResponse	"Too many requests"
//	@Failure		502		{object}	response.ErrorResponse	"Catalog unavailable"
//	@Router			/cart [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")
			return
		}

		logger = logger.With(slog.Int64("productId", req.ProductID))

		cart, err := h.cartService.AddItem(r.Context(), req.OwnerKey(), req.ProductID, *req.Quantity)
		if err != nil {
			logger.Warn("Failed to add item to cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.Int("quantity", *req.Quantity))
		response.SuccessWithMessage(w, http.StatusCreated, "Item added to cart", models.NewCartResponse(cart))
	}
}

// RemoveItem godoc
//	@Summary		Remove a cart line
//	@Tags			Cart
//	@Produce		json
//	@Param			itemId	path		string					true	"Line item ID"	Format(uuid)
//	@Param			owner	query		string					false	"Cart owner key"
//	@Success		200		{object}	models.CartResponse		"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid item ID"
//	@Failure		404		{object}	response.ErrorResponse	"Item not found"
//	@Failure		409		{object}	response.ErrorResponse	"Concurrent modification"
//	@Router			/cart/{itemId} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		itemID, err := utils.ParseID(r, "itemId")
		if err != nil {
			logger.Warn("Invalid item id", slog.String("itemId", r.PathValue("itemId")))
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.String("itemId", itemID.String()))

		cart, err := h.cartService.RemoveItem(r.Context(), ownerFromQuery(r), itemID)
		if err != nil {
			logger.Warn("Failed to remove item from cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item removed from cart")
		response.SuccessWithMessage(w, http.StatusOK, "Item removed from cart", models.NewCartResponse(cart))
	}
}
