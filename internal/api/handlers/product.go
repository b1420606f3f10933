package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shresthasriv/ecom-nexora/internal/api/middleware"
	"github.com/shresthasriv/ecom-nexora/internal/errors"
	"github.com/shresthasriv/ecom-nexora/internal/models"
	service "github.com/shresthasriv/ecom-nexora/internal/services"
	"github.com/shresthasriv/ecom-nexora/internal/utils"
	"github.com/shresthasriv/ecom-nexora/internal/utils/response"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts godoc
//	@Summary		List catalog products
//	@Description	Returns products from the external catalog.
//	@Tags			Products
//	@Produce		json
//	@Param			limit	query		int							false	"Maximum number of products (default 10, max 100)"
//	@Success		200		{object}	models.ProductListResponse	"Products"
//	@Failure		400		{object}	response.ErrorResponse		"Invalid limit"
//	@Failure		502		{object}	response.ErrorResponse		"Catalog unavailable"
//	@Router			/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				logger.Warn("Invalid product limit", slog.String("limit", raw))
				response.Error(w, errors.AddValidationError("limit", "must be a positive integer"))
				return
			}
			limit = parsed
		}

		products, err := h.productService.ListProducts(r.Context(), limit)
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusOK, models.ProductListResponse{
			Success: true,
			Count:   len(products),
			Data:    products,
		})
	}
}

// GetProduct godoc
//	@Summary		Get a catalog product
//	@Tags			Products
//	@Produce		json
//	@Param			id	path		int						true	"Product ID"
//	@Success		200	{object}	models.Product			"Product"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid product ID"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Failure		502	{object}	response.ErrorResponse	"Catalog unavailable"
//	@Router			/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseInt64(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("id", r.PathValue("id")))
			response.Error(w, err)
			return
		}

		product, err := h.productService.GetProduct(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get product", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}
