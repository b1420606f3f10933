package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/shresthasriv/ecom-nexora/internal/api/handlers"
	appErrors "github.com/shresthasriv/ecom-nexora/internal/errors"
	"github.com/shresthasriv/ecom-nexora/internal/models"
	"github.com/shresthasriv/ecom-nexora/internal/services/mocks"
	"github.com/shresthasriv/ecom-nexora/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckout(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockCheckoutService := new(mocks.CheckoutService)
		checkoutHandler := handlers.NewCheckoutHandler(mockCheckoutService)

		customer := models.Customer{Name: "Jane", Email: "jane@x.com"}
		receipt := &models.OrderReceipt{
			OrderNumber: "ORD-1700000000000-ABCDEFGHI",
			Customer:    customer,
			Items: []models.ReceiptItem{
				{ProductID: 1, Title: "A", Price: decimal.NewFromInt(10), Quantity: 2, Subtotal: decimal.NewFromInt(20)},
				{ProductID: 2, Title: "B", Price: decimal.NewFromInt(5), Quantity: 1, Subtotal: decimal.NewFromInt(5)},
			},
			Total:     decimal.RequireFromString("25.00"),
			Timestamp: time.Now().UTC(),
		}
		mockCheckoutService.On("Checkout", mock.Anything, "jane", customer).Return(receipt, nil).Once()

		rr := httptest.NewRecorder()
		req := testutils.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(`{"name":"Jane","email":"jane@x.com","owner":"jane"}`), nil)

		// Act
		checkoutHandler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var body models.OrderReceipt
		resp := testutils.DecodeEnvelope(t, rr, &body)
		assert.True(t, resp.Success)
		assert.Equal(t, "Order placed successfully", resp.Message)
		assert.Equal(t, receipt.OrderNumber, body.OrderNumber)
		assert.True(t, decimal.NewFromInt(25).Equal(body.Total))
		require.Len(t, body.Items, 2)
		assert.True(t, decimal.NewFromInt(20).Equal(body.Items[0].Subtotal))
		mockCheckoutService.AssertExpectations(t)
	})

	t.Run("Invalid input", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{name: "Missing name", body: `{"email":"jane@x.com"}`},
			{name: "Malformed email", body: `{"name":"Jane","email":"not-an-email"}`},
			{name: "Bad JSON", body: `{"name":"Jane"`},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				// Arrange
				mockCheckoutService := new(mocks.CheckoutService)
				checkoutHandler := handlers.NewCheckoutHandler(mockCheckoutService)

				rr := httptest.NewRecorder()
				req := testutils.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(tc.body), nil)

				// Act
				checkoutHandler.Checkout().ServeHTTP(rr, req)

				// Assert
				assert.Equal(t, http.StatusBadRequest, rr.Code)
				mockCheckoutService.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("Empty cart", func(t *testing.T) {
		// Arrange
		mockCheckoutService := new(mocks.CheckoutService)
		checkoutHandler := handlers.NewCheckoutHandler(mockCheckoutService)
		mockCheckoutService.On("Checkout", mock.Anything, "", mock.Anything).Return(nil, appErrors.EmptyCartError("Cart is empty")).Once()

		rr := httptest.NewRecorder()
		req := testutils.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(`{"name":"Jane","email":"jane@x.com"}`), nil)

		// Act
		checkoutHandler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := testutils.DecodeEnvelope(t, rr, nil)
		assert.False(t, resp.Success)
		assert.Equal(t, appErrors.ErrCodeEmptyCart, resp.Error.Code)
		assert.Equal(t, "Cart is empty", resp.Error.Message)
	})

	t.Run("Conflict", func(t *testing.T) {
		// Arrange
		mockCheckoutService := new(mocks.CheckoutService)
		checkoutHandler := handlers.NewCheckoutHandler(mockCheckoutService)
		mockCheckoutService.On("Checkout", mock.Anything, "jane", mock.Anything).Return(nil, appErrors.ConflictError("Cart was modified during checkout, please retry")).Once()

		rr := httptest.NewRecorder()
		req := testutils.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(`{"name":"Jane","email":"jane@x.com","userId":"jane"}`), nil)

		// Act
		checkoutHandler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)
		mockCheckoutService.AssertExpectations(t)
	})
}
