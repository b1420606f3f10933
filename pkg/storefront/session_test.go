package storefront_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/shresthasriv/ecom-nexora/internal/api/handlers"
	"github.com/shresthasriv/ecom-nexora/internal/catalog"
	"github.com/shresthasriv/ecom-nexora/internal/config"
	"github.com/shresthasriv/ecom-nexora/internal/models"
	repository "github.com/shresthasriv/ecom-nexora/internal/repositories"
	service "github.com/shresthasriv/ecom-nexora/internal/services"
	"github.com/shresthasriv/ecom-nexora/pkg/storefront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog map[int64]models.Product

func (f fakeCatalog) FetchProduct(_ context.Context, id int64) (*models.Product, error) {
	product, ok := f[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}

	return &product, nil
}

func (f fakeCatalog) FetchProducts(_ context.Context, limit int) ([]models.Product, error) {
	products := make([]models.Product, 0, len(f))
	for id := int64(1); len(products) < limit && id <= int64(len(f)); id++ {
		products = append(products, f[id])
	}

	return products, nil
}

// newStorefront serves the real handlers over an in-memory store.
func newStorefront(t *testing.T) (*storefront.Client, repository.CartRepository) {
	t.Helper()

	gateway := fakeCatalog{
		1: {ID: 1, Title: "Backpack", Price: decimal.RequireFromString("10"), Image: "https://img/1"},
		2: {ID: 2, Title: "T-Shirt", Price: decimal.RequireFromString("5"), Image: "https://img/2"},
	}
	repo := repository.NewMemoryCartRepo()
	cfg := config.CartConfig{MaxWriteAttempts: 5}

	productHandler := handlers.NewProductHandler(service.NewProductService(gateway))
	cartHandler := handlers.NewCartHandler(service.NewCartService(repo, gateway, cfg))
	checkoutHandler := handlers.NewCheckoutHandler(service.NewCheckoutService(repo, cfg, nil))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products", productHandler.ListProducts())
	mux.HandleFunc("GET /api/products/{id}", productHandler.GetProduct())
	mux.HandleFunc("GET /api/cart", cartHandler.GetCart())
	mux.HandleFunc("POST /api/cart", cartHandler.AddItem())
	mux.HandleFunc("DELETE /api/cart/{itemId}", cartHandler.RemoveItem())
	mux.HandleFunc("POST /api/checkout", checkoutHandler.Checkout())

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return storefront.NewClient(server.URL+"/api", server.Client()), repo
}

func TestCartSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Full shopping flow", func(t *testing.T) {
		// Arrange
		client, repo := newStorefront(t)
		session := storefront.NewCartSession(client, "jane")
		require.False(t, session.Loaded())

		// Act
		snapshot, err := session.Refresh(ctx)
		require.NoError(t, err)
		assert.True(t, session.Loaded())
		assert.Empty(t, snapshot.Items)

		_, err = session.Add(ctx, 1, 2)
		require.NoError(t, err)
		snapshot, err = session.Add(ctx, 2, 1)
		require.NoError(t, err)

		// Assert
		assert.Equal(t, 3, snapshot.ItemCount)
		assert.True(t, decimal.NewFromInt(25).Equal(snapshot.Total))
		require.Len(t, snapshot.Items, 2)

		receipt, err := session.Checkout(ctx, storefront.Customer{Name: "Jane", Email: "jane@x.com"})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(25).Equal(receipt.Total))
		require.Len(t, receipt.Items, 2)

		local := session.Snapshot()
		assert.Empty(t, local.Items)
		assert.True(t, local.Total.IsZero())
		assert.Equal(t, 0, local.ItemCount)

		stored, err := repo.GetByOwner(ctx, "jane")
		require.NoError(t, err)
		assert.Empty(t, stored.Items)
	})

	t.Run("Remove replaces the snapshot", func(t *testing.T) {
		// Arrange
		client, _ := newStorefront(t)
		session := storefront.NewCartSession(client, "kim")
		snapshot, err := session.Add(ctx, 1, 1)
		require.NoError(t, err)

		// Act
		snapshot, err = session.Remove(ctx, snapshot.Items[0].ItemID)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, snapshot.Items)

		_, err = session.Remove(ctx, snapshot.CartID)
		assert.True(t, storefront.IsCode(err, storefront.CodeItemNotFound))
	})

	t.Run("Failed checkout keeps the snapshot", func(t *testing.T) {
		// Arrange
		client, _ := newStorefront(t)
		session := storefront.NewCartSession(client, "lee")
		_, err := session.Add(ctx, 1, 1)
		require.NoError(t, err)

		// Act
		receipt, err := session.Checkout(ctx, storefront.Customer{Name: "Lee", Email: "not-an-email"})

		// Assert
		assert.Nil(t, receipt)
		var apiErr *storefront.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, storefront.CodeValidation, apiErr.Code)
		assert.Len(t, session.Snapshot().Items, 1)
	})

	t.Run("Empty cart checkout", func(t *testing.T) {
		// Arrange
		client, _ := newStorefront(t)
		session := storefront.NewCartSession(client, "mia")

		// Act
		_, err := session.Checkout(ctx, storefront.Customer{Name: "Mia", Email: "mia@x.com"})

		// Assert
		assert.True(t, storefront.IsCode(err, storefront.CodeEmptyCart))
	})

	t.Run("Unknown product keeps the snapshot", func(t *testing.T) {
		// Arrange
		client, _ := newStorefront(t)
		session := storefront.NewCartSession(client, "ned")
		_, err := session.Add(ctx, 2, 1)
		require.NoError(t, err)

		// Act
		snapshot, err := session.Add(ctx, 999, 1)

		// Assert
		var apiErr *storefront.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, storefront.CodeProductNotFound, apiErr.Code)
		require.Len(t, snapshot.Items, 1)
		assert.Equal(t, int64(2), snapshot.Items[0].ProductID)
	})

	t.Run("Snapshot is a copy", func(t *testing.T) {
		// Arrange
		client, _ := newStorefront(t)
		session := storefront.NewCartSession(client, "oli")
		_, err := session.Add(ctx, 1, 1)
		require.NoError(t, err)

		// Act
		snapshot := session.Snapshot()
		snapshot.Items[0].Quantity = 42
		snapshot.Items = append(snapshot.Items, storefront.CartItem{})

		// Assert
		fresh := session.Snapshot()
		require.Len(t, fresh.Items, 1)
		assert.Equal(t, 1, fresh.Items[0].Quantity)
	})
}
