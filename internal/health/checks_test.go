package health

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shresthasriv/ecom-nexora/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkNames(cfg *config.Config) []string {
	var names []string

	for _, check := range Checks(cfg) {
		names = append(names, check.Name)
	}

	return names
}

func TestChecks(t *testing.T) {
	t.Run("Postgres with redis", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Storage.Driver = config.StorageDriverPostgres
		cfg.RedisConnect.Enabled = true

		assert.Equal(t, []string{"database", "redis", "catalog"}, checkNames(cfg))
	})

	t.Run("Mongo without redis", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Storage.Driver = config.StorageDriverMongo

		assert.Equal(t, []string{"mongo", "catalog"}, checkNames(cfg))
	})

	t.Run("Memory store", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Storage.Driver = config.StorageDriverMemory

		checks := Checks(cfg)

		require.Len(t, checks, 1)
		assert.True(t, checks[0].SkipOnErr)
	})
}

func TestNewHealthHandler(t *testing.T) {
	catalog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer catalog.Close()

	cfg := &config.Config{}
	cfg.Storage.Driver = config.StorageDriverMemory
	cfg.Catalog.BaseURL = catalog.URL
	cfg.Otel.ServiceName = "ecom-nexora"

	h, err := NewHealthHandler(cfg)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"OK"`)
}
