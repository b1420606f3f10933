package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/shresthasriv/ecom-nexora/internal/api/middleware"
	"github.com/shresthasriv/ecom-nexora/internal/config"
	"github.com/shresthasriv/ecom-nexora/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 4 << 20

type httpGateway struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// NewHTTPGateway talks to a fake-store compatible catalog API. Outbound calls
// are throttled to cfg.MaxRPS and traced.
func NewHTTPGateway(cfg config.Catalog) Gateway {
	return &httpGateway{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		limiter: rate.NewLimiter(rate.Limit(cfg.MaxRPS), max(cfg.Burst, 1)),
	}
}

func (g *httpGateway) FetchProduct(ctx context.Context, id int64) (*models.Product, error) {

	body, err := g.get(ctx, "/products/"+strconv.FormatInt(id, 10))
	if err != nil {
		return nil, err
	}

	// the fake-store API answers unknown ids with 200 and an empty body
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, ErrProductNotFound
	}

	var product models.Product
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("%w: invalid product payload: %v", ErrUpstreamUnavailable, err)
	}

	if product.ID == 0 {
		return nil, ErrProductNotFound
	}

	return &product, nil
}

func (g *httpGateway) FetchProducts(ctx context.Context, limit int) ([]models.Product, error) {

	body, err := g.get(ctx, "/products?limit="+strconv.Itoa(limit))
	if err != nil {
		return nil, err
	}

	products := []models.Product{}

	if len(body) == 0 {
		return products, nil
	}

	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("%w: invalid product list payload: %v", ErrUpstreamUnavailable, err)
	}

	if products == nil {
		products = []models.Product{}
	}

	return products, nil
}

// get returns the trimmed body of a 2xx response.
func (g *httpGateway) get(ctx context.Context, path string) ([]byte, error) {

	logger := middleware.LoggerFromContext(ctx)

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		logger.Error("Catalog request failed", slog.String("path", path), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUpstreamUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrProductNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		logger.Error("Catalog returned an error status", slog.String("path", path), slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	return bytes.TrimSpace(body), nil
}
