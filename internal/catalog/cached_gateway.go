package catalog

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/shresthasriv/ecom-nexora/internal/api/middleware"
	"github.com/shresthasriv/ecom-nexora/internal/cache"
	"github.com/shresthasriv/ecom-nexora/internal/models"
	"golang.org/x/sync/singleflight"
)

const defaultSharedFetchTimeout = 10 * time.Second

type cachedGateway struct {
	next         Gateway
	cache        cache.Cache
	ttl          time.Duration
	fetchTimeout time.Duration
	group        singleflight.Group
}

// NewCachedGateway puts a read-through cache in front of next. Misses for the
// same key are collapsed into one upstream call bounded by fetchTimeout, which
// outlives any single caller. Cache failures are logged and bypassed, and
// not-found answers are never cached.
func NewCachedGateway(next Gateway, c cache.Cache, ttl, fetchTimeout time.Duration) Gateway {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultSharedFetchTimeout
	}

	return &cachedGateway{next: next, cache: c, ttl: ttl, fetchTimeout: fetchTimeout}
}

func (g *cachedGateway) FetchProduct(ctx context.Context, id int64) (*models.Product, error) {

	key := cache.Key(cache.ProductKeyPrefix, strconv.FormatInt(id, 10))

	var product models.Product
	if g.lookup(ctx, key, &product) {
		return &product, nil
	}

	v, err := g.shared(ctx, key, func(fetchCtx context.Context) (any, error) {
		return g.next.FetchProduct(fetchCtx, id)
	})
	if err != nil {
		return nil, err
	}

	// each caller gets its own copy of the shared result
	result := *v.(*models.Product)

	return &result, nil
}

func (g *cachedGateway) FetchProducts(ctx context.Context, limit int) ([]models.Product, error) {

	key := cache.Key(cache.ProductListKeyPrefix, strconv.Itoa(limit))

	var products []models.Product
	if g.lookup(ctx, key, &products) {
		return products, nil
	}

	v, err := g.shared(ctx, key, func(fetchCtx context.Context) (any, error) {
		return g.next.FetchProducts(fetchCtx, limit)
	})
	if err != nil {
		return nil, err
	}

	shared := v.([]models.Product)
	result := make([]models.Product, len(shared))
	copy(result, shared)

	return result, nil
}

func (g *cachedGateway) lookup(ctx context.Context, key string, dest any) bool {
	found, err := g.cache.Get(ctx, key, dest)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Catalog cache read failed", slog.String("key", key), slog.Any("error", err))
		return false
	}

	return found
}

// shared runs fetch once per key for all concurrent callers. The fetch runs on
// a detached context so a caller that gives up does not fail the others; that
// caller just stops waiting.
func (g *cachedGateway) shared(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {

	ch := g.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.fetchTimeout)
		defer cancel()

		v, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}

		if err := g.cache.Set(fetchCtx, key, v, g.ttl); err != nil {
			middleware.LoggerFromContext(ctx).Warn("Catalog cache write failed", slog.String("key", key), slog.Any("error", err))
		}

		return v, nil
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
