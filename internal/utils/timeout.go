package utils

import (
	"context"
	"time"
)

const (
	DefaultDBTimeout   = 5 * time.Second
	DefaultPingTimeout = 5 * time.Second
)

// WithDBTimeout bounds a single repository call. A parent deadline that is
// already tighter is kept.
func WithDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return WithTimeout(ctx, DefaultDBTimeout)
}

func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithTimeout(ctx, d)
}
